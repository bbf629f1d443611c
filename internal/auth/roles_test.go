package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name   string
		role   Role
		action Action
		want   bool
	}{
		{"viewer can read users", RoleViewer, ActionUsersRead, true},
		{"viewer cannot write users", RoleViewer, ActionUsersWrite, false},
		{"admin can write users", RoleAdmin, ActionUsersWrite, true},
		{"admin cannot delete users", RoleAdmin, ActionUsersDelete, false},
		{"superadmin can delete users", RoleSuperadmin, ActionUsersDelete, true},
		{"only superadmin manages admins", RoleAdmin, ActionAdminsRead, false},
		{"end user has no admin permissions", RoleUser, ActionUsersRead, false},
		{"unknown role denied", Role("operator"), ActionUsersRead, false},
		{"unknown action denied", RoleSuperadmin, Action("users:export"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.action))
		})
	}
}

func TestHasPermissionIsDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.True(t, HasPermission(RoleAdmin, ActionPostsWrite))
		assert.False(t, HasPermission(RoleViewer, ActionPostsWrite))
	}
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("root")
	assert.False(t, ok)
}
