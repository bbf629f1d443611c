package auth

// Role is an admin account role. End users authenticated via OTP carry
// RoleUser, which holds no admin permissions.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleViewer     Role = "viewer"
	RoleUser       Role = "user"
)

// ParseRole maps a stored role string onto a known Role. Unknown values
// come back as ("", false) so callers fail closed.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperadmin, RoleAdmin, RoleViewer, RoleUser:
		return Role(s), true
	}
	return "", false
}

// Action identifies a guarded operation as {resource}:{read|write|delete}.
// Routes reference these constants directly, so an unknown action is a
// compile error rather than a silent runtime deny.
type Action string

const (
	ActionUsersRead   Action = "users:read"
	ActionUsersWrite  Action = "users:write"
	ActionUsersDelete Action = "users:delete"

	ActionBusinessesRead   Action = "businesses:read"
	ActionBusinessesWrite  Action = "businesses:write"
	ActionBusinessesDelete Action = "businesses:delete"

	ActionPostsRead   Action = "posts:read"
	ActionPostsWrite  Action = "posts:write"
	ActionPostsDelete Action = "posts:delete"

	ActionHashtagsRead   Action = "hashtags:read"
	ActionHashtagsWrite  Action = "hashtags:write"
	ActionHashtagsDelete Action = "hashtags:delete"

	ActionMenusRead  Action = "menus:read"
	ActionMenusWrite Action = "menus:write"

	ActionSettingsRead  Action = "settings:read"
	ActionSettingsWrite Action = "settings:write"

	ActionAdminsRead   Action = "admins:read"
	ActionAdminsWrite  Action = "admins:write"
	ActionAdminsDelete Action = "admins:delete"
)

// permissions is the static role matrix. Absence of an entry means deny.
var permissions = map[Action][]Role{
	ActionUsersRead:   {RoleSuperadmin, RoleAdmin, RoleViewer},
	ActionUsersWrite:  {RoleSuperadmin, RoleAdmin},
	ActionUsersDelete: {RoleSuperadmin},

	ActionBusinessesRead:   {RoleSuperadmin, RoleAdmin, RoleViewer},
	ActionBusinessesWrite:  {RoleSuperadmin, RoleAdmin},
	ActionBusinessesDelete: {RoleSuperadmin},

	ActionPostsRead:   {RoleSuperadmin, RoleAdmin, RoleViewer},
	ActionPostsWrite:  {RoleSuperadmin, RoleAdmin},
	ActionPostsDelete: {RoleSuperadmin},

	ActionHashtagsRead:   {RoleSuperadmin, RoleAdmin, RoleViewer},
	ActionHashtagsWrite:  {RoleSuperadmin, RoleAdmin},
	ActionHashtagsDelete: {RoleSuperadmin},

	ActionMenusRead:  {RoleSuperadmin, RoleAdmin, RoleViewer},
	ActionMenusWrite: {RoleSuperadmin, RoleAdmin},

	ActionSettingsRead:  {RoleSuperadmin, RoleAdmin, RoleViewer},
	ActionSettingsWrite: {RoleSuperadmin, RoleAdmin},

	ActionAdminsRead:   {RoleSuperadmin},
	ActionAdminsWrite:  {RoleSuperadmin},
	ActionAdminsDelete: {RoleSuperadmin},
}

// HasPermission reports whether role may perform action. Pure lookup,
// deny-by-default for unknown actions and unknown roles.
func HasPermission(role Role, action Action) bool {
	allowed, ok := permissions[action]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
