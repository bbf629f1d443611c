package storage

import (
	"errors"
	"time"

	"github.com/localhub-app/localhub-backend/internal/models"
)

// Sentinel errors shared by all Store implementations. Handlers map
// these onto 404/409 responses.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store defines the persistence operations the handlers and services
// depend on. DatabaseStore backs it with PostgreSQL via GORM;
// MemoryStore keeps everything in maps for tests and local development.
type Store interface {
	// Admin accounts
	GetAdminByEmail(email string) (*models.AdminUser, error)
	GetAdminByID(id uint) (*models.AdminUser, error)
	CreateAdmin(admin *models.AdminUser) (*models.AdminUser, error)
	UpdateAdmin(admin *models.AdminUser) error

	// End users
	GetAllUsers() ([]*models.User, error)
	GetUser(id uint) (*models.User, error)
	GetUserByPhone(phone string) (*models.User, error)
	CreateUser(user *models.User) (*models.User, error)
	CreateUserIfAbsent(phone string, defaults *models.User) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	ToggleUserStatus(id uint) (*models.User, error)
	TouchUserActivity(id uint) error
	CountUsers() (int64, error)
	CountActiveUsersSince(since time.Time) (int64, error)
	GetRecentUsers(since time.Time, limit int) ([]*models.User, error)

	// Businesses
	GetAllBusinesses() ([]*models.Business, error)
	GetBusiness(id uint) (*models.Business, error)
	CreateBusiness(business *models.Business) (*models.Business, error)
	UpdateBusiness(business *models.Business) error
	DeleteBusiness(id uint) error
	UpdateBusinessStatus(id uint, status string) (*models.Business, error)
	CountBusinesses() (int64, error)
	CountBusinessesByStatus(status string) (int64, error)
	GetRecentBusinesses(since time.Time, limit int) ([]*models.Business, error)

	// Posts
	GetAllPosts() ([]*models.Post, error)
	GetPost(id uint) (*models.Post, error)
	CreatePost(post *models.Post) (*models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
	CountPosts() (int64, error)
	CountPostsByStatus(status string) (int64, error)
	CountPostsByMenu(menuID uint) (int64, error)
	GetMenuPosts(menuID uint, createdAfter *time.Time) ([]*models.Post, error)
	GetLabelPosts(menuID uint, label string) ([]*models.Post, error)
	GetRecentPosts(since time.Time, limit int) ([]*models.Post, error)

	// Districts
	GetAllDistricts() ([]*models.District, error)

	// Hashtags
	GetAllHashtags() ([]*models.Hashtag, error)
	GetHashtag(id uint) (*models.Hashtag, error)
	GetPopularHashtags(limit int) ([]*models.Hashtag, error)
	CreateHashtag(tag *models.Hashtag) (*models.Hashtag, error)
	UpdateHashtag(tag *models.Hashtag) error
	DeleteHashtag(id uint) error

	// Categories
	GetAllCategories() ([]*models.Category, error)
	CreateCategory(name string) (*models.Category, error)

	// Menus
	GetAllMenus() ([]*models.Menu, error)
	GetMenu(id uint) (*models.Menu, error)
	CreateMenu(menu *models.Menu) (*models.Menu, error)
	UpdateMenu(menu *models.Menu) error
	DeleteMenu(id uint) error

	// Settings
	GetAllSettings() ([]*models.Setting, error)
	GetSetting(category, key string) (*models.Setting, error)
	UpsertSetting(setting *models.Setting) error
	CreateSetting(setting *models.Setting) (*models.Setting, error)
	DeleteSetting(category, key string) error
	DeleteSettingsByCategory(category string) error

	// OTP challenges. Upsert is atomic at the storage layer: a single
	// statement keyed by phone, last writer wins.
	UpsertOTPChallenge(phone, code string, expiresAt time.Time) (*models.OTPChallenge, error)
	GetOTPChallenge(phone string) (*models.OTPChallenge, error)
	UpdateOTPChallenge(challenge *models.OTPChallenge) error
	DeleteExpiredOTPChallenges() (int64, error)
}
