package storage

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/localhub-app/localhub-backend/internal/models"
)

var _ Store = (*DatabaseStore)(nil)

// DatabaseStore implements Store on top of PostgreSQL via GORM.
type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// ---------- Admin accounts ----------

func (s *DatabaseStore) GetAdminByEmail(email string) (*models.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var admin models.AdminUser
	if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (s *DatabaseStore) GetAdminByID(id uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.db.First(&admin, id).Error; err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (s *DatabaseStore) CreateAdmin(admin *models.AdminUser) (*models.AdminUser, error) {
	if err := s.db.Create(admin).Error; err != nil {
		return nil, translate(err)
	}
	return admin, nil
}

func (s *DatabaseStore) UpdateAdmin(admin *models.AdminUser) error {
	return translate(s.db.Save(admin).Error)
}

// ---------- End users ----------

func (s *DatabaseStore) GetAllUsers() ([]*models.User, error) {
	var users []*models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *DatabaseStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("phone = ?", models.NormalizePhone(phone)).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := s.db.Create(user).Error; err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// CreateUserIfAbsent returns the existing account for phone or creates
// one from defaults. Concurrent callers racing on the same phone are
// resolved by the unique index: the loser re-reads the winner's row.
func (s *DatabaseStore) CreateUserIfAbsent(phone string, defaults *models.User) (*models.User, error) {
	phone = models.NormalizePhone(phone)
	if user, err := s.GetUserByPhone(phone); err == nil {
		return user, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user := *defaults
	user.Phone = phone
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(translate(err), ErrDuplicate) {
			return s.GetUserByPhone(phone)
		}
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStore) UpdateUser(user *models.User) error {
	return translate(s.db.Save(user).Error)
}

func (s *DatabaseStore) DeleteUser(id uint) error {
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) ToggleUserStatus(id uint) (*models.User, error) {
	res := s.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetUser(id)
}

func (s *DatabaseStore) TouchUserActivity(id uint) error {
	return s.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("last_active", time.Now()).Error
}

func (s *DatabaseStore) CountUsers() (int64, error) {
	var n int64
	err := s.db.Model(&models.User{}).Count(&n).Error
	return n, err
}

func (s *DatabaseStore) CountActiveUsersSince(since time.Time) (int64, error) {
	var n int64
	err := s.db.Model(&models.User{}).Where("last_active >= ?", since).Count(&n).Error
	return n, err
}

func (s *DatabaseStore) GetRecentUsers(since time.Time, limit int) ([]*models.User, error) {
	var users []*models.User
	err := s.db.Where("created_at >= ?", since).
		Order("created_at DESC").Limit(limit).Find(&users).Error
	return users, err
}

// ---------- Businesses ----------

func (s *DatabaseStore) GetAllBusinesses() ([]*models.Business, error) {
	var businesses []*models.Business
	if err := s.db.Order("id").Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

func (s *DatabaseStore) GetBusiness(id uint) (*models.Business, error) {
	var business models.Business
	if err := s.db.First(&business, id).Error; err != nil {
		return nil, translate(err)
	}
	return &business, nil
}

func (s *DatabaseStore) CreateBusiness(business *models.Business) (*models.Business, error) {
	if err := s.db.Create(business).Error; err != nil {
		return nil, translate(err)
	}
	return business, nil
}

func (s *DatabaseStore) UpdateBusiness(business *models.Business) error {
	return translate(s.db.Save(business).Error)
}

func (s *DatabaseStore) DeleteBusiness(id uint) error {
	res := s.db.Delete(&models.Business{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) UpdateBusinessStatus(id uint, status string) (*models.Business, error) {
	res := s.db.Model(&models.Business{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetBusiness(id)
}

func (s *DatabaseStore) CountBusinesses() (int64, error) {
	var n int64
	err := s.db.Model(&models.Business{}).Count(&n).Error
	return n, err
}

func (s *DatabaseStore) CountBusinessesByStatus(status string) (int64, error) {
	var n int64
	err := s.db.Model(&models.Business{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (s *DatabaseStore) GetRecentBusinesses(since time.Time, limit int) ([]*models.Business, error) {
	var businesses []*models.Business
	err := s.db.Where("created_at >= ?", since).
		Order("created_at DESC").Limit(limit).Find(&businesses).Error
	return businesses, err
}

// ---------- Posts ----------

func (s *DatabaseStore) GetAllPosts() ([]*models.Post, error) {
	var posts []*models.Post
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *DatabaseStore) GetPost(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *DatabaseStore) CreatePost(post *models.Post) (*models.Post, error) {
	if err := s.db.Create(post).Error; err != nil {
		return nil, translate(err)
	}
	return post, nil
}

func (s *DatabaseStore) UpdatePost(post *models.Post) error {
	return translate(s.db.Save(post).Error)
}

func (s *DatabaseStore) DeletePost(id uint) error {
	res := s.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) CountPosts() (int64, error) {
	var n int64
	err := s.db.Model(&models.Post{}).Count(&n).Error
	return n, err
}

func (s *DatabaseStore) CountPostsByStatus(status string) (int64, error) {
	var n int64
	err := s.db.Model(&models.Post{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (s *DatabaseStore) CountPostsByMenu(menuID uint) (int64, error) {
	var n int64
	err := s.db.Model(&models.Post{}).Where("menu_id = ?", menuID).Count(&n).Error
	return n, err
}

func (s *DatabaseStore) GetMenuPosts(menuID uint, createdAfter *time.Time) ([]*models.Post, error) {
	q := s.db.Where("menu_id = ?", menuID)
	if createdAfter != nil {
		q = q.Where("created_at >= ?", *createdAfter)
	}
	var posts []*models.Post
	err := q.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (s *DatabaseStore) GetLabelPosts(menuID uint, label string) ([]*models.Post, error) {
	var posts []*models.Post
	err := s.db.Where("menu_id = ? AND assigned_label = ?", menuID, label).
		Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (s *DatabaseStore) GetRecentPosts(since time.Time, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := s.db.Where("created_at >= ?", since).
		Order("created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

// ---------- Districts ----------

func (s *DatabaseStore) GetAllDistricts() ([]*models.District, error) {
	var districts []*models.District
	if err := s.db.Order("name").Find(&districts).Error; err != nil {
		return nil, err
	}
	return districts, nil
}

// ---------- Hashtags ----------

func (s *DatabaseStore) GetAllHashtags() ([]*models.Hashtag, error) {
	var tags []*models.Hashtag
	if err := s.db.Order("created_at DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *DatabaseStore) GetHashtag(id uint) (*models.Hashtag, error) {
	var tag models.Hashtag
	if err := s.db.First(&tag, id).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (s *DatabaseStore) GetPopularHashtags(limit int) ([]*models.Hashtag, error) {
	var tags []*models.Hashtag
	err := s.db.Order("usage_count DESC").Limit(limit).Find(&tags).Error
	return tags, err
}

func (s *DatabaseStore) CreateHashtag(tag *models.Hashtag) (*models.Hashtag, error) {
	if err := s.db.Create(tag).Error; err != nil {
		return nil, translate(err)
	}
	return tag, nil
}

func (s *DatabaseStore) UpdateHashtag(tag *models.Hashtag) error {
	return translate(s.db.Save(tag).Error)
}

func (s *DatabaseStore) DeleteHashtag(id uint) error {
	res := s.db.Delete(&models.Hashtag{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------- Categories ----------

func (s *DatabaseStore) GetAllCategories() ([]*models.Category, error) {
	var categories []*models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *DatabaseStore) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := s.db.Create(category).Error; err != nil {
		return nil, translate(err)
	}
	return category, nil
}

// ---------- Menus ----------

func (s *DatabaseStore) GetAllMenus() ([]*models.Menu, error) {
	var menus []*models.Menu
	if err := s.db.Order("created_at DESC").Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (s *DatabaseStore) GetMenu(id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := s.db.First(&menu, id).Error; err != nil {
		return nil, translate(err)
	}
	return &menu, nil
}

func (s *DatabaseStore) CreateMenu(menu *models.Menu) (*models.Menu, error) {
	if err := s.db.Create(menu).Error; err != nil {
		return nil, translate(err)
	}
	return menu, nil
}

func (s *DatabaseStore) UpdateMenu(menu *models.Menu) error {
	return translate(s.db.Save(menu).Error)
}

func (s *DatabaseStore) DeleteMenu(id uint) error {
	res := s.db.Delete(&models.Menu{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------- Settings ----------

func (s *DatabaseStore) GetAllSettings() ([]*models.Setting, error) {
	var settings []*models.Setting
	if err := s.db.Order("category, key").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *DatabaseStore) GetSetting(category, key string) (*models.Setting, error) {
	var setting models.Setting
	if err := s.db.Where("category = ? AND key = ?", category, key).First(&setting).Error; err != nil {
		return nil, translate(err)
	}
	return &setting, nil
}

func (s *DatabaseStore) UpsertSetting(setting *models.Setting) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(setting).Error
}

func (s *DatabaseStore) CreateSetting(setting *models.Setting) (*models.Setting, error) {
	if err := s.db.Create(setting).Error; err != nil {
		return nil, translate(err)
	}
	return setting, nil
}

func (s *DatabaseStore) DeleteSetting(category, key string) error {
	res := s.db.Where("category = ? AND key = ?", category, key).Delete(&models.Setting{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) DeleteSettingsByCategory(category string) error {
	return s.db.Where("category = ?", category).Delete(&models.Setting{}).Error
}

// ---------- OTP challenges ----------

// UpsertOTPChallenge replaces any prior challenge for phone in a single
// INSERT ... ON CONFLICT statement so concurrent requests cannot lose
// updates; the most recent code wins.
func (s *DatabaseStore) UpsertOTPChallenge(phone, code string, expiresAt time.Time) (*models.OTPChallenge, error) {
	challenge := &models.OTPChallenge{
		Phone:     models.NormalizePhone(phone),
		Code:      code,
		ExpiresAt: expiresAt,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "phone"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"code":        code,
			"expires_at":  expiresAt,
			"attempts":    0,
			"is_used":     false,
			"verified_at": nil,
			"updated_at":  time.Now(),
		}),
	}).Create(challenge).Error
	if err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *DatabaseStore) GetOTPChallenge(phone string) (*models.OTPChallenge, error) {
	var challenge models.OTPChallenge
	if err := s.db.Where("phone = ?", models.NormalizePhone(phone)).First(&challenge).Error; err != nil {
		return nil, translate(err)
	}
	return &challenge, nil
}

func (s *DatabaseStore) UpdateOTPChallenge(challenge *models.OTPChallenge) error {
	return translate(s.db.Save(challenge).Error)
}

func (s *DatabaseStore) DeleteExpiredOTPChallenges() (int64, error) {
	res := s.db.Unscoped().Where("expires_at < ?", time.Now()).Delete(&models.OTPChallenge{})
	return res.RowsAffected, res.Error
}
