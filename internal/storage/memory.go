package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/localhub-app/localhub-backend/internal/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps all data in process memory. Used by the test suite
// and for local development without a database (USE_MEMORY_STORE=true).
type MemoryStore struct {
	mu sync.RWMutex

	admins     map[uint]*models.AdminUser
	users      map[uint]*models.User
	businesses map[uint]*models.Business
	posts      map[uint]*models.Post
	districts  map[uint]*models.District
	hashtags   map[uint]*models.Hashtag
	categories map[uint]*models.Category
	menus      map[uint]*models.Menu
	settings   map[uint]*models.Setting
	otps       map[string]*models.OTPChallenge // keyed by phone

	nextID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		admins:     make(map[uint]*models.AdminUser),
		users:      make(map[uint]*models.User),
		businesses: make(map[uint]*models.Business),
		posts:      make(map[uint]*models.Post),
		districts:  make(map[uint]*models.District),
		hashtags:   make(map[uint]*models.Hashtag),
		categories: make(map[uint]*models.Category),
		menus:      make(map[uint]*models.Menu),
		settings:   make(map[uint]*models.Setting),
		otps:       make(map[string]*models.OTPChallenge),
	}
}

// allocate must be called with the write lock held.
func (m *MemoryStore) allocate(model *gorm.Model) {
	m.nextID++
	model.ID = m.nextID
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now
}

// ---------- Admin accounts ----------

func (m *MemoryStore) GetAdminByEmail(email string) (*models.AdminUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range m.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAdminByID(id uint) (*models.AdminUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	admin, ok := m.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	return admin, nil
}

func (m *MemoryStore) CreateAdmin(admin *models.AdminUser) (*models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	for _, existing := range m.admins {
		if existing.Email == admin.Email {
			return nil, ErrDuplicate
		}
	}
	m.allocate(&admin.Model)
	m.admins[admin.ID] = admin
	return admin, nil
}

func (m *MemoryStore) UpdateAdmin(admin *models.AdminUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.admins[admin.ID]; !ok {
		return ErrNotFound
	}
	admin.UpdatedAt = time.Now()
	m.admins[admin.ID] = admin
	return nil
}

// ---------- End users ----------

func (m *MemoryStore) GetAllUsers() ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MemoryStore) GetUser(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) GetUserByPhone(phone string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.findUserByPhone(models.NormalizePhone(phone))
}

// findUserByPhone must be called with at least the read lock held.
func (m *MemoryStore) findUserByPhone(phone string) (*models.User, error) {
	for _, user := range m.users {
		if user.Phone == phone {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.Phone = models.NormalizePhone(user.Phone)
	if _, err := m.findUserByPhone(user.Phone); err == nil {
		return nil, ErrDuplicate
	}
	m.allocate(&user.Model)
	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) CreateUserIfAbsent(phone string, defaults *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	phone = models.NormalizePhone(phone)
	if user, err := m.findUserByPhone(phone); err == nil {
		return user, nil
	}

	user := *defaults
	user.Phone = phone
	m.allocate(&user.Model)
	m.users[user.ID] = &user
	return &user, nil
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *MemoryStore) DeleteUser(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *MemoryStore) ToggleUserStatus(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user.IsActive = !user.IsActive
	user.UpdatedAt = time.Now()
	return user, nil
}

func (m *MemoryStore) TouchUserActivity(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	now := time.Now()
	user.LastActive = &now
	return nil
}

func (m *MemoryStore) CountUsers() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *MemoryStore) CountActiveUsersSince(since time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, user := range m.users {
		if user.LastActive != nil && !user.LastActive.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) GetRecentUsers(since time.Time, limit int) ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var users []*models.User
	for _, user := range m.users {
		if !user.CreatedAt.Before(since) {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

// ---------- Businesses ----------

func (m *MemoryStore) GetAllBusinesses() ([]*models.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	businesses := make([]*models.Business, 0, len(m.businesses))
	for _, b := range m.businesses {
		businesses = append(businesses, b)
	}
	sort.Slice(businesses, func(i, j int) bool { return businesses[i].ID < businesses[j].ID })
	return businesses, nil
}

func (m *MemoryStore) GetBusiness(id uint) (*models.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	business, ok := m.businesses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return business, nil
}

func (m *MemoryStore) CreateBusiness(business *models.Business) (*models.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if business.Status == "" {
		business.Status = models.BusinessStatusPending
	}
	m.allocate(&business.Model)
	m.businesses[business.ID] = business
	return business, nil
}

func (m *MemoryStore) UpdateBusiness(business *models.Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.businesses[business.ID]; !ok {
		return ErrNotFound
	}
	business.UpdatedAt = time.Now()
	m.businesses[business.ID] = business
	return nil
}

func (m *MemoryStore) DeleteBusiness(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.businesses[id]; !ok {
		return ErrNotFound
	}
	delete(m.businesses, id)
	return nil
}

func (m *MemoryStore) UpdateBusinessStatus(id uint, status string) (*models.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	business, ok := m.businesses[id]
	if !ok {
		return nil, ErrNotFound
	}
	business.Status = status
	business.UpdatedAt = time.Now()
	return business, nil
}

func (m *MemoryStore) CountBusinesses() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.businesses)), nil
}

func (m *MemoryStore) CountBusinessesByStatus(status string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, b := range m.businesses {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) GetRecentBusinesses(since time.Time, limit int) ([]*models.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var businesses []*models.Business
	for _, b := range m.businesses {
		if !b.CreatedAt.Before(since) {
			businesses = append(businesses, b)
		}
	}
	sort.Slice(businesses, func(i, j int) bool { return businesses[i].CreatedAt.After(businesses[j].CreatedAt) })
	if len(businesses) > limit {
		businesses = businesses[:limit]
	}
	return businesses, nil
}

// ---------- Posts ----------

func (m *MemoryStore) GetAllPosts() ([]*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (m *MemoryStore) GetPost(id uint) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return post, nil
}

func (m *MemoryStore) CreatePost(post *models.Post) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if post.Status == "" {
		post.Status = models.PostStatusPending
	}
	m.allocate(&post.Model)
	m.posts[post.ID] = post
	return post, nil
}

func (m *MemoryStore) UpdatePost(post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[post.ID]; !ok {
		return ErrNotFound
	}
	post.UpdatedAt = time.Now()
	m.posts[post.ID] = post
	return nil
}

func (m *MemoryStore) DeletePost(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *MemoryStore) CountPosts() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.posts)), nil
}

func (m *MemoryStore) CountPostsByStatus(status string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, p := range m.posts {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountPostsByMenu(menuID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, p := range m.posts {
		if p.MenuID != nil && *p.MenuID == menuID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) GetMenuPosts(menuID uint, createdAfter *time.Time) ([]*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var posts []*models.Post
	for _, p := range m.posts {
		if p.MenuID == nil || *p.MenuID != menuID {
			continue
		}
		if createdAfter != nil && p.CreatedAt.Before(*createdAfter) {
			continue
		}
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (m *MemoryStore) GetLabelPosts(menuID uint, label string) ([]*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var posts []*models.Post
	for _, p := range m.posts {
		if p.MenuID != nil && *p.MenuID == menuID && p.AssignedLabel == label {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (m *MemoryStore) GetRecentPosts(since time.Time, limit int) ([]*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var posts []*models.Post
	for _, p := range m.posts {
		if !p.CreatedAt.Before(since) {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// ---------- Districts ----------

func (m *MemoryStore) GetAllDistricts() ([]*models.District, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	districts := make([]*models.District, 0, len(m.districts))
	for _, d := range m.districts {
		districts = append(districts, d)
	}
	sort.Slice(districts, func(i, j int) bool { return districts[i].Name < districts[j].Name })
	return districts, nil
}

// SeedDistrict inserts a district row. Only used by tests and the
// memory-store development mode.
func (m *MemoryStore) SeedDistrict(district *models.District) *models.District {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocate(&district.Model)
	m.districts[district.ID] = district
	return district
}

// ---------- Hashtags ----------

func (m *MemoryStore) GetAllHashtags() ([]*models.Hashtag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tags := make([]*models.Hashtag, 0, len(m.hashtags))
	for _, h := range m.hashtags {
		tags = append(tags, h)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].CreatedAt.After(tags[j].CreatedAt) })
	return tags, nil
}

func (m *MemoryStore) GetHashtag(id uint) (*models.Hashtag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tag, ok := m.hashtags[id]
	if !ok {
		return nil, ErrNotFound
	}
	return tag, nil
}

func (m *MemoryStore) GetPopularHashtags(limit int) ([]*models.Hashtag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tags := make([]*models.Hashtag, 0, len(m.hashtags))
	for _, h := range m.hashtags {
		tags = append(tags, h)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].UsageCount > tags[j].UsageCount })
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

func (m *MemoryStore) CreateHashtag(tag *models.Hashtag) (*models.Hashtag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tag.Name = models.NormalizeHashtag(tag.Name)
	for _, existing := range m.hashtags {
		if existing.Name == tag.Name {
			return nil, ErrDuplicate
		}
	}
	m.allocate(&tag.Model)
	m.hashtags[tag.ID] = tag
	return tag, nil
}

func (m *MemoryStore) UpdateHashtag(tag *models.Hashtag) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.hashtags[tag.ID]; !ok {
		return ErrNotFound
	}
	tag.UpdatedAt = time.Now()
	m.hashtags[tag.ID] = tag
	return nil
}

func (m *MemoryStore) DeleteHashtag(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.hashtags[id]; !ok {
		return ErrNotFound
	}
	delete(m.hashtags, id)
	return nil
}

// ---------- Categories ----------

func (m *MemoryStore) GetAllCategories() ([]*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	categories := make([]*models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *MemoryStore) CreateCategory(name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.categories {
		if existing.Name == name {
			return nil, ErrDuplicate
		}
	}
	category := &models.Category{Name: name}
	m.allocate(&category.Model)
	m.categories[category.ID] = category
	return category, nil
}

// ---------- Menus ----------

func (m *MemoryStore) GetAllMenus() ([]*models.Menu, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	menus := make([]*models.Menu, 0, len(m.menus))
	for _, menu := range m.menus {
		menus = append(menus, menu)
	}
	sort.Slice(menus, func(i, j int) bool { return menus[i].CreatedAt.After(menus[j].CreatedAt) })
	return menus, nil
}

func (m *MemoryStore) GetMenu(id uint) (*models.Menu, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	menu, ok := m.menus[id]
	if !ok {
		return nil, ErrNotFound
	}
	return menu, nil
}

func (m *MemoryStore) CreateMenu(menu *models.Menu) (*models.Menu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocate(&menu.Model)
	m.menus[menu.ID] = menu
	return menu, nil
}

func (m *MemoryStore) UpdateMenu(menu *models.Menu) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.menus[menu.ID]; !ok {
		return ErrNotFound
	}
	menu.UpdatedAt = time.Now()
	m.menus[menu.ID] = menu
	return nil
}

func (m *MemoryStore) DeleteMenu(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.menus[id]; !ok {
		return ErrNotFound
	}
	delete(m.menus, id)
	return nil
}

// ---------- Settings ----------

func (m *MemoryStore) GetAllSettings() ([]*models.Setting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	settings := make([]*models.Setting, 0, len(m.settings))
	for _, s := range m.settings {
		settings = append(settings, s)
	}
	sort.Slice(settings, func(i, j int) bool {
		if settings[i].Category != settings[j].Category {
			return settings[i].Category < settings[j].Category
		}
		return settings[i].Key < settings[j].Key
	})
	return settings, nil
}

func (m *MemoryStore) GetSetting(category, key string) (*models.Setting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.settings {
		if s.Category == category && s.Key == key {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpsertSetting(setting *models.Setting) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.settings {
		if existing.Category == setting.Category && existing.Key == setting.Key {
			existing.Value = setting.Value
			existing.Type = setting.Type
			existing.UpdatedAt = time.Now()
			return nil
		}
	}
	m.allocate(&setting.Model)
	m.settings[setting.ID] = setting
	return nil
}

func (m *MemoryStore) CreateSetting(setting *models.Setting) (*models.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.settings {
		if existing.Category == setting.Category && existing.Key == setting.Key {
			return nil, ErrDuplicate
		}
	}
	m.allocate(&setting.Model)
	m.settings[setting.ID] = setting
	return setting, nil
}

func (m *MemoryStore) DeleteSetting(category, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.settings {
		if s.Category == category && s.Key == key {
			delete(m.settings, id)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) DeleteSettingsByCategory(category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.settings {
		if s.Category == category {
			delete(m.settings, id)
		}
	}
	return nil
}

// ---------- OTP challenges ----------

func (m *MemoryStore) UpsertOTPChallenge(phone, code string, expiresAt time.Time) (*models.OTPChallenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	phone = models.NormalizePhone(phone)
	challenge := &models.OTPChallenge{
		Phone:     phone,
		Code:      code,
		ExpiresAt: expiresAt,
	}
	if existing, ok := m.otps[phone]; ok {
		challenge.Model = existing.Model
		challenge.UpdatedAt = time.Now()
	} else {
		m.allocate(&challenge.Model)
	}
	m.otps[phone] = challenge
	return challenge, nil
}

func (m *MemoryStore) GetOTPChallenge(phone string) (*models.OTPChallenge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	challenge, ok := m.otps[models.NormalizePhone(phone)]
	if !ok {
		return nil, ErrNotFound
	}
	return challenge, nil
}

func (m *MemoryStore) UpdateOTPChallenge(challenge *models.OTPChallenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.otps[challenge.Phone]; !ok {
		return ErrNotFound
	}
	challenge.UpdatedAt = time.Now()
	m.otps[challenge.Phone] = challenge
	return nil
}

func (m *MemoryStore) DeleteExpiredOTPChallenges() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var removed int64
	for phone, challenge := range m.otps {
		if challenge.ExpiresAt.Before(now) {
			delete(m.otps, phone)
			removed++
		}
	}
	return removed, nil
}
