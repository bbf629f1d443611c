package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/auth"
	"github.com/localhub-app/localhub-backend/internal/handlers"
	"github.com/localhub-app/localhub-backend/internal/middleware"
	"github.com/localhub-app/localhub-backend/internal/services"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

// SetupRoutes wires every API route onto the app. Admin routes sit
// behind Authenticate plus a per-resource Authorize guard; app-facing
// routes (OTP login, profile) only need a valid token.
func SetupRoutes(app *fiber.App, store storage.Store, tokens *auth.TokenManager, otp *services.OTPService, ping func() error) {
	authHandler := handlers.NewAuthHandler(store, tokens, otp)
	userHandler := handlers.NewUserHandler(store)
	businessHandler := handlers.NewBusinessHandler(store)
	postHandler := handlers.NewPostHandler(store)
	districtHandler := handlers.NewDistrictHandler(store)
	hashtagHandler := handlers.NewHashtagHandler(store)
	categoryHandler := handlers.NewCategoryHandler(store)
	menuHandler := handlers.NewMenuHandler(store)
	settingHandler := handlers.NewSettingHandler(store)
	dashboardHandler := handlers.NewDashboardHandler(store)
	profileHandler := handlers.NewProfileHandler(store)
	healthHandler := handlers.NewHealthHandler(ping)

	authed := middleware.Authenticate(tokens)

	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Health)

	api := app.Group("/api")

	// Authentication
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/check-user", authHandler.CheckUser)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/send-otp", authHandler.SendOTP)
	authGroup.Post("/verify-otp", authHandler.VerifyOTP)
	authGroup.Post("/logout", authed, authHandler.Logout)
	authGroup.Get("/profile", authed, authHandler.GetProfile)
	authGroup.Put("/profile", authed, authHandler.UpdateProfile)
	authGroup.Put("/change-password", authed, authHandler.ChangePassword)

	// User management
	users := api.Group("/users", authed)
	users.Get("/", middleware.Authorize(auth.ActionUsersRead), userHandler.GetUsers)
	users.Get("/:id", middleware.Authorize(auth.ActionUsersRead), userHandler.GetUserByID)
	users.Post("/", middleware.Authorize(auth.ActionUsersWrite), userHandler.CreateUser)
	users.Put("/:id", middleware.Authorize(auth.ActionUsersWrite), userHandler.UpdateUser)
	users.Patch("/:id/toggle-status", middleware.Authorize(auth.ActionUsersWrite), userHandler.ToggleUserStatus)
	users.Delete("/:id", middleware.Authorize(auth.ActionUsersDelete), userHandler.DeleteUser)

	// Business management
	businesses := api.Group("/businesses", authed)
	businesses.Get("/", middleware.Authorize(auth.ActionBusinessesRead), businessHandler.GetBusinesses)
	businesses.Get("/:id", middleware.Authorize(auth.ActionBusinessesRead), businessHandler.GetBusinessByID)
	businesses.Post("/", middleware.Authorize(auth.ActionBusinessesWrite), businessHandler.CreateBusiness)
	businesses.Put("/:id", middleware.Authorize(auth.ActionBusinessesWrite), businessHandler.UpdateBusiness)
	businesses.Patch("/:id/status", middleware.Authorize(auth.ActionBusinessesWrite), businessHandler.UpdateBusinessStatus)
	businesses.Delete("/:id", middleware.Authorize(auth.ActionBusinessesDelete), businessHandler.DeleteBusiness)

	// Post moderation
	posts := api.Group("/posts", authed)
	posts.Get("/", middleware.Authorize(auth.ActionPostsRead), postHandler.GetPosts)
	posts.Get("/:id", middleware.Authorize(auth.ActionPostsRead), postHandler.GetPostByID)
	posts.Post("/", middleware.Authorize(auth.ActionPostsWrite), postHandler.CreatePost)
	posts.Patch("/:id/status", middleware.Authorize(auth.ActionPostsWrite), postHandler.UpdatePostStatus)
	posts.Patch("/:id/duration", middleware.Authorize(auth.ActionPostsWrite), postHandler.SetPostDuration)
	posts.Patch("/:id/view-limit", middleware.Authorize(auth.ActionPostsWrite), postHandler.SetPostViewLimit)
	posts.Patch("/:id/label", middleware.Authorize(auth.ActionPostsWrite), postHandler.AssignPostLabel)
	posts.Delete("/:id", middleware.Authorize(auth.ActionPostsDelete), postHandler.DeletePost)

	// Districts are reference data for the app's signup flow.
	api.Get("/districts", districtHandler.GetDistricts)

	// Hashtags
	hashtags := api.Group("/hashtags", authed)
	hashtags.Get("/", middleware.Authorize(auth.ActionHashtagsRead), hashtagHandler.GetHashtags)
	hashtags.Get("/popular", middleware.Authorize(auth.ActionHashtagsRead), hashtagHandler.GetPopularHashtags)
	hashtags.Get("/:id", middleware.Authorize(auth.ActionHashtagsRead), hashtagHandler.GetHashtagByID)
	hashtags.Post("/", middleware.Authorize(auth.ActionHashtagsWrite), hashtagHandler.CreateHashtag)
	hashtags.Put("/:id", middleware.Authorize(auth.ActionHashtagsWrite), hashtagHandler.UpdateHashtag)
	hashtags.Delete("/:id", middleware.Authorize(auth.ActionHashtagsDelete), hashtagHandler.DeleteHashtag)

	// Business categories
	api.Get("/categories", categoryHandler.GetCategories)
	api.Post("/categories", authed, middleware.Authorize(auth.ActionBusinessesWrite), categoryHandler.AddCategory)

	// Menus and labels
	menus := api.Group("/menus", authed)
	menus.Get("/", middleware.Authorize(auth.ActionMenusRead), menuHandler.GetMenus)
	menus.Get("/labels/all", middleware.Authorize(auth.ActionMenusRead), menuHandler.GetAllLabels)
	menus.Get("/:menuId/labels/:labelName/posts", middleware.Authorize(auth.ActionMenusRead), menuHandler.GetLabelPosts)
	menus.Get("/:id/posts", middleware.Authorize(auth.ActionMenusRead), menuHandler.GetMenuPosts)
	menus.Post("/", middleware.Authorize(auth.ActionMenusWrite), menuHandler.CreateMenu)
	menus.Put("/:id", middleware.Authorize(auth.ActionMenusWrite), menuHandler.UpdateMenu)
	menus.Delete("/:id", middleware.Authorize(auth.ActionMenusWrite), menuHandler.DeleteMenu)

	// Settings
	settings := api.Group("/settings", authed)
	settings.Get("/", middleware.Authorize(auth.ActionSettingsRead), settingHandler.GetSettings)
	settings.Get("/:category/:key", middleware.Authorize(auth.ActionSettingsRead), settingHandler.GetSetting)
	settings.Post("/", middleware.Authorize(auth.ActionSettingsWrite), settingHandler.CreateSetting)
	settings.Put("/:category", middleware.Authorize(auth.ActionSettingsWrite), settingHandler.UpdateCategorySettings)
	settings.Post("/:category/reset", middleware.Authorize(auth.ActionSettingsWrite), settingHandler.ResetCategorySettings)
	settings.Delete("/:category/:key", middleware.Authorize(auth.ActionSettingsWrite), settingHandler.DeleteSetting)

	// Dashboard
	dashboard := api.Group("/dashboard", authed, middleware.Authorize(auth.ActionUsersRead))
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/recent-activities", dashboardHandler.GetRecentActivities)

	// App-facing profile, keyed by phone. Any valid token may read or
	// update its own profile; the app enforces ownership client-side.
	profile := api.Group("/profile", authed)
	profile.Get("/:phone", profileHandler.GetProfileByPhone)
	profile.Put("/:phone", profileHandler.UpdateProfileByPhone)
}
