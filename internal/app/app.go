package app

import (
	"campus-backend/internal/auth"
	"campus-backend/internal/certificates"
	"campus-backend/internal/chat"
	"campus-backend/internal/config"
	"campus-backend/internal/constants"
	"campus-backend/internal/database"
	"campus-backend/internal/health"
	"campus-backend/internal/leave"
	"campus-backend/internal/middleware"
	"campus-backend/internal/pkg/fieldcodec"
	"campus-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. The DB and Redis handles are returned so main can verify
// connectivity before listening.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Session (Redis); the client is shared with the health marker
	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	// Health (no auth)
	var pinger health.DBPinger
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			pinger = sqlDB
		}
	}
	healthHandlers := &health.Handlers{Rdb: rdb, DB: pinger}
	app.Get("/health/json", healthHandlers.JSON)

	// Auth (no auth middleware): POST login, GET me, DELETE logout
	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	if db == nil {
		return app, nil, rdb, nil
	}

	// User administration
	userService := &users.Service{DB: db, Rdb: rdb}
	userHandlers := &users.Handlers{Service: userService}
	userGroup := app.Group("/api/v1/users", middleware.RequireAuth())
	userGroup.Post("/create-user", middleware.AuthorizePermission(constants.CreateUser), userHandlers.CreateUser)
	userGroup.Put("/update-user/:id", userHandlers.UpdateUser)
	userGroup.Get("/view-user/:id", userHandlers.ViewUser)
	userGroup.Patch("/update-role", middleware.AuthorizePermission(constants.AssignRole), userHandlers.UpdateRole)
	userGroup.Delete("/remove-user", middleware.AuthorizePermission(constants.RemoveUser), userHandlers.RemoveUser)

	// Leave module
	leaveHandlers := &leave.Handlers{
		Balance:  &leave.BalanceService{DB: db, UsageStatuses: cfg.LeaveUsageStatuses},
		Requests: &leave.RequestService{DB: db},
		Admin:    &leave.AdminService{DB: db},
	}
	leaveGroup := app.Group("/api/v1/leave", middleware.RequireAuth())
	leaveGroup.Get("/my-balance", leaveHandlers.MyBalance)
	leaveGroup.Get("/my-profile", leaveHandlers.MyProfile)
	leaveGroup.Post("/apply", middleware.AuthorizePermission(constants.ApplyLeave), leaveHandlers.Apply)
	leaveGroup.Get("/my-entries", leaveHandlers.MyEntries)
	leaveGroup.Get("/pending", middleware.AuthorizePermission(constants.ApproveLeave), leaveHandlers.Pending)
	leaveGroup.Patch("/review", middleware.AuthorizePermission(constants.ApproveLeave), leaveHandlers.Review)
	leaveGroup.Post("/periods", middleware.AuthorizePermission(constants.ManagePeriods), leaveHandlers.CreatePeriod)
	leaveGroup.Patch("/periods/:id/activate", middleware.AuthorizePermission(constants.ManagePeriods), leaveHandlers.ActivatePeriod)
	leaveGroup.Post("/types", middleware.AuthorizePermission(constants.ManageAllocations), leaveHandlers.CreateLeaveType)
	leaveGroup.Post("/allocations", middleware.AuthorizePermission(constants.ManageAllocations), leaveHandlers.CreateAllocation)
	leaveGroup.Get("/allocations", middleware.AuthorizePermission(constants.ManageAllocations), leaveHandlers.ListAllocations)
	leaveGroup.Post("/snapshots", middleware.AuthorizePermission(constants.RecordSnapshot), leaveHandlers.RecordSnapshot)
	leaveGroup.Post("/profiles", middleware.AuthorizePermission(constants.ManageProfiles), leaveHandlers.CreateProfile)

	// Chat (message bodies encrypted at rest)
	chatService := &chat.Service{
		DB:    db,
		Codec: fieldcodec.New(cfg.ChatSecret, cfg.SessionSecret),
	}
	chatHandlers := &chat.Handlers{Service: chatService}
	chatGroup := app.Group("/api/v1/chat", middleware.RequireAuth())
	chatGroup.Post("/send", chatHandlers.Send)
	chatGroup.Get("/history/:peer", chatHandlers.History)

	// Certificates
	certService := &certificates.Service{DB: db}
	certHandlers := &certificates.Handlers{Service: certService}
	certGroup := app.Group("/api/v1/certificates", middleware.RequireAuth())
	certGroup.Post("/create", middleware.AuthorizePermission(constants.IssueCertificate), certHandlers.Create)
	certGroup.Get("/by-roll/:roll", middleware.AuthorizePermission(constants.ViewRecords), certHandlers.ListByRoll)
	certGroup.Patch("/:id/status", middleware.AuthorizePermission(constants.IssueCertificate), certHandlers.UpdateStatus)

	return app, db, rdb, nil
}
