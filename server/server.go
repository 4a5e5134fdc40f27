package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flamtunes/config"
	"flamtunes/core/auth"
	"flamtunes/core/library"
	"flamtunes/core/live"
	"flamtunes/core/notify"
	"flamtunes/core/submission"
	"flamtunes/db"
	"flamtunes/logger"
	"flamtunes/model"
	"flamtunes/repository"
	"flamtunes/storage"

	"github.com/gorilla/mux"
)

// Start initializes dependencies and runs the HTTP server until SIGINT or
// SIGTERM.
func Start() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.DB.Close()

	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize database schema", logger.ErrorField(err))
	}

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect GORM", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	if err := db.AutoMigrateModels(
		&model.AIHost{},
		&model.Show{},
		&model.Request{},
		&model.NowPlaying{},
		&model.Segment{},
	); err != nil {
		logger.Fatal("Failed to migrate schedule tables", logger.ErrorField(err))
	}

	if err := db.ConnectRedis(cfg); err != nil {
		logger.Fatal("Failed to connect to Redis", logger.ErrorField(err))
	}
	defer db.CloseRedis()

	blobs, err := storage.NewMinioStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize object storage", logger.ErrorField(err))
	}

	userRepo := repository.NewMySQLUserRepository(db.DB)
	profileRepo := repository.NewMySQLProfileRepository(db.DB)
	trackRepo := repository.NewMySQLTrackRepository(db.DB)
	subRepo := repository.NewMySQLSubmissionRepository(db.DB)
	showRepo := repository.NewGormShowRepository(db.GormDB)
	hostRepo := repository.NewGormAIHostRepository(db.GormDB)
	reqRepo := repository.NewGormRequestRepository(db.GormDB)
	npRepo := repository.NewGormNowPlayingRepository(db.GormDB)
	segmentRepo := repository.NewGormSegmentRepository(db.GormDB)

	dispatcher := notify.NewDispatcher(notify.NewSMTPSender(cfg), 64)
	defer dispatcher.Close()
	notifier := &notify.SubmissionNotifier{Dispatcher: dispatcher, SiteURL: cfg.SiteURL}

	submissionService := submission.NewService(
		subRepo, trackRepo, blobs, cfg.SubmissionsBucket, cfg.TracksBucket, notifier)
	libraryService := library.NewService(trackRepo, blobs, cfg.TracksBucket)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	hub := live.NewHub()

	apiHandler := NewAPIHandler(
		userRepo, profileRepo, trackRepo, subRepo,
		showRepo, hostRepo, reqRepo, npRepo, segmentRepo,
		submissionService, libraryService, tokens, hub, cfg)

	router := mux.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Internal-Key")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Public listener endpoints
	router.HandleFunc("/api/now-playing", apiHandler.GetNowPlayingHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/history", apiHandler.GetHistoryHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/schedule", apiHandler.GetScheduleHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/requests", apiHandler.CreateRequestHandler).Methods(http.MethodPost)
	router.HandleFunc("/ws/now-playing", hub.ServeWS)

	// Artist endpoints
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/artist/profile", apiHandler.AuthMiddleware(apiHandler.GetProfileHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/artist/profile", apiHandler.AuthMiddleware(apiHandler.UpdateProfileHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/artist/submissions", apiHandler.AuthMiddleware(apiHandler.SubmitTrackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/artist/submissions", apiHandler.AuthMiddleware(apiHandler.ListOwnSubmissionsHandler)).Methods(http.MethodGet)

	// Admin endpoints
	router.HandleFunc("/api/admin/submissions", apiHandler.AdminMiddleware(apiHandler.ListSubmissionsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/submissions/review", apiHandler.AdminMiddleware(apiHandler.ReviewSubmissionHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/tracks", apiHandler.AdminMiddleware(apiHandler.ListTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/tracks", apiHandler.AdminMiddleware(apiHandler.UploadTrackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/tracks/{id}", apiHandler.AdminMiddleware(apiHandler.DeleteTrackHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/admin/shows", apiHandler.AdminMiddleware(apiHandler.ListShowsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/shows", apiHandler.AdminMiddleware(apiHandler.CreateShowHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/shows/{id}", apiHandler.AdminMiddleware(apiHandler.UpdateShowHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/admin/shows/{id}", apiHandler.AdminMiddleware(apiHandler.DeleteShowHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/admin/ai-hosts", apiHandler.AdminMiddleware(apiHandler.ListAIHostsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/ai-hosts", apiHandler.AdminMiddleware(apiHandler.CreateAIHostHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/ai-hosts/{id}", apiHandler.AdminMiddleware(apiHandler.UpdateAIHostHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/admin/ai-hosts/{id}", apiHandler.AdminMiddleware(apiHandler.DeleteAIHostHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/admin/segments", apiHandler.AdminMiddleware(apiHandler.ListSegmentsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/requests", apiHandler.AdminMiddleware(apiHandler.ListRequestsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/requests/mark", apiHandler.AdminMiddleware(apiHandler.MarkRequestHandler)).Methods(http.MethodPost)

	// Orchestrator-facing endpoint
	router.HandleFunc("/api/internal/now-playing", apiHandler.InternalMiddleware(apiHandler.IngestNowPlayingHandler)).Methods(http.MethodPost)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", logger.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}
