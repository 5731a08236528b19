package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/absenin/absensi-backend-go/internal/config"
	appHTTP "github.com/absenin/absensi-backend-go/internal/handler/http"
	"github.com/absenin/absensi-backend-go/internal/pkg/cron"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/absenin/absensi-backend-go/internal/pkg/email"
	"github.com/absenin/absensi-backend-go/internal/pkg/jwt"
	"github.com/absenin/absensi-backend-go/internal/pkg/oauth"
	"github.com/absenin/absensi-backend-go/internal/pkg/sse"
	"github.com/absenin/absensi-backend-go/internal/pkg/storage"
	"github.com/absenin/absensi-backend-go/internal/repository/postgresql"
	attendanceService "github.com/absenin/absensi-backend-go/internal/service/attendance"
	authService "github.com/absenin/absensi-backend-go/internal/service/auth"
	correctionService "github.com/absenin/absensi-backend-go/internal/service/correction"
	hierarchyService "github.com/absenin/absensi-backend-go/internal/service/hierarchy"
	leaveService "github.com/absenin/absensi-backend-go/internal/service/leave"
	monitoringService "github.com/absenin/absensi-backend-go/internal/service/monitoring"
	notificationService "github.com/absenin/absensi-backend-go/internal/service/notification"
	outletService "github.com/absenin/absensi-backend-go/internal/service/outlet"
	scheduleService "github.com/absenin/absensi-backend-go/internal/service/schedule"
	shiftService "github.com/absenin/absensi-backend-go/internal/service/shift"
	shiftswapService "github.com/absenin/absensi-backend-go/internal/service/shiftswap"
	userService "github.com/absenin/absensi-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	outletRepo := postgresql.NewOutletRepository(db)
	jadwalRepo := postgresql.NewJadwalRepository(db)
	absensiRepo := postgresql.NewAbsensiRepository(db)
	koreksiRepo := postgresql.NewKoreksiRepository(db)
	cutiRepo := postgresql.NewCutiRepository(db)
	swapRepo := postgresql.NewSwapRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleSvc oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleSvc = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	hub := sse.NewHub()
	notifier := notificationService.NewNotificationService(notificationRepo, userRepo, hub, emailSvc, logger, notificationService.Config{})

	hierarchyResolver := hierarchyService.NewResolver(userRepo)
	shiftResolver := scheduleService.NewResolver(jadwalRepo, swapRepo, shiftRepo, userRepo)

	authSvc := authService.NewAuthService(userRepo, jwtSvc, googleSvc, logger)
	absensiSvc := attendanceService.NewAbsensiService(txManager, absensiRepo, userRepo, outletRepo, shiftRepo, cutiRepo, shiftResolver, fileStorage, notifier, logger)
	koreksiSvc := correctionService.NewKoreksiService(txManager, koreksiRepo, absensiRepo, userRepo, shiftResolver, hierarchyResolver, notifier, logger)
	cutiSvc := leaveService.NewCutiService(txManager, cutiRepo, absensiRepo, userRepo, shiftResolver, hierarchyResolver, notifier, logger)
	swapSvc := shiftswapService.NewSwapService(txManager, swapRepo, jadwalRepo, absensiRepo, shiftRepo, userRepo, hierarchyResolver, notifier, logger)
	monitoringSvc := monitoringService.NewService(userRepo, absensiRepo, cutiRepo, shiftResolver, hierarchyResolver)
	jadwalSvc := scheduleService.NewJadwalService(jadwalRepo, shiftRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo, userRepo)
	outletSvc := outletService.NewOutletService(outletRepo, userRepo)
	userSvc := userService.NewUserService(userRepo, hierarchyResolver)

	scheduler := cron.NewScheduler(logger)
	attendanceJobs := cron.NewAttendanceJobs(absensiRepo, userRepo, cutiRepo, shiftRepo, shiftResolver, notifier, logger)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc)
	absensiHandler := appHTTP.NewAbsensiHandler(absensiSvc, monitoringSvc)
	koreksiHandler := appHTTP.NewKoreksiHandler(koreksiSvc)
	cutiHandler := appHTTP.NewCutiHandler(cutiSvc)
	swapHandler := appHTTP.NewSwapHandler(swapSvc)
	jadwalHandler := appHTTP.NewJadwalHandler(jadwalSvc)
	masterHandler := appHTTP.NewMasterHandler(shiftSvc, outletSvc)
	notifHandler := appHTTP.NewNotificationHandler(notifier, jwtSvc, hub)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Env: cfg.App.Env, UploadsDir: cfg.Storage.BasePath},
		jwtSvc,
		authHandler,
		absensiHandler,
		koreksiHandler,
		cutiHandler,
		swapHandler,
		jadwalHandler,
		masterHandler,
		notifHandler,
		userHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
	notifier.Close()
	slog.Info("Shutdown complete")
}
