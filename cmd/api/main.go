package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/config"
	"github.com/TofuAo/Masjid-App-sub001/internal/database"
	"github.com/TofuAo/Masjid-App-sub001/internal/handler"
	"github.com/TofuAo/Masjid-App-sub001/internal/middleware"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
	"github.com/TofuAo/Masjid-App-sub001/internal/router"
	"github.com/TofuAo/Masjid-App-sub001/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectMySQL(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.AdminAction{},
		&models.Announcement{},
		&models.Student{},
		&models.Teacher{},
		&models.Class{},
		&models.Attendance{},
		&models.FeePayment{},
		&models.ExamResult{},
		&models.GradeRange{},
		&models.User{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	cache, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, caching disabled")
		cache = nil
	} else {
		defer cache.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	actionRepo := repository.NewAdminActionRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	classRepo := repository.NewClassRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	resultRepo := repository.NewResultRepository(db)
	gradeRangeRepo := repository.NewGradeRangeRepository(db)
	userRepo := repository.NewUserRepository(db)

	actionService := service.NewActionLogService(actionRepo, logger)
	actionService.RegisterRestorer("announcement", service.ModelRestorer[models.Announcement]{})
	actionService.RegisterRestorer("student", service.ModelRestorer[models.Student]{})
	actionService.RegisterRestorer("teacher", service.ModelRestorer[models.Teacher]{})
	actionService.RegisterRestorer("result", service.ModelRestorer[models.ExamResult]{})

	gradeSettings := service.NewGradeSettingService(gradeRangeRepo, cache, cfg.GradeCacheTTL, validate, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, cache, cfg.AnnouncementCacheTTL, logger)
	adminAnnouncementService := service.NewAdminAnnouncementService(announcementRepo, actionService, cache, validate, logger)
	studentService := service.NewStudentService(studentRepo, actionService, validate, logger)
	teacherService := service.NewTeacherService(teacherRepo, actionService, validate, logger)
	classService := service.NewClassService(classRepo, studentRepo, validate, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, validate, logger)
	feeService := service.NewFeeService(feeRepo, validate, logger)
	resultService := service.NewResultService(resultRepo, gradeSettings, actionService, validate, logger)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:              handler.NewAuthHandler(authService, logger),
		AnnouncementHandler:      handler.NewAnnouncementHandler(announcementService, logger),
		AdminActionHandler:       handler.NewAdminActionHandler(actionService, logger),
		AdminAnnouncementHandler: handler.NewAdminAnnouncementHandler(adminAnnouncementService, logger),
		GradeRangeHandler:        handler.NewGradeRangeHandler(gradeSettings, logger),
		StudentHandler:           handler.NewStudentHandler(studentService, logger),
		TeacherHandler:           handler.NewTeacherHandler(teacherService, logger),
		ClassHandler:             handler.NewClassHandler(classService, logger),
		AttendanceHandler:        handler.NewAttendanceHandler(attendanceService, logger),
		FeeHandler:               handler.NewFeeHandler(feeService, logger),
		ResultHandler:            handler.NewResultHandler(resultService, logger),
		JWTMiddleware:            middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
