package main

import (
	"log"

	"campuscore/config"
	"campuscore/handlers"
	"campuscore/middleware"
	"campuscore/models"
	"campuscore/routes"
	"campuscore/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Program{},
		&models.Batch{},
		&models.Semester{},
		&models.Course{},
		&models.Section{},
		&models.Enrollment{},
		&models.Quiz{},
		&models.Question{},
		&models.QuestionOption{},
		&models.QuizAttempt{},
		&models.Answer{},
		&models.Assignment{},
		&models.Submission{},
		&models.Attendance{},
		&models.Announcement{},
		&models.DiscussionThread{},
		&models.ThreadReply{},
		&models.Notification{},
		&models.Rubric{},
		&models.RubricCriterion{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	emailService := services.NewEmailService(cfg.SendgridAPIKey, cfg.FromEmail, cfg.FromName)
	notificationService := services.NewNotificationService(db, redisClient)

	// WebSocket hub for pushing notifications to connected clients
	hub := services.NewHub()
	notificationService.SetHub(hub)
	go hub.Run()

	authService := services.NewAuthService(db, redisClient, emailService, cfg.JWTSecret, cfg.ResetTokenTTL, cfg.FrontendURL)
	adminService := services.NewAdminService(db)
	courseService := services.NewCourseService(db)
	enrollmentService := services.NewEnrollmentService(db, cfg.DefaultSectionName)
	quizService := services.NewQuizService(db)
	assignmentService := services.NewAssignmentService(db, cfg.UploadDir, notificationService)
	attendanceService := services.NewAttendanceService(db)
	gradebookService := services.NewGradebookService(db)
	announcementService := services.NewAnnouncementService(db, notificationService, emailService)
	discussionService := services.NewDiscussionService(db, notificationService)
	teacherService := services.NewTeacherService(db)
	rubricService := services.NewRubricService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(adminService)
	courseHandler := handlers.NewCourseHandler(courseService, enrollmentService, gradebookService)
	quizHandler := handlers.NewQuizHandler(quizService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	discussionHandler := handlers.NewDiscussionHandler(discussionService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	teacherHandler := handlers.NewTeacherHandler(teacherService)
	rubricHandler := handlers.NewRubricHandler(rubricService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(
		router,
		authHandler,
		adminHandler,
		courseHandler,
		quizHandler,
		assignmentHandler,
		attendanceHandler,
		announcementHandler,
		discussionHandler,
		notificationHandler,
		teacherHandler,
		rubricHandler,
		hub,
		cfg.JWTSecret,
	)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.BindAddress + ":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
