package routes

import (
	"log"
	"net/http"

	"campuscore/handlers"
	"campuscore/middleware"
	"campuscore/models"
	"campuscore/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	courseHandler *handlers.CourseHandler,
	quizHandler *handlers.QuizHandler,
	assignmentHandler *handlers.AssignmentHandler,
	attendanceHandler *handlers.AttendanceHandler,
	announcementHandler *handlers.AnnouncementHandler,
	discussionHandler *handlers.DiscussionHandler,
	notificationHandler *handlers.NotificationHandler,
	teacherHandler *handlers.TeacherHandler,
	rubricHandler *handlers.RubricHandler,
	hub *services.Hub,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// User profile
			protected.GET("/auth/profile", authHandler.GetProfile)

			// Courses
			courses := protected.Group("/courses")
			{
				courses.GET("", courseHandler.GetCourses)
				courses.GET("/:id", courseHandler.GetCourseByID)
				courses.GET("/:id/quizzes", quizHandler.GetCourseQuizzes)
				courses.GET("/:id/assignments", assignmentHandler.GetCourseAssignments)
				courses.GET("/:id/announcements", announcementHandler.GetCourseAnnouncements)
				courses.GET("/:id/threads", discussionHandler.GetCourseThreads)
				courses.GET("/:id/rubrics", rubricHandler.GetCourseRubrics)

				staff := courses.Group("")
				staff.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
				{
					staff.POST("", courseHandler.CreateCourse)
					staff.PUT("/:id", courseHandler.UpdateCourse)
					staff.DELETE("/:id", courseHandler.DeleteCourse)
					staff.GET("/:id/gradebook", courseHandler.GetGradebook)
				}
			}

			// Quizzes
			quizzes := protected.Group("/quizzes")
			{
				quizzes.GET("/:id", quizHandler.GetQuizByID)
				quizzes.GET("/:id/attempts", quizHandler.GetQuizAttempts)

				students := quizzes.Group("")
				students.Use(middleware.RequireRoles(models.RoleStudent))
				{
					students.POST("/:id/attempts", quizHandler.StartAttempt)
					students.POST("/:id/attempts/:attemptId/submit", quizHandler.SubmitAttempt)
				}

				staff := quizzes.Group("")
				staff.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
				{
					staff.POST("", quizHandler.CreateQuiz)
					staff.DELETE("/:id", quizHandler.DeleteQuiz)
				}
			}
			protected.GET("/attempts/:id/results", quizHandler.GetAttemptResults)

			// Assignments
			assignments := protected.Group("/assignments")
			{
				assignments.GET("/:id", assignmentHandler.GetAssignmentByID)
				assignments.POST("/:id/submissions", assignmentHandler.Submit)
				assignments.GET("/:id/my-submission", assignmentHandler.GetMySubmission)

				staff := assignments.Group("")
				staff.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
				{
					staff.POST("", assignmentHandler.CreateAssignment)
					staff.GET("/:id/submissions", assignmentHandler.GetSubmissions)
				}
			}
			protected.GET("/my-submissions", assignmentHandler.GetMySubmissions)
			protected.PUT("/submissions/:id/grade",
				middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher),
				assignmentHandler.GradeSubmission)

			// Attendance
			attendance := protected.Group("/attendance")
			{
				attendance.GET("/my-sections", attendanceHandler.GetMyEnrollments)
				attendance.GET("/my-records", attendanceHandler.GetMyRecords)
				attendance.GET("/students/:id/summary", attendanceHandler.GetStudentSummary)

				staff := attendance.Group("")
				staff.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
				{
					staff.POST("/sections/:id", attendanceHandler.MarkAttendance)
					staff.GET("/sections/:id", attendanceHandler.GetSectionRecords)
					staff.GET("/reports/:id", attendanceHandler.GetSectionReport)
				}
			}

			// Announcements
			announcements := protected.Group("/announcements")
			{
				announcements.GET("/:id", announcementHandler.GetByID)

				staff := announcements.Group("")
				staff.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
				{
					staff.POST("", announcementHandler.Create)
					staff.PUT("/:id", announcementHandler.Update)
					staff.DELETE("/:id", announcementHandler.Delete)
				}
			}

			// Discussions
			threads := protected.Group("/threads")
			{
				threads.POST("", discussionHandler.CreateThread)
				threads.GET("/:id", discussionHandler.GetThread)
				threads.DELETE("/:id", discussionHandler.DeleteThread)
				threads.POST("/:id/replies", discussionHandler.CreateReply)
			}
			replies := protected.Group("/replies")
			{
				replies.POST("/:id/upvote", discussionHandler.UpvoteReply)
				replies.DELETE("/:id", discussionHandler.DeleteReply)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", notificationHandler.GetNotifications)
				notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
				notifications.PUT("/:id/read", notificationHandler.MarkRead)
				notifications.PUT("/read-all", notificationHandler.MarkAllRead)
				notifications.DELETE("/:id", notificationHandler.Delete)
			}

			// Rubrics
			rubrics := protected.Group("/rubrics")
			rubrics.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
			{
				rubrics.POST("", rubricHandler.CreateRubric)
				rubrics.GET("/:id", rubricHandler.GetRubricByID)
				rubrics.DELETE("/:id", rubricHandler.DeleteRubric)
			}

			// Teacher dashboard
			teacher := protected.Group("/teacher")
			teacher.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
			{
				teacher.GET("/dashboard", teacherHandler.GetDashboard)
				teacher.GET("/sections", teacherHandler.GetSections)
				teacher.GET("/sections/:id", teacherHandler.GetSection)
				teacher.GET("/sections/:id/students", teacherHandler.GetSectionStudents)
			}

			// Enrollment management
			sections := protected.Group("/sections")
			sections.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
			{
				sections.POST("/enroll", courseHandler.Enroll)
				sections.DELETE("/:id/students/:studentId", courseHandler.Unenroll)
				sections.PUT("/:id/students/:studentId/grade", courseHandler.SetFinalGrade)
			}

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				admin.GET("/stats", adminHandler.GetStats)
				admin.GET("/audit-logs", adminHandler.GetAuditLogs)

				admin.GET("/users", adminHandler.GetUsers)
				admin.POST("/users", adminHandler.CreateUser)
				admin.PUT("/users/:id", adminHandler.UpdateUser)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)
				admin.PUT("/users/:id/toggle-active", adminHandler.ToggleUserActive)

				admin.GET("/departments", adminHandler.GetDepartments)
				admin.POST("/departments", adminHandler.CreateDepartment)
				admin.DELETE("/departments/:id", adminHandler.DeleteDepartment)

				admin.GET("/programs", adminHandler.GetPrograms)
				admin.POST("/programs", adminHandler.CreateProgram)
				admin.DELETE("/programs/:id", adminHandler.DeleteProgram)

				admin.GET("/batches", adminHandler.GetBatches)
				admin.POST("/batches", adminHandler.CreateBatch)
				admin.GET("/batches/:id", adminHandler.GetBatch)
				admin.PUT("/batches/:id", adminHandler.UpdateBatch)
				admin.PUT("/batches/:id/toggle-active", adminHandler.ToggleBatchActive)
				admin.DELETE("/batches/:id", adminHandler.DeleteBatch)
				admin.GET("/batches/:id/students", adminHandler.GetBatchStudents)

				admin.POST("/semesters", adminHandler.CreateSemester)
				admin.POST("/sections", adminHandler.CreateSection)
				admin.PUT("/sections/:id/teacher", adminHandler.AssignTeacher)

				admin.PUT("/courses/:id/approve", courseHandler.ApproveCourse)
				admin.PUT("/courses/:id/toggle-publish", courseHandler.TogglePublish)
			}
		}
	}

	// WebSocket endpoint for real-time notifications. Browsers can't set
	// headers on WebSocket upgrades, so the token rides in the query string.
	router.GET("/ws/notifications", func(c *gin.Context) {
		token := c.Query("token")
		claims, err := middleware.ParseToken(token, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for user %d: %v", claims.UserID, err)
			return
		}

		hub.RegisterClient(conn, claims.UserID)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
