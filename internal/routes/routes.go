package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	"github.com/BruksfildServices01/coach-platform/internal/config"
	"github.com/BruksfildServices01/coach-platform/internal/handlers"
	infraRepo "github.com/BruksfildServices01/coach-platform/internal/infra/repository"
	"github.com/BruksfildServices01/coach-platform/internal/middleware"
	"github.com/BruksfildServices01/coach-platform/internal/notify"
	"github.com/BruksfildServices01/coach-platform/internal/storage"
	"github.com/BruksfildServices01/coach-platform/internal/upload"
	ucAnalytics "github.com/BruksfildServices01/coach-platform/internal/usecase/analytics"
	ucAuditLog "github.com/BruksfildServices01/coach-platform/internal/usecase/auditlog"
	ucFile "github.com/BruksfildServices01/coach-platform/internal/usecase/file"
	ucNotification "github.com/BruksfildServices01/coach-platform/internal/usecase/notification"
	ucSession "github.com/BruksfildServices01/coach-platform/internal/usecase/session"
	ucTask "github.com/BruksfildServices01/coach-platform/internal/usecase/task"
)

// Infra holds the long-lived components main owns (and shuts down).
type Infra struct {
	Log      *zap.Logger
	Audit    *audit.Dispatcher
	Notifier *notify.Notifier
	Storage  storage.Backend
	Uploads  *upload.Manager
	Files    *infraRepo.FileGormRepository
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	sessionRepo := infraRepo.NewSessionGormRepository(db)
	taskRepo := infraRepo.NewTaskGormRepository(db)
	auditRepo := infraRepo.NewAuditGormRepository(db)
	notificationRepo := infraRepo.NewNotificationGormRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsGormRepository(db)

	// ======================================================
	// 🧠 USE CASES: SESSIONS
	// ======================================================
	sessionHandler := handlers.NewSessionHandler(
		ucSession.NewListCalendar(sessionRepo, cfg.CalendarLimit),
		ucSession.NewListRequests(sessionRepo),
		ucSession.NewCreateRequest(sessionRepo, infra.Audit, infra.Notifier),
		ucSession.NewUpdateSession(sessionRepo, infra.Audit, cfg.SessionTransitions),
		ucSession.NewApproveRequest(sessionRepo, infra.Audit, infra.Notifier),
		ucSession.NewDeclineRequest(sessionRepo, infra.Audit, infra.Notifier),
		ucSession.NewIssueFeedToken(sessionRepo, infra.Audit),
		ucSession.NewRenderFeed(sessionRepo, sessionRepo),
	)

	// ======================================================
	// 🧠 USE CASES: TASKS
	// ======================================================
	taskHandler := handlers.NewTaskHandler(handlers.TaskUseCases{
		ListCategories: ucTask.NewListCategories(taskRepo),
		CreateCategory: ucTask.NewCreateCategory(taskRepo, infra.Audit),
		DeleteCategory: ucTask.NewDeleteCategory(taskRepo, infra.Audit),

		ListTasks:  ucTask.NewListTasks(taskRepo),
		CreateTask: ucTask.NewCreateTask(taskRepo, infra.Audit),
		UpdateTask: ucTask.NewUpdateTask(taskRepo, infra.Audit),
		DeleteTask: ucTask.NewDeleteTask(taskRepo, infra.Audit),
		Assign:     ucTask.NewAssignTask(taskRepo, infra.Audit, infra.Notifier),

		ListInstances:  ucTask.NewListInstances(taskRepo),
		CreateProgress: ucTask.NewCreateProgress(taskRepo, infra.Audit, infra.Notifier, cfg.ProgressPolicy),
		ListProgress:   ucTask.NewListProgress(taskRepo),
	})

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(sessionRepo)
	uploadHandler := handlers.NewUploadHandler(infra.Uploads, cfg.UploadMaxChunkBytes)
	fileHandler := handlers.NewFileHandler(
		ucFile.NewListFiles(infra.Files),
		ucFile.NewDownloadFile(infra.Files, infra.Storage),
		ucFile.NewDeleteFile(infra.Files, infra.Storage, infra.Audit, infra.Log),
	)
	notificationHandler := handlers.NewNotificationHandler(
		ucNotification.NewListNotifications(notificationRepo),
		ucNotification.NewMarkRead(notificationRepo),
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(
		ucAuditLog.NewListAuditLogs(auditRepo),
		ucAuditLog.NewExportAuditLogs(auditRepo),
	)
	analyticsHandler := handlers.NewAnalyticsHandler(ucAnalytics.NewOverview(analyticsRepo))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PUBLIC
		// ------------------------------
		api.GET("/calendar/feed.ics", sessionHandler.Feed)

		// ------------------------------
		// 🔐 PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// SESSIONS
			// ------------------------------
			secured.GET("/sessions", sessionHandler.ListCalendar)
			secured.PATCH("/sessions/:id", sessionHandler.Update)

			secured.GET("/session-requests", sessionHandler.ListRequests)
			secured.POST("/session-requests", sessionHandler.CreateRequest)
			secured.POST("/session-requests/:id/approve", sessionHandler.Approve)
			secured.POST("/session-requests/:id/decline", sessionHandler.Decline)

			secured.POST("/calendar/feed-token", sessionHandler.IssueFeedToken)

			// ------------------------------
			// TASKS
			// ------------------------------
			secured.GET("/task-categories", taskHandler.ListCategories)
			secured.POST("/task-categories", taskHandler.CreateCategory)
			secured.DELETE("/task-categories/:id", taskHandler.DeleteCategory)

			secured.GET("/tasks", taskHandler.ListTasks)
			secured.POST("/tasks", taskHandler.CreateTask)
			secured.PATCH("/tasks/:id", taskHandler.UpdateTask)
			secured.DELETE("/tasks/:id", taskHandler.DeleteTask)
			secured.POST("/tasks/:id/assign", taskHandler.Assign)
			secured.POST("/tasks/:id/bulk-assign", taskHandler.BulkAssign)

			secured.GET("/task-instances", taskHandler.ListInstances)
			secured.GET("/task-instances/:id/progress", taskHandler.ListProgress)
			secured.POST("/task-instances/:id/progress", taskHandler.CreateProgress)

			// ------------------------------
			// UPLOADS & FILES
			// ------------------------------
			secured.POST("/uploads/init", uploadHandler.Init)
			secured.POST("/uploads/chunk", uploadHandler.Chunk)
			secured.POST("/uploads/complete", uploadHandler.Complete)
			secured.GET("/uploads/:id", uploadHandler.Status)
			secured.DELETE("/uploads/:id", uploadHandler.Abort)

			secured.GET("/files", fileHandler.List)
			secured.GET("/files/:id/download", fileHandler.Download)
			secured.DELETE("/files/:id", fileHandler.Delete)

			// ------------------------------
			// NOTIFICATIONS / AUDIT / ANALYTICS
			// ------------------------------
			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

			secured.GET("/audit-logs", auditLogsHandler.List)
			secured.GET("/audit-logs/export.csv", auditLogsHandler.Export)

			secured.GET("/analytics/overview", analyticsHandler.Overview)
		}
	}
}
