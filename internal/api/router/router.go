package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cumplimed/backend/config"
	"cumplimed/backend/internal/api/handler"
	"cumplimed/backend/internal/api/middleware"
)

// Setup inicializa y devuelve el motor de rutas Gin
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Middleware global ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.Actor())

	// ── Chequeo de salud ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Documentos controlados
		documents := v1.Group("/documents")
		{
			documents.POST("", h.Document.CreateDocument)
			documents.GET("", h.Document.ListDocuments)
			documents.GET("/active", h.Document.GetActiveDocuments)
			documents.GET("/:id", h.Document.GetDocument)
			documents.POST("/:id/submit-review", h.Document.SubmitForReview)
			documents.POST("/:id/approve", h.Document.ApproveDocument)
		}

		// Control de cambios
		changeControls := v1.Group("/change-controls")
		{
			changeControls.POST("", h.ChangeControl.CreateChangeControl)
			changeControls.GET("", h.ChangeControl.ListChangeControls)
			changeControls.GET("/:id", h.ChangeControl.GetChangeControl)
			changeControls.PUT("/:id", h.ChangeControl.UpdateChangeControl)
			changeControls.PUT("/:id/approvals", h.ChangeControl.UpsertApproval)
		}

		// Etiquetado regulatorio
		labels := v1.Group("/labels")
		{
			labels.PUT("", h.Label.UpsertLabel)
			labels.GET("/:id", h.Label.GetLabel)
		}
		batches := v1.Group("/batches")
		{
			batches.GET("/:batchId/labels", h.Label.ListBatchLabels)
			batches.GET("/:batchId/dispatch-readiness", h.Label.GetDispatchReadiness)
		}

		// Liberación de lote
		releases := v1.Group("/batch-releases")
		{
			releases.PUT("/checklist", h.Release.UpsertChecklist)
			releases.POST("/:batchId/sign", h.Release.SignRelease)
			releases.GET("/:batchId", h.Release.GetRelease)
		}

		// Recalls
		recalls := v1.Group("/recalls")
		{
			recalls.POST("", h.Recall.CreateRecall)
			recalls.GET("", h.Recall.ListRecalls)
			recalls.GET("/:id", h.Recall.GetRecall)
			recalls.PUT("/:id/progress", h.Recall.UpdateProgress)
			recalls.POST("/:id/close", h.Recall.CloseRecall)
			recalls.POST("/:id/notifications", h.Recall.AddNotification)
		}

		// Configuración operativa
		systemConfig := v1.Group("/system-config")
		{
			systemConfig.GET("", h.SystemConfig.GetConfig)
			systemConfig.PUT("", h.SystemConfig.UpdateConfig)
		}
	}

	return r
}
