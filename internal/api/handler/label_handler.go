package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/service"
	"cumplimed/backend/pkg/response"
)

// LabelHandler módulo de etiquetado regulatorio
type LabelHandler struct {
	labelSvc service.LabelService
}

// NewLabelHandler crea un LabelHandler
func NewLabelHandler(labelSvc service.LabelService) *LabelHandler {
	return &LabelHandler{labelSvc: labelSvc}
}

// UpsertLabel crea o actualiza la etiqueta de un lote/unidad
// PUT /api/v1/labels
func (h *LabelHandler) UpsertLabel(c *gin.Context) {
	var req dto.UpsertLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	label, err := h.labelSvc.Upsert(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleLabelError(c, err)
		return
	}

	response.OK(c, label)
}

// GetLabel detalle de una etiqueta
// GET /api/v1/labels/:id
func (h *LabelHandler) GetLabel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "el ID de la etiqueta no puede estar vacío")
		return
	}

	label, err := h.labelSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLabelError(c, err)
		return
	}

	response.OK(c, label)
}

// ListBatchLabels etiquetas de un lote
// GET /api/v1/batches/:batchId/labels
func (h *LabelHandler) ListBatchLabels(c *gin.Context) {
	batchID := c.Param("batchId")
	if batchID == "" {
		response.BadRequest(c, 10001, "el ID del lote no puede estar vacío")
		return
	}

	labels, err := h.labelSvc.ListByBatch(c.Request.Context(), batchID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": labels})
}

// GetDispatchReadiness chequeo de aptitud de despacho de un lote
// GET /api/v1/batches/:batchId/dispatch-readiness
func (h *LabelHandler) GetDispatchReadiness(c *gin.Context) {
	batchID := c.Param("batchId")
	if batchID == "" {
		response.BadRequest(c, 10001, "el ID del lote no puede estar vacío")
		return
	}

	result, err := h.labelSvc.ValidateDispatchReadiness(c.Request.Context(), batchID)
	if err != nil {
		h.handleLabelError(c, err)
		return
	}

	response.OK(c, result)
}

// handleLabelError mapea los errores de negocio del módulo
func (h *LabelHandler) handleLabelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLabelNotFound):
		response.NotFound(c, 13001, "etiqueta regulatoria no encontrada")
	case errors.Is(err, service.ErrBatchNotFound):
		response.NotFound(c, 13002, "lote de producción no encontrado")
	case errors.Is(err, service.ErrMissingControlledDocument):
		response.UnprocessableEntity(c, 13003, err.Error())
	case errors.Is(err, service.ErrModeViolation):
		response.UnprocessableEntity(c, 13004, err.Error())
	case errors.Is(err, service.ErrScopeMismatch):
		response.UnprocessableEntity(c, 13005, err.Error())
	case errors.Is(err, service.ErrRegistrationInvalid):
		response.UnprocessableEntity(c, 13006, err.Error())
	case errors.Is(err, service.ErrSystemConfigNotFound):
		response.UnprocessableEntity(c, 13007, err.Error())
	default:
		response.InternalError(c)
	}
}
