package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/service"
	"cumplimed/backend/pkg/response"
)

// ReleaseHandler módulo de liberación de lotes
type ReleaseHandler struct {
	releaseSvc service.ReleaseService
}

// NewReleaseHandler crea un ReleaseHandler
func NewReleaseHandler(releaseSvc service.ReleaseService) *ReleaseHandler {
	return &ReleaseHandler{releaseSvc: releaseSvc}
}

// UpsertChecklist guarda el checklist de liberación de un lote
// PUT /api/v1/batch-releases/checklist
func (h *ReleaseHandler) UpsertChecklist(c *gin.Context) {
	var req dto.UpsertChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	release, err := h.releaseSvc.UpsertChecklist(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleReleaseError(c, err)
		return
	}

	response.OK(c, release)
}

// SignRelease firma la liberación QA de un lote
// POST /api/v1/batch-releases/:batchId/sign
func (h *ReleaseHandler) SignRelease(c *gin.Context) {
	batchID := c.Param("batchId")
	if batchID == "" {
		response.BadRequest(c, 10001, "el ID del lote no puede estar vacío")
		return
	}

	var req dto.SignReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	release, err := h.releaseSvc.Sign(c.Request.Context(), batchID, &req, actor)
	if err != nil {
		h.handleReleaseError(c, err)
		return
	}

	response.OK(c, release)
}

// GetRelease estado de liberación de un lote
// GET /api/v1/batch-releases/:batchId
func (h *ReleaseHandler) GetRelease(c *gin.Context) {
	batchID := c.Param("batchId")
	if batchID == "" {
		response.BadRequest(c, 10001, "el ID del lote no puede estar vacío")
		return
	}

	release, err := h.releaseSvc.GetByBatch(c.Request.Context(), batchID)
	if err != nil {
		h.handleReleaseError(c, err)
		return
	}

	response.OK(c, release)
}

// handleReleaseError mapea los errores de negocio del módulo
func (h *ReleaseHandler) handleReleaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReleaseNotFound):
		response.NotFound(c, 14001, "liberación de lote no encontrada")
	case errors.Is(err, service.ErrBatchNotFound):
		response.NotFound(c, 14002, "lote de producción no encontrado")
	case errors.Is(err, service.ErrReleaseBlocked):
		response.UnprocessableEntity(c, 14003, err.Error())
	case errors.Is(err, service.ErrMissingControlledDocument):
		response.UnprocessableEntity(c, 14004, err.Error())
	case errors.Is(err, service.ErrSystemConfigNotFound):
		response.UnprocessableEntity(c, 14005, err.Error())
	default:
		response.InternalError(c)
	}
}
