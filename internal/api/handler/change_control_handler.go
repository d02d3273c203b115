package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/service"
	"cumplimed/backend/pkg/response"
)

// ChangeControlHandler módulo de control de cambios
type ChangeControlHandler struct {
	ccSvc service.ChangeControlService
}

// NewChangeControlHandler crea un ChangeControlHandler
func NewChangeControlHandler(ccSvc service.ChangeControlService) *ChangeControlHandler {
	return &ChangeControlHandler{ccSvc: ccSvc}
}

// CreateChangeControl crea un control de cambios
// POST /api/v1/change-controls
func (h *ChangeControlHandler) CreateChangeControl(c *gin.Context) {
	var req dto.CreateChangeControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	cc, err := h.ccSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleChangeControlError(c, err)
		return
	}

	response.Created(c, cc)
}

// ListChangeControls lista los controles de cambio
// GET /api/v1/change-controls
func (h *ChangeControlHandler) ListChangeControls(c *gin.Context) {
	ccs, err := h.ccSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": ccs})
}

// GetChangeControl detalle de un control de cambios
// GET /api/v1/change-controls/:id
func (h *ChangeControlHandler) GetChangeControl(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "el ID del control no puede estar vacío")
		return
	}

	cc, err := h.ccSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleChangeControlError(c, err)
		return
	}

	response.OK(c, cc)
}

// UpdateChangeControl actualiza un control de cambios (con chequeo de quórum
// cuando el payload lo pasa a APROBADO)
// PUT /api/v1/change-controls/:id
func (h *ChangeControlHandler) UpdateChangeControl(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "el ID del control no puede estar vacío")
		return
	}

	var req dto.UpdateChangeControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	cc, err := h.ccSvc.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleChangeControlError(c, err)
		return
	}

	response.OK(c, cc)
}

// UpsertApproval registra o actualiza la aprobación de un rol
// PUT /api/v1/change-controls/:id/approvals
func (h *ChangeControlHandler) UpsertApproval(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "el ID del control no puede estar vacío")
		return
	}

	var req dto.UpsertApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	cc, err := h.ccSvc.UpsertApproval(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleChangeControlError(c, err)
		return
	}

	response.OK(c, cc)
}

// handleChangeControlError mapea los errores de negocio del módulo
func (h *ChangeControlHandler) handleChangeControlError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChangeControlNotFound):
		response.NotFound(c, 12001, "control de cambios no encontrado")
	case errors.Is(err, service.ErrInvalidState):
		response.Conflict(c, 12002, err.Error())
	case errors.Is(err, service.ErrQuorumRejected):
		response.UnprocessableEntity(c, 12003, err.Error())
	case errors.Is(err, service.ErrQuorumNotMet):
		response.UnprocessableEntity(c, 12004, err.Error())
	default:
		response.InternalError(c)
	}
}
