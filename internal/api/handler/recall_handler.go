package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/service"
	"cumplimed/backend/pkg/response"
)

// RecallHandler módulo de retiros de producto
type RecallHandler struct {
	recallSvc service.RecallService
}

// NewRecallHandler crea un RecallHandler
func NewRecallHandler(recallSvc service.RecallService) *RecallHandler {
	return &RecallHandler{recallSvc: recallSvc}
}

// CreateRecall abre un caso de retiro
// POST /api/v1/recalls
func (h *RecallHandler) CreateRecall(c *gin.Context) {
	var req dto.CreateRecallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	recall, err := h.recallSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleRecallError(c, err)
		return
	}

	response.Created(c, recall)
}

// ListRecalls lista los casos de retiro
// GET /api/v1/recalls
func (h *RecallHandler) ListRecalls(c *gin.Context) {
	recalls, err := h.recallSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": recalls})
}

// GetRecall detalle de un caso de retiro
// GET /api/v1/recalls/:id
func (h *RecallHandler) GetRecall(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "el ID del caso no puede estar vacío")
		return
	}

	recall, err := h.recallSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRecallError(c, err)
		return
	}

	response.OK(c, recall)
}

// UpdateProgress actualiza las unidades recuperadas
// PUT /api/v1/recalls/:id/progress
func (h *RecallHandler) UpdateProgress(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "el ID del caso no puede estar vacío")
		return
	}

	var req dto.UpdateRecallProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	recall, err := h.recallSvc.UpdateProgress(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleRecallError(c, err)
		return
	}

	response.OK(c, recall)
}

// CloseRecall cierra un caso de retiro
// POST /api/v1/recalls/:id/close
func (h *RecallHandler) CloseRecall(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "el ID del caso no puede estar vacío")
		return
	}

	var req dto.CloseRecallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	recall, err := h.recallSvc.Close(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleRecallError(c, err)
		return
	}

	response.OK(c, recall)
}

// AddNotification agrega una notificación al caso
// POST /api/v1/recalls/:id/notifications
func (h *RecallHandler) AddNotification(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "el ID del caso no puede estar vacío")
		return
	}

	var req dto.AddNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	recall, err := h.recallSvc.AddNotification(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleRecallError(c, err)
		return
	}

	response.Created(c, recall)
}

// handleRecallError mapea los errores de negocio del módulo
func (h *RecallHandler) handleRecallError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecallNotFound):
		response.NotFound(c, 15001, "caso de retiro no encontrado")
	case errors.Is(err, service.ErrInvalidState):
		response.Conflict(c, 15002, err.Error())
	case errors.Is(err, service.ErrInvalidQuantity):
		response.UnprocessableEntity(c, 15003, err.Error())
	default:
		response.InternalError(c)
	}
}
