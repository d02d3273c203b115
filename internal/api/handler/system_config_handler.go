package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/service"
	"cumplimed/backend/pkg/response"
)

// SystemConfigHandler módulo de configuración operacional
type SystemConfigHandler struct {
	cfgSvc service.SystemConfigService
}

// NewSystemConfigHandler crea un SystemConfigHandler
func NewSystemConfigHandler(cfgSvc service.SystemConfigService) *SystemConfigHandler {
	return &SystemConfigHandler{cfgSvc: cfgSvc}
}

// GetConfig configuración operacional vigente
// GET /api/v1/system-config
func (h *SystemConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := h.cfgSvc.Get(c.Request.Context())
	if err != nil {
		h.handleConfigError(c, err)
		return
	}

	response.OK(c, cfg)
}

// UpdateConfig actualiza la configuración operacional
// PUT /api/v1/system-config
func (h *SystemConfigHandler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateSystemConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	cfg, err := h.cfgSvc.Update(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleConfigError(c, err)
		return
	}

	response.OK(c, cfg)
}

// handleConfigError mapea los errores de negocio del módulo
func (h *SystemConfigHandler) handleConfigError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSystemConfigNotFound):
		response.NotFound(c, 16001, "configuración operacional no inicializada")
	default:
		response.InternalError(c)
	}
}
