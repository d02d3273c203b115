package handler

import (
	"github.com/gin-gonic/gin"

	"cumplimed/backend/pkg/response"
)

// MustGetActor extrae de forma segura el actor del contexto de Gin.
// Si el middleware no inyectó el actor, devuelve false y escribe 401.
// El llamador debe hacer return cuando ok=false.
func MustGetActor(c *gin.Context) (string, bool) {
	v, exists := c.Get("actor")
	if !exists {
		response.Unauthorized(c, 10002, "actor no identificado")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "actor no identificado")
		return "", false
	}
	return s, true
}
