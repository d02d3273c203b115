package middleware

import "github.com/gin-gonic/gin"

const actorKey = "actor"

// Actor middleware de identidad del operador
// La autenticación vive en el gateway; este backend solo consume la identidad
// ya resuelta que llega en el encabezado X-Actor.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader("X-Actor"); actor != "" {
			c.Set(actorKey, actor)
		}
		c.Next()
	}
}
