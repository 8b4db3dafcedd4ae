package routes

import (
	"urbanreport-be/middlewares"
	"urbanreport-be/relay"

	"github.com/gin-gonic/gin"
)

// RelayRoutes mounts the mail relay endpoint behind relay token auth.
func RelayRoutes(r *gin.Engine, h *relay.Handler, secret string) {
	r.POST("/send-email", middlewares.RelayAuth(secret), h.SendEmail)
}
