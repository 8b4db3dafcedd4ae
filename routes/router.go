package routes

import (
	"net/http"
	"slices"
	"time"

	"urbanreport-be/controllers"
	"urbanreport-be/middlewares"
	"urbanreport-be/relay"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Issues         *controllers.IssueController
	Relay          *relay.Handler
	RelaySecret    string
	CreateLimiter  gin.HandlerFunc
	AllowedOrigins []string
}

// NewRouter builds the gin engine serving the issue API and the mail relay.
func NewRouter(d Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.RequestID(), middlewares.RequestLogger(), gin.Recovery())
	r.Use(cors.New(corsConfig(d.AllowedOrigins)))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if d.Issues != nil {
		IssueRoutes(r, d.Issues, d.CreateLimiter)
	}
	if d.Relay != nil {
		RelayRoutes(r, d.Relay, d.RelaySecret)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
