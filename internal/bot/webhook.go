package bot

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"calorie-tracker-bot/internal/platform/telegram"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewWebhookRouter builds the gin router for webhook delivery: Telegram
// posts updates to /telegram/webhook guarded by the secret token header.
func NewWebhookRouter(dispatcher *Dispatcher, secret string, health HealthChecker, debug bool) *gin.Engine {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		if health != nil {
			if err := health.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/telegram/webhook", func(c *gin.Context) {
		if secret != "" && c.GetHeader(secretTokenHeader) != secret {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		var update telegram.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
			return
		}

		// Telegram only needs the 200; the work proceeds in background.
		go dispatcher.Dispatch(context.WithoutCancel(c.Request.Context()), update)
		c.Status(http.StatusOK)
	})

	return router
}
