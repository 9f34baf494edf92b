package middleware

import (
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func ConfigCORS(allowedOrigins []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		conf.AllowAllOrigins = true
		conf.AllowCredentials = false
	} else {
		conf.AllowOrigins = allowedOrigins
	}

	return cors.New(conf)
}

// ReloadableCORS swaps the CORS policy without rebuilding the router.
type ReloadableCORS struct {
	current atomic.Pointer[gin.HandlerFunc]
}

func NewReloadableCORS(allowedOrigins []string) *ReloadableCORS {
	c := &ReloadableCORS{}
	c.Set(allowedOrigins)

	return c
}

func (c *ReloadableCORS) Set(allowedOrigins []string) {
	h := ConfigCORS(allowedOrigins)
	c.current.Store(&h)
}

func (c *ReloadableCORS) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		(*c.current.Load())(ctx)
	}
}
