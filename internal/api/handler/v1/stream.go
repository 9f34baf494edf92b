package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/fleetdepot/depot/internal/api/handler/v1/response"
	"github.com/fleetdepot/depot/internal/api/middleware"
)

type StreamHub interface {
	Attach(conn *websocket.Conn, userID uint)
}

type StreamHandler struct {
	hub      StreamHub
	upgrader websocket.Upgrader
}

// NewStreamHandler accepts upgrades from any origin in allowedOrigins; an
// empty list allows every origin.
func NewStreamHandler(hub StreamHub, allowedOrigins []string) *StreamHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// HandleStream godoc
// @Summary      Live stock events
// @Description  Upgrades to a websocket that receives every stock event as JSON. The token may be passed as ?token=.
// @Tags         stream
// @Param        token  query  string  false  "JWT when headers cannot be set"
// @Success      101
// @Failure      401  {object}  response.Err
// @Router       /stream [get]
// @Security     BearerAuth
func (h *StreamHandler) HandleStream(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.CtxKeyUserID)
	if userID == 0 {
		response.RenderErr(ctx, response.ErrUnauthorized(errNoUser))
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		zap.L().Warn("websocket upgrade failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}

	h.hub.Attach(conn, userID)
}
