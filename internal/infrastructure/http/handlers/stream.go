package handlers

import (
	"net/http"
	"time"

	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/http/middleware"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/monitoring"
	"github.com/YoungCoderX/Recipe-Rack/internal/ports/inbound"
	"github.com/YoungCoderX/Recipe-Rack/pkg/errors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// StreamHandlers pushes live recipe-list updates over WebSocket. On
// connect the client receives its full collection, then a fresh snapshot
// after every create or delete in that collection.
type StreamHandlers struct {
	recipeService inbound.RecipeService
	metrics       *monitoring.Metrics
	upgrader      websocket.Upgrader
	logger        *zap.Logger
}

// NewStreamHandlers creates a new stream handlers instance
func NewStreamHandlers(
	recipeService inbound.RecipeService,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *StreamHandlers {
	return &StreamHandlers{
		recipeService: recipeService,
		metrics:       metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Origin enforcement is handled by the CORS middleware
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// recipeListMessage is the frame pushed to stream subscribers
type recipeListMessage struct {
	Type    string              `json:"type"`
	Recipes []inbound.RecipeDTO `json:"recipes"`
}

// StreamRecipes handles GET /api/v1/recipes/stream
func (h *StreamHandlers) StreamRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		h.logger.Info("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.metrics.StreamOpened()
	defer h.metrics.StreamClosed()

	updates, cancel := h.recipeService.Subscribe(userID)
	defer cancel()

	h.logger.Info("Recipe stream opened", zap.String("user_id", userID.String()))

	// Reader goroutine: drains control frames and signals disconnect
	done := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Initial snapshot on connect
	if err := h.pushSnapshot(r, conn, userID); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			h.logger.Info("Recipe stream closed by client", zap.String("user_id", userID.String()))
			return
		case <-r.Context().Done():
			return
		case <-updates:
			if err := h.pushSnapshot(r, conn, userID); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *StreamHandlers) pushSnapshot(r *http.Request, conn *websocket.Conn, userID uuid.UUID) error {
	recipes, err := h.recipeService.ListRecipes(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load recipe snapshot", zap.Error(err))
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(recipeListMessage{
		Type:    "recipes",
		Recipes: recipes,
	})
}
