package ws

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Доступ снаружи закрыт гейтвеем, origin не проверяем
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler HTTP обработчик апгрейда websocket подключений
type Handler struct {
	hub *Hub
	log Logger
}

// NewHandler создает новый обработчик websocket подключений
func NewHandler(hub *Hub, logger Logger) *Handler {
	return &Handler{
		hub: hub,
		log: logger,
	}
}

// Handle GET /api/v1/ws
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует ID пользователя")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("GET /ws - upgrade failed for user %d: %v", userID, err)
		return
	}

	client := newClient(userID, conn)
	h.hub.register(client)

	go client.writePump(h.hub)
	go client.readPump(h.hub)
}
