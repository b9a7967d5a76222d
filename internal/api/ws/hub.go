package ws

import (
	"sync"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Hub держит активные websocket подключения сотрудников бэк-офиса
// Сообщения чата рассылаются всем, уведомления только адресату
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	log     Logger
}

// NewHub создает новый хаб подключений
func NewHub(logger Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     logger,
	}
}

// BroadcastMessage рассылает событие нового сообщения всем подключённым клиентам
func (h *Hub) BroadcastMessage(message *domain.ChatMessage) {
	h.broadcast(messageEvent(message), nil)
}

// NotifyUser доставляет уведомление всем подключениям указанного пользователя
func (h *Hub) NotifyUser(userID int64, notification *domain.Notification) {
	h.broadcast(notificationEvent(notification), &userID)
}

// Shutdown закрывает все активные подключения
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	for _, client := range clients {
		client.close()
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.log.Info("[WS] client connected: user=%d, total=%d", client.userID, total)
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		client.close()
		h.log.Info("[WS] client disconnected: user=%d, total=%d", client.userID, total)
	}
}

// broadcast отправляет событие клиентам; userID == nil означает всем
func (h *Hub) broadcast(event Event, userID *int64) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		if userID != nil && client.userID != *userID {
			continue
		}
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		// Медленный клиент с переполненной очередью отключается
		if !client.enqueue(event) {
			h.log.Warn("[WS] send buffer full, dropping client: user=%d", client.userID)
			h.unregister(client)
		}
	}
}
