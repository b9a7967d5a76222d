package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// dialTestConn поднимает тестовый ws сервер и возвращает серверную
// сторону установленного подключения
func dialTestConn(t *testing.T) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	connCh := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		connCh <- conn
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientConn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	t.Cleanup(func() { _ = clientConn.Close() })

	return <-connCh
}

func TestClient_EnqueueAfterClose(t *testing.T) {
	client := newClient(1, dialTestConn(t))

	assert.True(t, client.enqueue(Event{Type: EventChatMessage}))

	client.close()

	assert.False(t, client.enqueue(Event{Type: EventChatMessage}))
}

func TestClient_CloseIdempotent(t *testing.T) {
	client := newClient(1, dialTestConn(t))

	client.close()
	client.close()
}

func TestHub_NotifyUser_OnlyTarget(t *testing.T) {
	hub := NewHub(nopLogger{})

	target := newClient(7, dialTestConn(t))
	other := newClient(8, dialTestConn(t))
	hub.register(target)
	hub.register(other)

	hub.NotifyUser(7, &domain.Notification{ID: 1, UserID: 7, Kind: domain.NotificationMention})

	require.Len(t, target.send, 1)
	assert.Empty(t, other.send)
}

func TestHub_BroadcastDuringDisconnect(t *testing.T) {
	hub := NewHub(nopLogger{})

	clients := make([]*Client, 0, 8)
	for i := 0; i < 8; i++ {
		client := newClient(int64(i+1), dialTestConn(t))
		hub.register(client)
		clients = append(clients, client)
	}

	message := &domain.ChatMessage{
		ID:         1,
		EntityType: domain.EntityBooking,
		EntityID:   1,
		AuthorID:   1,
		Body:       "тест",
	}

	// Рассылка идёт параллельно с отключением клиентов: запись в
	// закрытый канал отправки недопустима
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			hub.BroadcastMessage(message)
		}
	}()
	go func() {
		defer wg.Done()
		for _, client := range clients {
			hub.unregister(client)
		}
	}()
	wg.Wait()

	for _, client := range clients {
		assert.False(t, client.enqueue(Event{Type: EventChatMessage}))
	}
}
