package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// NewUpgrader aceita qualquer origem quando allowed == "".
func NewUpgrader(allowed string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowed == "" {
				return true
			}
			return r.Header.Get("Origin") == allowed
		},
	}
}

// Handler sobe a conexão e liga o cliente ao hub. O cliente só escuta;
// o que ele manda é descartado.
func Handler(hub *Hub, up *websocket.Upgrader, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			log.Error("ws_upgrade_error", "err", err)
			return
		}

		client := &Client{ID: hub.newID(), Send: make(chan []byte, 256)}
		hub.Register(client)
		log.Info("ws_client_connected", "id", client.ID, "remote", r.RemoteAddr)

		go writePump(conn, client)
		go readPump(hub, conn, client)
	}
}

// Envia ao socket tudo que chega em client.Send, com ping periódico.
func writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case msg, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Detecta o fechamento do WebSocket.
func readPump(hub *Hub, conn *websocket.Conn, client *Client) {
	defer func() {
		hub.Unregister(client)
		_ = conn.Close()
	}()
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
