// Package ws distribui os avisos de troca de dataset para os painéis abertos.
package ws

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

type Client struct {
	ID   string
	Send chan []byte
}

type unicastMsg struct {
	id  string
	msg []byte
}

type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // id -> client
	register chan *Client
	unreg    chan *Client

	sendAll chan []byte     // envio para todos
	unicast chan unicastMsg // envio para 1 cliente

	// último aviso; quem conecta depois recebe logo de cara
	last []byte

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		sendAll:  make(chan []byte, 1024),
		unicast:  make(chan unicastMsg, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	id := h.nextID.Add(1)
	return fmt.Sprintf("c%d", id)
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			if c.ID == "" {
				c.ID = h.newID()
			}
			h.mu.Lock()
			h.clients[c.ID] = c
			total := len(h.clients)
			last := h.last
			h.mu.Unlock()
			h.log.Info("client_registered", "id", c.ID, "total", total)
			if last != nil {
				h.replay(c, last)
			}

		case c := <-h.unreg:
			h.mu.Lock()
			if c != nil && c.ID != "" {
				if _, ok := h.clients[c.ID]; ok {
					delete(h.clients, c.ID)
					close(c.Send)
				}
			}
			total := len(h.clients)
			h.mu.Unlock()
			if c != nil {
				h.log.Info("client_unregistered", "id", c.ID, "total", total)
			}

		case msg := <-h.sendAll:
			// replays pendentes saem antes do aviso novo
			h.drainUnicast()
			h.mu.Lock()
			h.last = msg
			targets := make([]*Client, 0, len(h.clients))
			for _, c := range h.clients {
				targets = append(targets, c)
			}
			h.mu.Unlock()
			for _, c := range targets {
				h.deliver(c, msg)
			}

		case u := <-h.unicast:
			h.sendOne(u)

		case <-h.stop:
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			h.log.Info("hub_run_stop")
			return
		}
	}
}

func (h *Hub) sendOne(u unicastMsg) {
	h.mu.RLock()
	c := h.clients[u.id]
	h.mu.RUnlock()
	if c == nil {
		h.log.Warn("send_one_miss", "id", u.id)
		return
	}
	h.deliver(c, u.msg)
}

func (h *Hub) drainUnicast() {
	for {
		select {
		case u := <-h.unicast:
			h.sendOne(u)
		default:
			return
		}
	}
}

// replay manda o último aviso pelo canal unicast; com a fila cheia entrega direto.
func (h *Hub) replay(c *Client, msg []byte) {
	select {
	case h.unicast <- unicastMsg{id: c.ID, msg: msg}:
	default:
		h.deliver(c, msg)
	}
}

// deliver não bloqueia: cliente com buffer cheio é derrubado.
func (h *Hub) deliver(c *Client, msg []byte) {
	select {
	case c.Send <- msg:
	default:
		h.mu.Lock()
		if cc := h.clients[c.ID]; cc == c {
			delete(h.clients, c.ID)
			close(c.Send)
		}
		h.mu.Unlock()
		h.log.Warn("client_dropped_slow", "id", c.ID)
	}
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unreg <- c }

func (h *Hub) Broadcast(b []byte)               { h.sendAll <- b }
func (h *Hub) SendToClient(id string, b []byte) { h.unicast <- unicastMsg{id: id, msg: b} }

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
