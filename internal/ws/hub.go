package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

const EventCommentCreated = "comment_created"

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans post events out to the sockets watching that post.
type Hub struct {
	mu    sync.RWMutex
	posts map[uint]map[*websocket.Conn]*sync.Mutex
	log   *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		posts: make(map[uint]map[*websocket.Conn]*sync.Mutex),
		log:   log,
	}
}

func (h *Hub) AddConnection(postID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.posts[postID] == nil {
		h.posts[postID] = make(map[*websocket.Conn]*sync.Mutex)
	}
	h.posts[postID][conn] = &sync.Mutex{}
	h.log.Debug("ws client connected", "post_id", postID, "watchers", len(h.posts[postID]))
}

func (h *Hub) RemoveConnection(postID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(postID, conn)
}

func (h *Hub) removeLocked(postID uint, conn *websocket.Conn) {
	conns, ok := h.posts[postID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; !ok {
		return
	}
	delete(conns, conn)
	_ = conn.Close()
	if len(conns) == 0 {
		delete(h.posts, postID)
	}
	h.log.Debug("ws client disconnected", "post_id", postID)
}

// Watchers reports how many sockets follow postID.
func (h *Hub) Watchers(postID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.posts[postID])
}

func (h *Hub) Broadcast(postID uint, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws marshal event", "type", event.Type, "error", err)
		return
	}

	h.mu.RLock()
	type target struct {
		conn *websocket.Conn
		mu   *sync.Mutex
	}
	targets := make([]target, 0, len(h.posts[postID]))
	for conn, mu := range h.posts[postID] {
		targets = append(targets, target{conn, mu})
	}
	h.mu.RUnlock()

	var failed []*websocket.Conn
	for _, t := range targets {
		t.mu.Lock()
		err := t.conn.WriteMessage(websocket.TextMessage, data)
		t.mu.Unlock()
		if err != nil {
			h.log.Warn("ws write failed", "post_id", postID, "error", err)
			failed = append(failed, t.conn)
		}
	}
	if len(failed) == 0 {
		return
	}
	h.mu.Lock()
	for _, conn := range failed {
		h.removeLocked(postID, conn)
	}
	h.mu.Unlock()
}
