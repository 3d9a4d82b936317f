package handler

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chartisan/internal/pipeline"
)

const (
	eventsWSWriteWait = 10 * time.Second
	eventsWSPongWait  = 60 * time.Second
	eventsWSPingEvery = (eventsWSPongWait * 9) / 10
)

var eventsWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// StageEvent is one pipeline state transition pushed to subscribers.
type StageEvent struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id"`
	Stage          string `json:"stage"`
	Detail         string `json:"detail,omitempty"`
	Timestamp      string `json:"timestamp"`
}

// Hub fans pipeline stage transitions out to websocket subscribers, keyed by
// conversation.
type Hub struct {
	mu   sync.RWMutex
	subs map[int64]map[chan StageEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[chan StageEvent]struct{})}
}

func (h *Hub) subscribe(conversationID int64) chan StageEvent {
	ch := make(chan StageEvent, 32)
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[conversationID]
	if !ok {
		set = make(map[chan StageEvent]struct{})
		h.subs[conversationID] = set
	}
	set[ch] = struct{}{}
	return ch
}

func (h *Hub) unsubscribe(conversationID int64, ch chan StageEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[conversationID]
	if !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(h.subs, conversationID)
	}
}

// Publish delivers an event to every subscriber of the conversation. Slow
// subscribers drop events rather than block the pipeline.
func (h *Hub) Publish(evt StageEvent) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[evt.ConversationID] {
		select {
		case ch <- evt:
		default:
		}
	}
}

// HookFor adapts the hub into a pipeline stage hook for one conversation.
func (h *Hub) HookFor(conversationID int64) pipeline.StageHook {
	return func(stage pipeline.Stage, detail string) {
		h.Publish(StageEvent{
			Type:           "stage",
			ConversationID: conversationID,
			Stage:          string(stage),
			Detail:         detail,
			Timestamp:      time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// HandlePipelineWS streams stage transitions for one conversation over a
// websocket. GET /ws/pipeline?conversation_id=N.
func (s *Service) HandlePipelineWS(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("conversation_id"))
	conversationID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || conversationID <= 0 {
		http.Error(w, "conversation_id is required", http.StatusBadRequest)
		return
	}

	conn, err := eventsWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(eventsWSPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(eventsWSPongWait))
	})

	sub := s.hub.subscribe(conversationID)
	defer s.hub.unsubscribe(conversationID, sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(eventsWSPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case evt := <-sub:
			if err := conn.SetWriteDeadline(time.Now().Add(eventsWSWriteWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(eventsWSWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
