package dash

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lintelhq/lintel/project"
)

// defaultHeartbeatInterval paces keepalive events on the message stream
// so idle proxies do not cut the connection.
const defaultHeartbeatInterval = 15 * time.Second

// StreamEvent is one NDJSON line on /api/message/stream.
type StreamEvent struct {
	// Type is "message" or "heartbeat".
	Type string `json:"type"`

	// Message is set when Type is "message".
	Message *project.Message `json:"message,omitempty"`
}

func (s *Server) handleMessageStream(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload messageStreamRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, r, http.StatusInternalServerError, fmt.Errorf("response does not support streaming"))
		return
	}

	// Subscribe before reading the snapshot so nothing posted in
	// between is lost; duplicates are filtered by ID below.
	tail, cancel := s.store.SubscribeMessages()
	defer cancel()

	snapshot, err := s.store.ListMessages(project.MessageFilter{ProjectID: payload.ProjectID})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	encoder := json.NewEncoder(w)

	sent := make(map[string]struct{}, len(snapshot))
	for i := range snapshot {
		if err := encoder.Encode(StreamEvent{Type: "message", Message: &snapshot[i]}); err != nil {
			return
		}
		sent[snapshot[i].ID] = struct{}{}
	}
	flusher.Flush()

	interval := s.heartbeat
	if interval <= 0 {
		interval = defaultHeartbeatInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case message, open := <-tail:
			if !open {
				return
			}
			if payload.ProjectID != "" && message.ProjectID != payload.ProjectID {
				continue
			}
			if _, dup := sent[message.ID]; dup {
				delete(sent, message.ID)
				continue
			}
			if err := encoder.Encode(StreamEvent{Type: "message", Message: &message}); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if err := encoder.Encode(StreamEvent{Type: "heartbeat"}); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
