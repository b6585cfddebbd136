package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/handler/http/response"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/metrics"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/sse"
)

type PresenceHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type PresenceHandlerImpl struct {
	hub     *sse.Hub
	metrics *metrics.Metrics
}

func NewPresenceHandler(hub *sse.Hub, m *metrics.Metrics) PresenceHandler {
	return &PresenceHandlerImpl{hub: hub, metrics: m}
}

// Stream handles the SSE connection for live attendance events.
func (h *PresenceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestClaims(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(companyID)
	defer cleanup()

	h.metrics.PresenceSubscribers.Inc()
	defer h.metrics.PresenceSubscribers.Dec()

	// Send initial connection event
	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			// Send keepalive ping
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
