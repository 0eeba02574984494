package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SendSSEChunk writes one unnamed Server-Sent Events data frame.
func SendSSEChunk(w http.ResponseWriter, flusher http.Flusher, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Warn("failed to marshal sse payload")
		return
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		log.WithError(err).Debug("failed to write sse frame")
		return
	}
	flusher.Flush()
}

// SetupSSEHeaders prepares w for an event stream.
func SetupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}
