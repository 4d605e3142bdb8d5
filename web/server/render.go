package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

var errStreamingUnsupported = errors.New("streaming not supported")

// SSEEvent is one Server-Sent Event
type SSEEvent struct {
	Type string `json:"type"` // "console", "passComplete", "error", "complete"
	Data string `json:"data"` // JSON-encoded data or plain text
}

// sseSink writes render events as Server-Sent Events.
// Only the handler goroutine writes, so no locking is needed.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (s *sseSink) send(event SSEEvent) error {
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *sseSink) sendJSON(eventType string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.send(SSEEvent{Type: eventType, Data: string(data)})
}

func (s *sseSink) Console(msg ConsoleMessage) error { return s.sendJSON("console", msg) }
func (s *sseSink) Pass(update PassUpdate) error     { return s.sendJSON("passComplete", update) }
func (s *sseSink) Error(message string) error       { return s.send(SSEEvent{Type: "error", Data: message}) }
func (s *sseSink) Complete() error                  { return s.send(SSEEvent{Type: "complete", Data: "Rendering completed"}) }

// handleRender streams a progressive render as Server-Sent Events
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, errStreamingUnsupported.Error(), http.StatusInternalServerError)
		return
	}

	s.setSSEHeaders(w)
	sink := &sseSink{w: w, flusher: flusher}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	req, sceneObj, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		sink.Error(fmt.Sprintf("Invalid request: %v", err))
		return
	}

	renderID := uuid.NewString()
	consoleChan, webLogger := s.setupConsoleLogging(renderID)

	pipeline, err := s.setupRenderingPipeline(req, sceneObj, webLogger)
	if err != nil {
		drainConsole(consoleChan, sink)
		sink.Error(err.Error())
		return
	}

	streamRender(ctx, renderID, pipeline, consoleChan, sink)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging(renderID string) (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	return consoleChan, NewWebLogger(renderID, consoleChan)
}
