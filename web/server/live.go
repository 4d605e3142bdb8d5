package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const liveWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// LiveMessage is one JSON frame on the live preview socket
type LiveMessage struct {
	Type      string          `json:"type"` // "session", "console", "frame", "error", "complete"
	SessionID string          `json:"sessionId"`
	Console   *ConsoleMessage `json:"console,omitempty"`
	Frame     *PassUpdate     `json:"frame,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// liveSink writes render events as JSON WebSocket messages.
// gorilla/websocket allows one concurrent writer, which is the handler goroutine.
type liveSink struct {
	conn      *websocket.Conn
	sessionID string
}

func (l *liveSink) send(msg LiveMessage) error {
	msg.SessionID = l.sessionID
	l.conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	return l.conn.WriteJSON(msg)
}

func (l *liveSink) Console(msg ConsoleMessage) error {
	return l.send(LiveMessage{Type: "console", Console: &msg})
}

func (l *liveSink) Pass(update PassUpdate) error {
	update.Event = "frame"
	return l.send(LiveMessage{Type: "frame", Frame: &update})
}

func (l *liveSink) Error(message string) error {
	return l.send(LiveMessage{Type: "error", Error: message})
}

func (l *liveSink) Complete() error {
	return l.send(LiveMessage{Type: "complete"})
}

// handleLive streams progressive snapshots over a WebSocket.
// Any message from the client, or closing the socket, cancels the render.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	// Validate before upgrading so bad requests get a plain HTTP error
	req, sceneObj, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	sink := &liveSink{conn: conn, sessionID: sessionID}
	log.Printf("Live session %s started for scene %s", sessionID, req.Scene)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader goroutine: the client only ever sends to stop the render
	go func() {
		defer cancel()
		if _, _, err := conn.ReadMessage(); err == nil {
			log.Printf("Live session %s stopped by client", sessionID)
		}
	}()

	if err := sink.send(LiveMessage{Type: "session"}); err != nil {
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging(sessionID)
	pipeline, err := s.setupRenderingPipeline(req, sceneObj, webLogger)
	if err != nil {
		drainConsole(consoleChan, sink)
		sink.Error(err.Error())
		return
	}

	streamRender(ctx, sessionID, pipeline, consoleChan, sink)

	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "render finished"),
		time.Now().Add(time.Second))
	log.Printf("Live session %s ended", sessionID)
}
