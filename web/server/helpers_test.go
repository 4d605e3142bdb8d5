package server

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// smallRenderQuery renders the quads scene quickly
const smallRenderQuery = "scene=quads&width=8&height=8&samples=3&batch=1&maxBounces=3"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(0, "", scene.Options{}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

type sseTestEvent struct {
	Type string
	Data string
}

// readSSEEvents parses a complete event stream
func readSSEEvents(t *testing.T, body io.Reader) []sseTestEvent {
	t.Helper()
	var events []sseTestEvent
	var current sseTestEvent

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.Type = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.Data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if current.Type != "" {
				events = append(events, current)
			}
			current = sseTestEvent{}
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Reading event stream failed: %v", err)
	}
	return events
}

func decodePNG(t *testing.T, data string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		t.Fatalf("Invalid base64 image: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Invalid PNG image: %v", err)
	}
	return img
}
