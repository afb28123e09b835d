package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-light2d/pkg/renderer"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSMessage is a JSON text frame on the render websocket. Each passComplete
// message is followed by one binary frame holding the pass image as PNG.
type WSMessage struct {
	Type    string          `json:"type"` // "start", "passComplete", "console", "error", "complete"
	Pass    *PassUpdate     `json:"pass,omitempty"`
	Console *ConsoleMessage `json:"console,omitempty"`
	Message string          `json:"message,omitempty"`
}

// handleRenderWS streams a progressive render over a websocket
func (s *Server) handleRenderWS(w http.ResponseWriter, r *http.Request) {
	// Reject bad requests before upgrading so the client gets a status code
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// reader: any read error (including a close frame) cancels the render
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	renderID, consoleChan, webLogger := s.setupConsoleLogging()
	pipeline, err := s.setupRenderingPipeline(renderID, req, webLogger)
	if err != nil {
		writeWS(conn, WSMessage{Type: "error", Message: err.Error()})
		closeWS(conn, websocket.CloseUnsupportedData, err.Error())
		return
	}

	if err := writeWS(conn, WSMessage{Type: "start", Message: renderID}); err != nil {
		return
	}

	startTime := time.Now()
	passChan, _, errChan := pipeline.Raytracer.RenderProgressive(ctx, renderer.RenderOptions{})

	// This goroutine is the only writer on conn
	for passChan != nil || errChan != nil {
		select {
		case passResult, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			if err := s.writePassFrames(conn, passResult, pipeline, req, startTime); err != nil {
				log.Printf("[%s] websocket write failed: %v", renderID, err)
				return
			}

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err != nil {
				writeWS(conn, WSMessage{Type: "error", Message: err.Error()})
				closeWS(conn, websocket.CloseInternalServerErr, "rendering failed")
				return
			}

		case msg := <-consoleChan:
			if err := writeWS(conn, WSMessage{Type: "console", Console: &msg}); err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}

	if err := writeWS(conn, WSMessage{Type: "complete", Message: "Rendering completed"}); err != nil {
		return
	}
	closeWS(conn, websocket.CloseNormalClosure, "")
}

// writePassFrames sends the pass progress as JSON followed by the PNG image
func (s *Server) writePassFrames(conn *websocket.Conn, passResult renderer.PassResult,
	pipeline *RenderingPipeline, req *RenderRequest, startTime time.Time) error {
	update := newPassUpdate(passResult, pipeline, req, startTime)
	if err := writeWS(conn, WSMessage{Type: "passComplete", Pass: &update}); err != nil {
		return err
	}

	data, err := encodePNG(passResult.Image)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteMessage(websocket.BinaryMessage, data)
}

func writeWS(conn *websocket.Conn, msg WSMessage) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(msg)
}

func closeWS(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(time.Second))
}
