package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"mock-interview-service/internal/app"
	"mock-interview-service/internal/domain"
)

// Inbound room events.
const (
	eventJoinRoom      = "join-room"
	eventUpdateContent = "update-room-content"
	eventUpdateStatus  = "update-room-status"
	eventPlayerReady   = "player-ready"
	eventRevealCode    = "reveal-code-used"
	eventAIHint        = "ai-hint-requested"
	eventCodeSubmit    = "code-submission"
	eventVoiceAnswer   = "voice-answer-submitted"
	eventError         = "error"
)

// WSConfig tunes connection keepalive and buffering.
type WSConfig struct {
	SendBuffer      int
	MaxMessageBytes int64
	WriteWait       time.Duration
	PongWait        time.Duration
	PingInterval    time.Duration
}

func (c WSConfig) withDefaults() WSConfig {
	if c.SendBuffer <= 0 {
		c.SendBuffer = 64
	}
	if c.MaxMessageBytes <= 0 {
		c.MaxMessageBytes = 1 << 20
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.PingInterval <= 0 || c.PingInterval >= c.PongWait {
		c.PingInterval = c.PongWait * 9 / 10
	}
	return c
}

type WSHandler struct {
	coordinator *app.Coordinator
	hub         *Hub
	cfg         WSConfig
	upgrader    websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewWSHandler(coordinator *app.Coordinator, hub *Hub, cfg WSConfig) *WSHandler {
	return &WSHandler{
		coordinator: coordinator,
		hub:         hub,
		cfg:         cfg.withDefaults(),
		conns:       make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type joinPayload struct {
	RoomID   string             `json:"roomId"`
	Username string             `json:"username"`
	Config   *domain.RoomConfig `json:"config"`
}

type contentPayload struct {
	RoomID  string         `json:"roomId"`
	Content domain.Content `json:"content"`
}

type statusPayload struct {
	RoomID string            `json:"roomId"`
	Status domain.RoomStatus `json:"status"`
}

type readyPayload struct {
	RoomID  string `json:"roomId"`
	IsReady bool   `json:"isReady"`
}

type actionPayload struct {
	RoomID     string            `json:"roomId"`
	QuestionID domain.QuestionID `json:"questionId"`
}

type submissionPayload struct {
	RoomID string `json:"roomId"`
	domain.CodeSubmission
}

type voicePayload struct {
	RoomID     string            `json:"roomId"`
	QuestionID domain.QuestionID `json:"questionId"`
	Transcript string            `json:"transcript"`
	Duration   float64           `json:"duration"`
}

// ServeWS upgrades the request and feeds room events into the coordinator.
// A connection may join any number of rooms; closing it leaves all of them.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Str("module", "ws").Err(err).Msg("upgrade failed")
		return
	}
	defer conn.Close()
	h.track(conn)
	defer h.untrack(conn)

	c := newClient(uuid.NewString(), h.cfg.SendBuffer)
	logger := log.With().Str("module", "ws").Str("conn", c.id).Logger()
	logger.Debug().Msg("connected")

	writerDone := make(chan struct{})
	go h.writeLoop(conn, c, writerDone)

	conn.SetReadLimit(h.cfg.MaxMessageBytes)
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	ctx := context.Background()
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				h.sendError(c, "invalid message")
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug().Err(err).Msg("read failed")
			}
			break
		}
		h.dispatch(ctx, c, inbound)
	}

	h.hub.leaveAll(c)
	h.coordinator.Disconnect(ctx, c.id)
	close(c.send)
	<-writerDone
	logger.Debug().Msg("disconnected")
}

func (h *WSHandler) track(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *WSHandler) untrack(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// CloseAll sends a going-away close frame to every open connection and closes
// it. http.Server.Shutdown does not touch hijacked connections, so the server
// registers this as a shutdown hook.
func (h *WSHandler) CloseAll() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(h.cfg.WriteWait))
		_ = conn.Close()
	}
	log.Info().Str("module", "ws").Int("connections", len(conns)).Msg("closed websocket connections")
}

func (h *WSHandler) writeLoop(conn *websocket.Conn, c *client, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug().Str("module", "ws").Str("conn", c.id).Err(err).Msg("write failed")
				_ = conn.Close()
				drain(c.send)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				drain(c.send)
				return
			}
		}
	}
}

// drain discards queued messages until the channel is closed, so producers that
// still hold the client never observe a stuck buffer.
func drain(ch <-chan []byte) {
	for range ch {
	}
}

func (h *WSHandler) dispatch(ctx context.Context, c *client, msg inboundMessage) {
	var err error
	switch msg.Type {
	case eventJoinRoom:
		var p joinPayload
		if err = decode(msg.Payload, &p); err == nil {
			roomID := domain.NormalizeRoomID(p.RoomID)
			if roomID == "" {
				h.sendError(c, "roomId is required")
				return
			}
			h.hub.join(roomID, c)
			h.coordinator.Join(ctx, roomID, c.id, p.Username, p.Config)
			log.Debug().Str("module", "ws").Str("conn", c.id).Str("room", roomID).
				Int("connections", h.hub.Members(roomID)).Msg("joined room")
		}
	case eventUpdateContent:
		var p contentPayload
		if err = decode(msg.Payload, &p); err == nil {
			err = h.coordinator.SetContent(ctx, p.RoomID, c.id, p.Content)
		}
	case eventUpdateStatus:
		var p statusPayload
		if err = decode(msg.Payload, &p); err == nil {
			err = h.coordinator.SetStatus(ctx, p.RoomID, p.Status)
		}
	case eventPlayerReady:
		var p readyPayload
		if err = decode(msg.Payload, &p); err == nil {
			_, _, err = h.coordinator.SetReady(ctx, p.RoomID, c.id, p.IsReady)
		}
	case eventRevealCode, eventAIHint:
		var p actionPayload
		if err = decode(msg.Payload, &p); err == nil {
			kind := domain.ActionRevealCode
			if msg.Type == eventAIHint {
				kind = domain.ActionAIHint
			}
			err = h.coordinator.RecordAction(ctx, p.RoomID, c.id, p.QuestionID, kind)
		}
	case eventCodeSubmit:
		var p submissionPayload
		if err = decode(msg.Payload, &p); err == nil {
			err = h.coordinator.RecordSubmission(ctx, p.RoomID, c.id, p.CodeSubmission)
		}
	case eventVoiceAnswer:
		var p voicePayload
		if err = decode(msg.Payload, &p); err == nil {
			err = h.coordinator.RecordVoiceAnswer(ctx, p.RoomID, c.id, p.QuestionID, p.Transcript, p.Duration)
		}
	default:
		h.sendError(c, "unsupported message type")
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, errBadPayload):
		h.sendError(c, "invalid "+msg.Type+" payload")
	case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrParticipantNotFound):
		// Events for unknown rooms or non-members are dropped.
		log.Debug().Str("module", "ws").Str("conn", c.id).Str("type", msg.Type).Err(err).Msg("event ignored")
	default:
		h.sendError(c, err.Error())
	}
}

var errBadPayload = errors.New("bad payload")

func decode(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return errBadPayload
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errBadPayload
	}
	return nil
}

func (h *WSHandler) sendError(c *client, message string) {
	msg, err := json.Marshal(envelope{Type: eventError, Payload: errorPayload{Message: message}})
	if err != nil {
		return
	}
	c.enqueue(msg)
}
