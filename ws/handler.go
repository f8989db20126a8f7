package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"cardRevealServer/config"
	"cardRevealServer/game"
	"cardRevealServer/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// SettingsSaver persists bet/speed choices between sessions.
type SettingsSaver interface {
	Save(ctx context.Context, s game.Settings) error
}

type FlipDoneData struct {
	FlipID uint64 `json:"flipId"`
}

type ActionResultData struct {
	Action   string `json:"action"`
	Accepted bool   `json:"accepted"`
}

type ErrorData struct {
	Error string `json:"error"`
}

// PayTableData is the pay table popup content.
type PayTableData struct {
	Rows        []string       `json:"rows"`
	Entries     []game.Outcome `json:"entries"`
	TotalWeight float64        `json:"totalWeight"`
}

func NewPayTableData(t *game.OutcomeTable) PayTableData {
	return PayTableData{
		Rows:        t.Rows(),
		Entries:     t.Entries(),
		TotalWeight: t.TotalWeight(),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  config.WSReadBufferSize,
	WriteBufferSize: config.WSWriteBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// Handler connects websocket clients to the engine.
type Handler struct {
	hub       *Hub
	engine    *game.Engine
	presenter *Presenter
	settings  SettingsSaver
	log       *zap.SugaredLogger
}

// NewHandler wires the hub and presenter to engine. settings may be nil.
func NewHandler(hub *Hub, engine *game.Engine, presenter *Presenter, settings SettingsSaver) *Handler {
	return &Handler{
		hub:       hub,
		engine:    engine,
		presenter: presenter,
		settings:  settings,
		log:       logger.Named("ws"),
	}
}

// ServeHTTP upgrades the request and serves the client until it disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("❌ WebSocket upgrade error: %v", err)
		return
	}

	client := h.hub.newClient(conn)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	// Initial state goes straight to this client ahead of any broadcast.
	client.sendJSON(Message{Type: MsgSnapshot, Data: h.engine.Snapshot()})
	client.sendJSON(Message{Type: MsgPayTable, Data: NewPayTableData(h.engine.Table())})

	go h.hub.writePump(client)
	go h.hub.readPump(client, h.handleMessage)
}

func (h *Handler) handleMessage(c *Client, msg ClientMessage) {
	switch msg.Type {
	case "flip_done":
		var data FlipDoneData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendJSON(Message{Type: MsgError, Data: ErrorData{Error: "invalid flip_done payload"}})
			return
		}
		// Several clients ack the same flip; only the first one counts.
		h.presenter.Ack(data.FlipID)

	case MsgSnapshot:
		c.sendJSON(Message{Type: MsgSnapshot, Data: h.engine.Snapshot()})

	case MsgPayTable:
		c.sendJSON(Message{Type: MsgPayTable, Data: NewPayTableData(h.engine.Table())})

	default:
		action, ok := game.ParseAction(msg.Type)
		if !ok {
			h.log.Warnf("⚠️  Unknown message type from %s: %s", c.ID, msg.Type)
			c.sendJSON(Message{Type: MsgError, Data: ErrorData{Error: "unknown message type: " + msg.Type}})
			return
		}
		accepted := h.Perform(action)
		c.sendJSON(Message{Type: MsgActionResult, Data: ActionResultData{Action: string(action), Accepted: accepted}})
	}
}

// Perform dispatches a user action to the engine. Accepted bet or speed
// changes are broadcast and persisted.
func (h *Handler) Perform(action game.Action) bool {
	accepted := h.engine.Dispatch(action)
	if !accepted {
		return false
	}

	switch action {
	case game.ActionCycleBet, game.ActionCycleSpeed:
		s := h.engine.Settings()
		h.hub.Broadcast(Message{Type: MsgSettings, Data: s})
		h.saveSettings(s)
	}
	return true
}

func (h *Handler) saveSettings(s game.Settings) {
	if h.settings == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), config.RedisOpTimeout)
	defer cancel()

	start := time.Now()
	if err := h.settings.Save(ctx, s); err != nil {
		h.log.Warnf("⚠️  Failed to save settings: %v", err)
		return
	}
	h.log.Debugf("💾 Settings saved in %v: bet index %d, speed %s", time.Since(start), s.BetIndex, s.Speed)
}
