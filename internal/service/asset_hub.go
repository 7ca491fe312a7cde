package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
	"vocab_edu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	hubWriteWait  = 10 * time.Second
	hubPongWait   = 60 * time.Second
	hubPingPeriod = (hubPongWait * 9) / 10
	hubMaxMsgSize = 512
	assetChannel  = "vocab_asset_events"
)

var assetUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AssetEvent is what the hub pushes to connected clients when the
// pipeline finishes a vocabulary's audio.
type AssetEvent struct {
	Type     string `json:"type"`
	VocabID  uint   `json:"vocabId"`
	AudioURL string `json:"audioUrl"`
}

type assetClient struct {
	hub     *AssetHub
	conn    *websocket.Conn
	send    chan []byte
	userID  uint
	limiter *rate.Limiter
}

func (c *assetClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(hubMaxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(hubPongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(hubPongWait)); return nil })
	for {
		// Clients never send application messages; the read loop just
		// services control frames and notices disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Debug("asset socket closed unexpectedly", zap.Error(err), zap.Uint("userId", c.userID))
			}
			break
		}
		if !c.limiter.Allow() {
			continue
		}
	}
}

func (c *assetClient) writePump() {
	ticker := time.NewTicker(hubPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// AssetHub fans audio-ready events out to every connected client.
// Events go through redis pub/sub so all instances deliver them, with
// a local-only fallback when redis is absent (tests, dev).
type AssetHub struct {
	mu         sync.RWMutex
	clients    map[*assetClient]struct{}
	register   chan *assetClient
	unregister chan *assetClient
	rdb        *redis.Client
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewAssetHub(rdb *redis.Client) *AssetHub {
	ctx, cancel := context.WithCancel(context.Background())
	return &AssetHub{
		clients:    make(map[*assetClient]struct{}),
		register:   make(chan *assetClient),
		unregister: make(chan *assetClient),
		rdb:        rdb,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (h *AssetHub) Run() {
	if h.rdb != nil {
		pubsub := h.rdb.Subscribe(h.ctx, assetChannel)
		go func() {
			ch := pubsub.Channel()
			for msg := range ch {
				h.pushLocal([]byte(msg.Payload))
			}
		}()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *AssetHub) Stop() {
	h.cancel()
	h.mu.Lock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()
	logger.Log.Info("asset hub stopped")
}

// NotifyAudioReady publishes an audio_ready event for a vocabulary.
func (h *AssetHub) NotifyAudioReady(vocabID uint, audioURL string) {
	payload, _ := json.Marshal(AssetEvent{
		Type:     "audio_ready",
		VocabID:  vocabID,
		AudioURL: audioURL,
	})

	if h.rdb != nil {
		if err := h.rdb.Publish(h.ctx, assetChannel, payload).Err(); err == nil {
			return
		}
	}
	h.pushLocal(payload)
}

func (h *AssetHub) pushLocal(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
		}
	}
}

// ServeAssetWs upgrades the request and attaches the client to the
// hub.
func ServeAssetWs(hub *AssetHub, w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := assetUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("websocket upgrade failed", zap.Error(err), zap.Uint("userId", userID))
		return
	}
	client := &assetClient{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 64),
		userID:  userID,
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}
