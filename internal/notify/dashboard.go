package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/datasource"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/metrics"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

const (
	dashboardWriteWait = 5 * time.Second
	dashboardPongWait  = 60 * time.Second
)

// DashboardUpdate is the message pushed to dashboard subscribers
type DashboardUpdate struct {
	Type     string          `json:"type"`
	Board    string          `json:"board"`
	SentAt   time.Time       `json:"sent_at"`
	Strategy models.Strategy `json:"strategy"`
}

// Dashboard streams executed strategies to websocket subscribers and,
// when configured, to a webhook.
type Dashboard struct {
	name     string
	upgrader websocket.Upgrader
	logger   *logrus.Entry

	webhook      *datasource.RateLimitedHTTPClient
	webhookURL   string
	webhookToken string

	pongWait time.Duration

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// DashboardOption configures a Dashboard
type DashboardOption func(*Dashboard)

// WithWebhook posts every update to url through client
func WithWebhook(client *datasource.RateLimitedHTTPClient, url, token string) DashboardOption {
	return func(d *Dashboard) {
		d.webhook = client
		d.webhookURL = url
		d.webhookToken = token
	}
}

// WithPongWait sets how long a subscriber may go without answering a ping.
// Pings are sent every 9/10 of the wait.
func WithPongWait(wait time.Duration) DashboardOption {
	return func(d *Dashboard) {
		if wait > 0 {
			d.pongWait = wait
		}
	}
}

// NewDashboard creates a dashboard collaborator
func NewDashboard(name string, log *logrus.Logger, opts ...DashboardOption) *Dashboard {
	d := &Dashboard{
		name:    name,
		logger:  log.WithField("collaborator", name),
		clients:  make(map[*websocket.Conn]struct{}),
		pongWait: dashboardPongWait,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the collaborator name
func (d *Dashboard) Name() string {
	return d.name
}

// ServeHTTP upgrades the request and subscribes the connection until it closes
func (d *Dashboard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.logger.WithError(err).Warn("Dashboard subscription upgrade failed")
		return
	}

	d.subscribe(conn)
	defer d.unsubscribe(conn)

	_ = conn.SetReadDeadline(time.Now().Add(d.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(d.pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go d.keepAlive(conn, done)

	// Subscribers never send anything meaningful; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Notify pushes the strategy to every subscriber and the webhook.
// Subscribers that cannot be written to are dropped.
func (d *Dashboard) Notify(ctx context.Context, strategy *models.Strategy) error {
	if strategy == nil {
		return ErrNilStrategy
	}

	payload, err := json.Marshal(DashboardUpdate{
		Type:     "strategy_executed",
		Board:    d.name,
		SentAt:   time.Now().UTC(),
		Strategy: *strategy,
	})
	if err != nil {
		return fmt.Errorf("failed to encode dashboard update: %w", err)
	}

	d.broadcast(payload)

	if d.webhook != nil && d.webhookURL != "" {
		return d.postWebhook(ctx, payload)
	}
	return nil
}

// Subscribers returns the number of connected stream clients
func (d *Dashboard) Subscribers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.clients)
}

// Close disconnects every subscriber
func (d *Dashboard) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for conn := range d.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(dashboardWriteWait))
		conn.Close()
		delete(d.clients, conn)
	}
	metrics.DashboardSubscribers.Set(0)
}

func (d *Dashboard) subscribe(conn *websocket.Conn) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clients[conn] = struct{}{}
	metrics.DashboardSubscribers.Set(float64(len(d.clients)))
	d.logger.WithField("subscribers", len(d.clients)).Debug("Dashboard subscriber connected")
}

func (d *Dashboard) unsubscribe(conn *websocket.Conn) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.clients[conn]; ok {
		delete(d.clients, conn)
		conn.Close()
	}
	metrics.DashboardSubscribers.Set(float64(len(d.clients)))
}

// keepAlive pings conn until done is closed or a ping cannot be written
func (d *Dashboard) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(d.pongWait * 9 / 10)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			d.mu.Lock()
			_, subscribed := d.clients[conn]
			var err error
			if subscribed {
				err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(dashboardWriteWait))
			}
			d.mu.Unlock()

			if !subscribed || err != nil {
				return
			}
		}
	}
}

func (d *Dashboard) broadcast(payload []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for conn := range d.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(dashboardWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			d.logger.WithError(err).Debug("Dropping dashboard subscriber")
			delete(d.clients, conn)
			conn.Close()
		}
	}
	metrics.DashboardSubscribers.Set(float64(len(d.clients)))
}

func (d *Dashboard) postWebhook(ctx context.Context, payload []byte) error {
	headers := map[string]string{}
	if d.webhookToken != "" {
		headers["Authorization"] = "Bearer " + d.webhookToken
	}

	resp, err := d.webhook.Post(ctx, d.webhookURL, "application/json", payload, headers)
	if err != nil {
		return fmt.Errorf("dashboard webhook failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("dashboard webhook returned %s", resp.Status)
	}
	return nil
}
