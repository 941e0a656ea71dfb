package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"car-rental/pkg/events"
	"car-rental/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// EventController streams workflow events to the admin dashboard
type EventController struct {
	subscriber events.Subscriber
	upgrader   websocket.Upgrader
}

// NewEventController creates a new event controller. Browsers must connect
// from one of allowedOrigins; clients sending no Origin are accepted.
func NewEventController(subscriber events.Subscriber, allowedOrigins []string) *EventController {
	return &EventController{
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
		},
	}
}

// Stream handles GET /api/v1/admin/events. It replays the recent backlog,
// oldest first, then forwards live events until the client goes away.
func (ec *EventController) Stream(c *gin.Context) {
	replay, _ := strconv.Atoi(c.DefaultQuery("replay", strconv.Itoa(events.RecentLimit)))

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// subscribe before replaying so nothing published in between is lost
	live, err := ec.subscriber.Subscribe(ctx)
	if err != nil {
		logger.Error(err, "failed to subscribe to rental events")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event feed unavailable"})
		return
	}

	conn, err := ec.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error(err, "failed to upgrade connection to WebSocket")
		return
	}
	defer conn.Close()

	if replay > 0 {
		recent, err := ec.subscriber.Recent(ctx, replay)
		if err != nil {
			logger.Error(err, "failed to load recent rental events")
		}
		for _, event := range recent {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}

	// the reader only watches for the close frame and pongs
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-live:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "event feed closed"),
					time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				logger.Debugf("admin event feed closed: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
