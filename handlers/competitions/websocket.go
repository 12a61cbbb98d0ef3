package competitions

import (
	"api/config"
	"api/metrics"
	"api/middleware"
	"api/realtime"
	"api/services"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Browsers connect from the scoreboard frontend; non-browser clients send
// no Origin header and pass.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == config.ClientUrl
	},
}

// wsClient adapts one websocket connection to the hub's subscriber
// interface. Writes are serialized: the hub's delivery goroutine and the
// read loop's error replies share the connection.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsClient) Send(env realtime.Envelope) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(env)
}

// CompetitionWebSocket handles live scoreboard connections for a specific
// competition. Every message received from the client is treated as a
// publish attempt: judges and staff get it fanned out to the group,
// anyone else gets an error back on their own connection only.
func CompetitionWebSocket(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.GetUserFromRequest(c)
		if err != nil {
			return
		}

		competitionID := c.Param("id")
		if !services.CompetitionExists(competitionID) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrCompetitionNotFound})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade error: %v", err)
			return
		}

		client := &wsClient{conn: conn}
		hub.Subscribe(competitionID, client)
		metrics.LiveSubscribers.Inc()
		defer func() {
			hub.Unsubscribe(competitionID, client)
			metrics.LiveSubscribers.Dec()
			conn.Close()
		}()

		for {
			var env realtime.Envelope
			if err := conn.ReadJSON(&env); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("WebSocket read error: %v", err)
				}
				break
			}

			if err := hub.Publish(competitionID, user, env); err != nil {
				if errors.Is(err, realtime.ErrNotAuthorized) {
					// Rejection goes back to this connection only
					if sendErr := client.Send(realtime.Envelope{Type: "error", Data: err.Error()}); sendErr != nil {
						break
					}
					continue
				}
				log.Printf("WebSocket publish error: %v", err)
			}
		}
	}
}
