// Package stream pushes live simulated prices over websockets.
package stream

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kilianp07/fleetcompute/api/respond"
	"github.com/kilianp07/fleetcompute/core/logger"
	"github.com/kilianp07/fleetcompute/core/market"
)

const writeWait = 5 * time.Second

// PriceStream upgrades GET /ws/ercot and writes the current PriceReading
// immediately and then every interval until the client goes away.
type PriceStream struct {
	now      respond.Clock
	interval time.Duration
	log      logger.Logger
	upgrader websocket.Upgrader
}

// NewPriceStream creates a PriceStream. allowed lists the accepted Origin
// values; an empty list accepts any origin.
func NewPriceStream(now respond.Clock, interval time.Duration, allowed []string, log logger.Logger) *PriceStream {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		origins[o] = true
	}
	return &PriceStream{
		now:      now,
		interval: interval,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(origins) == 0 || origin == "" || origins[origin]
			},
		},
	}
}

func (s *PriceStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("websocket upgrade: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	// drain client frames so close messages are processed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(market.Current(s.now())); err != nil {
			s.log.Debugf("websocket write: %v", err)
			return
		}
		select {
		case <-ticker.C:
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
