package match

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/DhavalSuthar-24/clubhouse/internal/constants"
	"github.com/DhavalSuthar-24/clubhouse/internal/logger"
)

var upgrader = websocket.Upgrader{
	// Overlays are embedded by streaming software on arbitrary origins.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// OverlayWS godoc
// @Summary      Live overlay stream
// @Description  Websocket that pushes the overlay snapshot whenever it changes.
// @Tags         matches
// @Param        id  path  int  true  "Match ID"
// @Success      101
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /matches/{id}/overlay/ws [get]
func (mc *MatchController) OverlayWS(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	first, err := mc.service.Overlay(c.Request.Context(), id)
	if err != nil {
		mc.handleError(c, id, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logger.FromContext(c).Warn().Err(err).Msg("overlay: upgrade failed")
		return
	}

	log := mc.log.With().Uint("match_id", id).Str("remote", c.ClientIP()).Logger()
	log.Info().Msg("overlay: client connected")

	// The request context is done once the handler returns, so the stream
	// gets its own.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go readPump(conn, done)
	go func() {
		defer cancel()
		mc.writePump(ctx, conn, id, first, done)
		conn.Close()
		log.Info().Msg("overlay: client disconnected")
	}()
}

// writePump sends the first snapshot, then polls and sends again only when the
// snapshot differs from the last one sent.
func (mc *MatchController) writePump(ctx context.Context, conn *websocket.Conn, id uint, first *Overlay, done <-chan struct{}) {
	interval := mc.config.Overlay.PollInterval
	if interval <= 0 {
		interval = constants.OverlayPollInterval
	}
	poll := time.NewTicker(interval)
	ping := time.NewTicker(constants.WSPingInterval)
	defer poll.Stop()
	defer ping.Stop()

	last, err := json.Marshal(first)
	if err != nil || !write(conn, websocket.TextMessage, last) {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			if !write(conn, websocket.PingMessage, nil) {
				return
			}
		case <-poll.C:
			overlay, err := mc.service.Overlay(ctx, id)
			if err != nil {
				mc.log.Warn().Err(err).Uint("match_id", id).Msg("overlay: refresh failed")
				if errors.Is(err, ErrMatchNotFound) {
					return
				}
				continue
			}
			msg, err := json.Marshal(overlay)
			if err != nil || bytes.Equal(msg, last) {
				continue
			}
			if !write(conn, websocket.TextMessage, msg) {
				return
			}
			last = msg
		}
	}
}

func write(conn *websocket.Conn, kind int, msg []byte) bool {
	conn.SetWriteDeadline(time.Now().Add(constants.WSWriteDeadline))
	return conn.WriteMessage(kind, msg) == nil
}

// readPump keeps the read deadline moving on pongs and closes done when the
// client goes away. Clients are not expected to send anything.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadDeadline(time.Now().Add(constants.WSPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(constants.WSPongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
