// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/api/utils"
	"github.com/lockstake/lockstake/ledger"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/log"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10
)

type Subscriptions struct {
	feed     *ledger.Feed
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(l *ledger.Ledger, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		feed: l.Feed(),
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin || allowed == "*" {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

func (s *Subscriptions) parsePos(req *http.Request) (uint64, error) {
	posStr := req.URL.Query().Get("pos")
	if posStr == "" {
		return s.feed.LastSeq(), nil
	}
	pos, err := strconv.ParseUint(posStr, 10, 64)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "pos"))
	}
	if pos > s.feed.LastSeq() {
		return 0, utils.BadRequest(errors.New("pos: out of range"))
	}
	return pos, nil
}

func parseAccount(req *http.Request) (*lockstake.Address, error) {
	accStr := req.URL.Query().Get("account")
	if accStr == "" {
		return nil, nil
	}
	addr, err := lockstake.ParseAddress(accStr)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "account"))
	}
	return &addr, nil
}

func (s *Subscriptions) handleSubject(w http.ResponseWriter, req *http.Request) error {
	s.wg.Add(1)
	defer s.wg.Done()

	pos, err := s.parsePos(req)
	if err != nil {
		return err
	}
	account, err := parseAccount(req)
	if err != nil {
		return err
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has already replied
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	defer conn.Close()

	closed := make(chan struct{})
	// start read loop to handle close event and pong
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Debug("websocket read err", "err", err)
				return
			}
		}
	}()

	if err := s.pipe(conn, newStakeReader(s.feed, pos, account), closed); err != nil {
		logger.Debug("subscription closed", "err", err)
	}
	return nil
}

func (s *Subscriptions) pipe(conn *websocket.Conn, reader *stakeReader, closed chan struct{}) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		// take the waiter before reading so no event slips in between
		waiter := s.feed.NewWaiter()
		for _, msg := range reader.Read() {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
		}

		select {
		case <-s.done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			return conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "service shutdown"))
		case <-closed:
			return nil
		case <-waiter.C():
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// Close stops all subscriptions and waits for their handlers to return.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/stakes").
		Methods(http.MethodGet).
		Name("WS /subscriptions/stakes").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubject))
}
