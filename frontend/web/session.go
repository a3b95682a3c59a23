package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/furisto/ask/backend/dialog"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10

	// large enough for a base64 encoded image of the default size limit
	wsMaxMessageSize = 16 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || strings.TrimPrefix(strings.TrimPrefix(origin, "http://"), "https://") == r.Host
	},
}

type client struct {
	writeCh chan Outbound
}

// session connects the browser tabs of one interaction to its dialog.
type session struct {
	dialog *dialog.Dialog
	logger *slog.Logger

	grace        time.Duration
	errorDisplay time.Duration

	mu         sync.Mutex
	clients    map[*client]struct{}
	graceTmr   *time.Timer
	connectTmr *time.Timer
	connected  bool
	errorSeq   int
	finished   bool

	abandoned     chan struct{}
	abandonedOnce sync.Once
	unopened      chan struct{}
	done          chan struct{}
	handlers      sync.WaitGroup
}

func newSession(d *dialog.Dialog, logger *slog.Logger, grace, errorDisplay time.Duration) *session {
	return &session{
		dialog:       d,
		logger:       logger,
		grace:        grace,
		errorDisplay: errorDisplay,
		clients:      make(map[*client]struct{}),
		abandoned:    make(chan struct{}),
		unopened:     make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (s *session) handleSocket(w http.ResponseWriter, r *http.Request) {
	if s.isFinished() {
		http.Error(w, "question already answered", http.StatusGone)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	c := &client{writeCh: make(chan Outbound, 32)}
	if !s.register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "question closed"))
		return
	}
	defer s.unregister(c)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn.SetReadLimit(wsMaxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(ctx, conn, c)
	}()

	push(c.writeCh, stateMessage(s.dialog.View()))

	for {
		var in Inbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}

		if reply, ok := s.handleEvent(in); ok {
			push(c.writeCh, reply)
		}
	}
}

func (s *session) writeLoop(ctx context.Context, conn *websocket.Conn, c *client) {
	ticker := time.NewTicker(wsPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case out := <-c.writeCh:
			if err := writeJSON(conn, out); err != nil {
				return
			}
		case <-s.done:
			flush(conn, c)
			return
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// flush writes the queued messages, which end with the final state, and hangs
// up.
func flush(conn *websocket.Conn, c *client) {
	defer conn.Close()

	for {
		select {
		case out := <-c.writeCh:
			if err := writeJSON(conn, out); err != nil {
				return
			}
		default:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "question closed"),
				time.Now().Add(wsWriteWait))
			return
		}
	}
}

func writeJSON(conn *websocket.Conn, out Outbound) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(out)
}

// handleEvent applies one client event to the dialog. The returned message,
// if any, goes to the sending client only; state changes are broadcast.
func (s *session) handleEvent(in Inbound) (Outbound, bool) {
	d := s.dialog

	switch strings.ToLower(strings.TrimSpace(in.Type)) {
	case "":
		return errorMessage("invalid_argument", "type is required"), true
	case EventPing:
		return Outbound{Type: MessagePong}, true
	case EventSelect:
		if !d.Select(in.Index) {
			return errorMessage("invalid_argument", "no such option"), true
		}
	case EventText:
		d.SetText(in.Text)
	case EventFocusCustom:
		d.FocusCustom()
	case EventAttach:
		if !d.AttachBase64(in.Data, in.MIMEType) {
			return errorMessage("invalid_attachment", "only PNG, JPEG, GIF and WebP images within the size limit can be attached"), true
		}
	case EventRemove:
		d.RemoveImage(in.Index)
	case EventSubmit:
		if !d.Submit() {
			s.scheduleErrorClear()
		}
	case EventCancel:
		reason := dialog.ReasonButtonClick
		if in.Reason == CancelEscape {
			reason = dialog.ReasonEscapeKey
		}
		d.Cancel(reason)
	default:
		return errorMessage("invalid_argument", "unsupported type: "+in.Type), true
	}

	s.broadcast()
	return Outbound{}, false
}

func (s *session) scheduleErrorClear() {
	s.mu.Lock()
	s.errorSeq++
	seq := s.errorSeq
	s.mu.Unlock()

	time.AfterFunc(s.errorDisplay, func() {
		s.mu.Lock()
		current := seq == s.errorSeq
		s.mu.Unlock()

		if current && s.dialog.View().Error != "" {
			s.dialog.ClearError()
			s.broadcast()
		}
	})
}

func (s *session) broadcast() {
	msg := stateMessage(s.dialog.View())

	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.clients {
		push(c.writeCh, msg)
	}
}

func (s *session) register(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return false
	}

	s.handlers.Add(1)
	s.clients[c] = struct{}{}
	s.connected = true
	if s.connectTmr != nil {
		s.connectTmr.Stop()
		s.connectTmr = nil
	}
	if s.graceTmr != nil {
		s.graceTmr.Stop()
		s.graceTmr = nil
	}
	return true
}

// expectClient closes unopened when no tab connects within timeout. A zero
// timeout waits forever.
func (s *session) expectClient(timeout time.Duration) {
	if timeout <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected || s.finished {
		return
	}
	s.connectTmr = time.AfterFunc(timeout, func() {
		s.mu.Lock()
		connected := s.connected
		s.mu.Unlock()

		if !connected {
			close(s.unopened)
		}
	})
}

// unregister starts the reconnect grace period once the last tab is gone.
// A reload reconnects within it; a closed tab abandons the question.
func (s *session) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.handlers.Done()

	delete(s.clients, c)
	if len(s.clients) > 0 || s.finished {
		return
	}

	s.graceTmr = time.AfterFunc(s.grace, func() {
		s.mu.Lock()
		empty := len(s.clients) == 0
		s.mu.Unlock()

		if empty {
			s.abandonedOnce.Do(func() { close(s.abandoned) })
		}
	})
}

// finish pushes the final state to every tab and waits for their handlers to
// return.
func (s *session) finish(timeout time.Duration) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.finished = true
	if s.graceTmr != nil {
		s.graceTmr.Stop()
	}
	if s.connectTmr != nil {
		s.connectTmr.Stop()
	}
	s.mu.Unlock()

	s.broadcast()
	close(s.done)

	done := make(chan struct{})
	go func() {
		s.handlers.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		s.logger.Warn("browser connections did not close in time")
	}
}

func (s *session) isFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// push drops the oldest queued message when the client falls behind; every
// state message is a full snapshot.
func push(writeCh chan Outbound, out Outbound) {
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
