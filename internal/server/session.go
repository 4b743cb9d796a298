package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/pokersim/headsup/internal/brain"
	"github.com/pokersim/headsup/internal/config"
	"github.com/pokersim/headsup/internal/engine"
	"github.com/pokersim/headsup/internal/protocol"
	"github.com/pokersim/headsup/internal/randutil"
)

// ErrSendBufferFull is reported when a client stops draining its messages.
var ErrSendBufferFull = errors.New("send buffer full")

// session owns one client's match: a private engine, the NPC brain playing
// the other seat, and the read/write pumps. All engine calls happen on the
// read loop, so no lock guards the engine.
type session struct {
	conn   *websocket.Conn
	cfg    *config.Config
	logger *log.Logger

	eng  *engine.Engine
	npc  *brain.Brain
	send chan *protocol.Message

	playerName string
}

func newSession(conn *websocket.Conn, cfg *config.Config, seed int64, logger *log.Logger) (*session, error) {
	persona, err := cfg.Personality(cfg.Match.NPCPersona)
	if err != nil {
		return nil, err
	}

	s := &session{
		conn:   conn,
		cfg:    cfg,
		logger: logger.WithPrefix("session"),
		npc:    brain.New(persona.ToPersonality(), randutil.New(seed)),
		send:   make(chan *protocol.Message, 256),
	}

	s.eng = engine.New(
		cfg.Match.PlayerStack, cfg.Match.NPCStack,
		cfg.Match.SmallBlind, cfg.Match.BigBlind,
		engine.WithLogger(logger),
		engine.WithRNG(randutil.New(seed+1)),
		engine.WithObserver(engine.ObserverFunc(s.onEvent)),
	)
	return s, nil
}

// run pumps the connection until the client disconnects or the context is
// cancelled.
func (s *session) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.writeLoop(ctx) })
	g.Go(func() error {
		defer s.conn.Close()
		return s.readLoop()
	})
	// ReadJSON cannot be interrupted by context; closing the socket is what
	// unblocks the read loop on shutdown.
	g.Go(func() error {
		<-ctx.Done()
		_ = s.conn.Close()
		return nil
	})

	err := g.Wait()
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil
	}
	return err
}

func (s *session) readLoop() error {
	for {
		var msg protocol.Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			return err
		}
		if err := s.handle(&msg); err != nil {
			return err
		}
	}
}

func (s *session) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-s.send:
			if err := s.conn.WriteJSON(msg); err != nil {
				return err
			}
		}
	}
}

// onEvent forwards engine events to the write pump. Engine events are
// emitted from inside engine calls on the read loop, so a full buffer means
// the client has stopped reading; the read loop shuts the session down.
func (s *session) onEvent(ev engine.Event) {
	msg, err := messageFromEvent(ev, s.eng)
	if err != nil || msg == nil {
		return
	}
	select {
	case s.send <- msg:
	default:
		s.logger.Warn("send buffer full, dropping client", "player", s.playerName)
		_ = s.conn.Close()
	}
}

func (s *session) handle(msg *protocol.Message) error {
	switch msg.Type {
	case protocol.TypeHello:
		var hello protocol.HelloData
		if err := msg.DecodeData(&hello); err != nil {
			return s.sendError("bad_request", err)
		}
		s.playerName = hello.PlayerName
		s.logger.Info("player joined", "player", s.playerName)
		return s.reply(protocol.TypeWelcome, protocol.WelcomeData{
			PlayerName:  s.playerName,
			SmallBlind:  s.cfg.Match.SmallBlind,
			BigBlind:    s.cfg.Match.BigBlind,
			PlayerStack: s.eng.Stack(engine.PlayerSide),
			NPCStack:    s.eng.Stack(engine.NPCSide),
			Personality: s.cfg.Match.NPCPersona,
		})

	case protocol.TypeNewHand:
		if err := s.eng.StartNewHand(); err != nil {
			return s.sendError("invalid_command", err)
		}
		return s.playNPC()

	case protocol.TypeResume:
		if err := s.eng.Resume(); err != nil {
			return s.sendError("invalid_command", err)
		}
		return s.playNPC()

	case protocol.TypeAction:
		var action protocol.ActionData
		if err := msg.DecodeData(&action); err != nil {
			return s.sendError("bad_request", err)
		}
		act, err := engine.ParseAction(action.Action)
		if err != nil {
			return s.sendError("invalid_action", err)
		}
		if err := s.eng.SubmitAction(engine.PlayerSide, act, action.Amount); err != nil {
			return s.sendError("invalid_action", err)
		}
		return s.playNPC()

	default:
		return s.sendError("bad_request", fmt.Errorf("unknown message type %q", msg.Type))
	}
}

// playNPC lets the NPC act whenever the engine is waiting on it. The client
// drives pacing: after each pause point the engine stops until a resume
// message arrives, so consecutive NPC actions still render one at a time.
func (s *session) playNPC() error {
	for s.eng.Phase() == engine.AwaitingInput {
		valid, err := s.eng.ValidActions()
		if err != nil {
			return err
		}
		if valid.Side != engine.NPCSide {
			return nil
		}

		decision := s.npc.Decide(s.eng.DecisionContext())
		if err := s.eng.SubmitAction(engine.NPCSide, decision.Action, decision.Amount); err != nil {
			s.logger.Warn("npc decision rejected, folding", "error", err)
			decision = engine.Decision{Action: engine.Fold}
			if err := s.eng.SubmitAction(engine.NPCSide, engine.Fold, 0); err != nil {
				return err
			}
		}
		if err := s.reply(protocol.TypeNPCAction, protocol.NPCActionData{
			Action: decision.Action.String(),
			Amount: decision.Amount,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) reply(t protocol.MessageType, data interface{}) error {
	msg, err := protocol.NewMessage(t, data)
	if err != nil {
		return err
	}
	select {
	case s.send <- msg:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (s *session) sendError(code string, cause error) error {
	s.logger.Debug("client error", "code", code, "error", cause)
	return s.reply(protocol.TypeError, protocol.ErrorData{
		Code:    code,
		Message: cause.Error(),
	})
}
