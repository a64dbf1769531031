package model

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/tandemchess/tandemchess-backend/internal/obslog"
	"github.com/tandemchess/tandemchess-backend/internal/ws"
)

type RoomPhase string

const (
	RoomPhaseLobby   RoomPhase = "lobby"
	RoomPhasePlaying RoomPhase = "playing"
	RoomPhaseEnded   RoomPhase = "ended"
)

var (
	ErrRoomFull       = errors.New("room is full")
	ErrNotSeated      = errors.New("player not seated at this board")
	ErrNotPlaying     = errors.New("room is not in a playing state")
	ErrAlreadyPlaying = errors.New("game already in progress")
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalMove = errors.New("illegal move")
)

// GameResult reports how a playing cycle ended, by team.
type GameResult struct {
	Winner Team   `json:"winner"`
	Loser  Team   `json:"loser"`
	Reason string `json:"reason"`
}

// RoomConnections holds the live sockets for one room, playerID -> conn.
type RoomConnections struct {
	connections map[string]*websocket.Conn
	mu          sync.RWMutex
}

func NewRoomConnections() *RoomConnections {
	return &RoomConnections{connections: make(map[string]*websocket.Conn)}
}

// Room is the lobby/session wrapper around one Game. All game mutations go
// through the room mutex: the engine itself assumes at most one in-flight
// mutation, so the room is the serialization point for its boards.
type Room struct {
	ID          string
	mu          sync.Mutex
	phase       RoomPhase
	game        *Game
	result      *GameResult
	initialTime time.Duration
	connections *RoomConnections
}

func NewRoom(id string, flipped []bool, initial time.Duration) *Room {
	return &Room{
		ID:          id,
		phase:       RoomPhaseLobby,
		game:        NewGame(flipped, initial, time.Now()),
		initialTime: initial,
		connections: NewRoomConnections(),
	}
}

// Join seats the player at the first free seat, scanning boards in order.
// Joining twice returns the existing seat.
func (r *Room) Join(playerID string) (int, Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, color, ok := r.seatOf(playerID); ok {
		return idx, color, nil
	}
	for idx, m := range r.game.Matches {
		if color, ok := m.Seat(playerID); ok {
			obslog.L().Info("room_join",
				zap.String("room_id", r.ID),
				zap.String("player_id", playerID),
				zap.Int("match", idx),
				zap.String("color", string(color)),
			)
			return idx, color, nil
		}
	}
	return 0, "", ErrRoomFull
}

func (r *Room) seatOf(playerID string) (int, Color, bool) {
	for idx, m := range r.game.Matches {
		if m.White != nil && m.White.ID == playerID {
			return idx, White, true
		}
		if m.Black != nil && m.Black.ID == playerID {
			return idx, Black, true
		}
	}
	return 0, "", false
}

// SetReady marks the player ready. The lobby flips to playing only once
// every seat is filled and every seated player is ready; that transition
// resets all boards, clocks and premove queues.
func (r *Room) SetReady(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == RoomPhasePlaying {
		return ErrAlreadyPlaying
	}
	idx, color, ok := r.seatOf(playerID)
	if !ok {
		return ErrNotSeated
	}
	r.game.Matches[idx].Player(color).Ready = true

	allReady := true
	for _, m := range r.game.Matches {
		if !m.AllReady() {
			allReady = false
			break
		}
	}
	if allReady {
		r.game.Reset(r.initialTime, time.Now())
		r.phase = RoomPhasePlaying
		r.result = nil
		obslog.L().Info("room_start", zap.String("room_id", r.ID))
	}
	go r.broadcastState(r.snapshot())
	return nil
}

// HandleMove applies a strict move for the player's own seat. Illegal moves
// come back as errors for the transport layer to report; room state is never
// corrupted by a bad request.
func (r *Room) HandleMove(playerID string, payload MovePayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != RoomPhasePlaying {
		return ErrNotPlaying
	}
	idx, color, ok := r.seatOf(playerID)
	if !ok || idx != payload.Match {
		return ErrNotSeated
	}
	m := r.game.Matches[idx]
	if m.Board.Turn != color {
		return ErrNotYourTurn
	}
	if payload.Move.IsDrop() && payload.Move.From.Color != color {
		return ErrIllegalMove
	}
	captured, ok := r.game.DoMove(idx, payload.Move, time.Now())
	if !ok {
		return ErrIllegalMove
	}
	obslog.L().Info("room_move",
		zap.String("room_id", r.ID),
		zap.String("player_id", playerID),
		zap.Int("match", idx),
		zap.Bool("drop", payload.Move.IsDrop()),
		zap.Bool("capture", captured != nil),
	)
	r.finishIfMated()
	go r.broadcastState(r.snapshot())
	return nil
}

// HandlePremove stages a premove for the player's seat. If its owner already
// holds the turn it fires immediately.
func (r *Room) HandlePremove(playerID string, payload MovePayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != RoomPhasePlaying {
		return ErrNotPlaying
	}
	idx, color, ok := r.seatOf(playerID)
	if !ok || idx != payload.Match {
		return ErrNotSeated
	}
	if payload.Move.IsDrop() && payload.Move.From.Color != color {
		return ErrIllegalMove
	}
	if !r.game.QueuePremove(idx, payload.Move, color) {
		return ErrIllegalMove
	}
	r.game.firePremoves(idx, time.Now())
	r.finishIfMated()
	go r.broadcastState(r.snapshot())
	return nil
}

// ClearPremoves discards everything the player staged on their board.
func (r *Room) ClearPremoves(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, _, ok := r.seatOf(playerID)
	if !ok {
		return ErrNotSeated
	}
	r.game.ClearPremoves(idx)
	go r.broadcastState(r.snapshot())
	return nil
}

// Resign ends the cycle with the resigner's team losing.
func (r *Room) Resign(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != RoomPhasePlaying {
		return ErrNotPlaying
	}
	idx, color, ok := r.seatOf(playerID)
	if !ok {
		return ErrNotSeated
	}
	loser := TeamFor(color, r.game.Matches[idx].Flipped)
	r.finish(loser.Other(), loser, "resignation")
	go r.broadcastState(r.snapshot())
	return nil
}

// CheckTimeout is polled by the room manager. When any clock room-wide has
// run out it ends the cycle against the flagged seat's team.
func (r *Room) CheckTimeout(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != RoomPhasePlaying {
		return
	}
	res := r.game.CheckTimeout(now)
	if res == nil {
		return
	}
	obslog.L().Info("room_timeout",
		zap.String("room_id", r.ID),
		zap.Int("match", res.MatchIndex),
		zap.String("color", string(res.Color)),
	)
	r.finish(res.Team.Other(), res.Team, "timeout")
	go r.broadcastState(r.snapshot())
}

func (r *Room) finishIfMated() {
	idx, color, mated := r.game.Checkmated()
	if !mated {
		return
	}
	loser := TeamFor(color, r.game.Matches[idx].Flipped)
	r.finish(loser.Other(), loser, "checkmate")
}

func (r *Room) finish(winner, loser Team, reason string) {
	r.phase = RoomPhaseEnded
	r.result = &GameResult{Winner: winner, Loser: loser, Reason: reason}
	obslog.L().Info("room_end",
		zap.String("room_id", r.ID),
		zap.String("winner", string(winner)),
		zap.String("reason", reason),
	)
}

// ClientMatch is the serializable view of one board.
type ClientMatch struct {
	Board    *BoardState `json:"board"`
	White    *Player     `json:"white"`
	Black    *Player     `json:"black"`
	Clock    *Clock      `json:"clock"`
	Premoves []Premove   `json:"premoves"`
	Flipped  bool        `json:"flipped"`
}

// ClientState is the full serializable room snapshot the transport layer
// ships to clients.
type ClientState struct {
	RoomID  string        `json:"roomId"`
	Phase   RoomPhase     `json:"phase"`
	Matches []ClientMatch `json:"matches"`
	Result  *GameResult   `json:"result"`
}

// State returns a display-ready snapshot with clocks brought current.
func (r *Room) State() ClientState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// snapshot must be called with the room mutex held. Boards and clocks are
// deep-copied so the snapshot can be marshaled after the lock is released.
func (r *Room) snapshot() ClientState {
	now := time.Now()
	state := ClientState{
		RoomID:  r.ID,
		Phase:   r.phase,
		Result:  r.result,
		Matches: make([]ClientMatch, 0, len(r.game.Matches)),
	}
	for _, m := range r.game.Matches {
		if r.phase == RoomPhasePlaying {
			m.UpdateTime(now)
		}
		clock := *m.Clock
		state.Matches = append(state.Matches, ClientMatch{
			Board:    m.Board.Clone(),
			White:    copyPlayer(m.White),
			Black:    copyPlayer(m.Black),
			Clock:    &clock,
			Premoves: m.Premoves.Entries(),
			Flipped:  m.Flipped,
		})
	}
	return state
}

// RegisterConnection attaches a socket for state fan-out. A second socket
// for the same player replaces the first.
func (r *Room) RegisterConnection(playerID string, conn *websocket.Conn) {
	r.connections.mu.Lock()
	if old, exists := r.connections.connections[playerID]; exists {
		old.Close()
	}
	r.connections.connections[playerID] = conn
	r.connections.mu.Unlock()

	go r.broadcastState(r.State())
}

func (r *Room) UnregisterConnection(playerID string, conn *websocket.Conn) {
	r.connections.mu.Lock()
	defer r.connections.mu.Unlock()

	// only drop the registration if it still belongs to this socket
	if current, exists := r.connections.connections[playerID]; exists && current == conn {
		delete(r.connections.connections, playerID)
	}
}

func (r *Room) broadcastState(state ClientState) {
	payload, err := json.Marshal(state)
	if err != nil {
		obslog.L().Error("room_state_marshal", zap.String("room_id", r.ID), zap.Error(err))
		return
	}

	r.connections.mu.Lock()
	defer r.connections.mu.Unlock()
	for playerID, conn := range r.connections.connections {
		msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}
		if err := conn.WriteJSON(msg); err != nil {
			obslog.L().Warn("room_state_send",
				zap.String("room_id", r.ID),
				zap.String("player_id", playerID),
				zap.Error(err),
			)
			delete(r.connections.connections, playerID)
		}
	}
}
