package service

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tandemchess/tandemchess-backend/internal/config"
	"github.com/tandemchess/tandemchess-backend/internal/model"
	"github.com/tandemchess/tandemchess-backend/internal/obslog"
)

var ErrRoomNotFound = errors.New("room not found")

// RoomManager owns every live room. Rooms are fully independent — each one
// serializes its own game behind its own mutex — so the manager only guards
// the registry itself.
type RoomManager struct {
	rooms map[string]*model.Room
	cfg   *config.Config
	mu    sync.RWMutex
}

func NewRoomManager(cfg *config.Config) *RoomManager {
	rm := &RoomManager{
		rooms: make(map[string]*model.Room),
		cfg:   cfg,
	}

	// timeouts are computed by polling, never awaited inside the engine
	go rm.pollTimeouts()

	return rm
}

func (rm *RoomManager) pollTimeouts() {
	ticker := time.NewTicker(rm.cfg.TimeoutPoll())
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rm.mu.RLock()
		rooms := make([]*model.Room, 0, len(rm.rooms))
		for _, room := range rm.rooms {
			rooms = append(rooms, room)
		}
		rm.mu.RUnlock()

		for _, room := range rooms {
			room.CheckTimeout(now)
		}
	}
}

func (rm *RoomManager) CreateRoom(roomID string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, exists := rm.rooms[roomID]; exists {
		return errors.New("room already exists")
	}
	rm.rooms[roomID] = model.NewRoom(roomID, rm.cfg.Flipped(), rm.cfg.Clock())
	obslog.L().Info("room_create",
		zap.String("room_id", roomID),
		zap.Int("boards", len(rm.cfg.Boards)),
	)
	return nil
}

func (rm *RoomManager) GetRoom(roomID string) (*model.Room, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	room, exists := rm.rooms[roomID]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (rm *RoomManager) JoinRoom(roomID, playerID string) (int, model.Color, error) {
	room, err := rm.GetRoom(roomID)
	if err != nil {
		return 0, "", err
	}
	return room.Join(playerID)
}

func (rm *RoomManager) GetRoomState(roomID string) (model.ClientState, error) {
	room, err := rm.GetRoom(roomID)
	if err != nil {
		return model.ClientState{}, err
	}
	return room.State(), nil
}
