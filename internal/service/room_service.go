package service

import (
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/tandemchess/tandemchess-backend/internal/model"
)

// RoomService is the facade the controllers talk to.
type RoomService struct {
	roomManager *RoomManager
}

func NewRoomService(roomManager *RoomManager) *RoomService {
	return &RoomService{roomManager: roomManager}
}

func (rs *RoomService) CreateRoom() (string, error) {
	roomID := uuid.New().String()

	if err := rs.roomManager.CreateRoom(roomID); err != nil {
		return "", fmt.Errorf("failed to create room: %w", err)
	}
	return roomID, nil
}

func (rs *RoomService) JoinRoom(roomID, playerID string) (int, model.Color, error) {
	return rs.roomManager.JoinRoom(roomID, playerID)
}

func (rs *RoomService) GetRoomState(roomID string) (model.ClientState, error) {
	return rs.roomManager.GetRoomState(roomID)
}

func (rs *RoomService) SetReady(roomID, playerID string) error {
	room, err := rs.roomManager.GetRoom(roomID)
	if err != nil {
		return err
	}
	return room.SetReady(playerID)
}

func (rs *RoomService) HandleMove(roomID, playerID string, payload model.MovePayload) error {
	room, err := rs.roomManager.GetRoom(roomID)
	if err != nil {
		return err
	}
	return room.HandleMove(playerID, payload)
}

func (rs *RoomService) HandlePremove(roomID, playerID string, payload model.MovePayload) error {
	room, err := rs.roomManager.GetRoom(roomID)
	if err != nil {
		return err
	}
	return room.HandlePremove(playerID, payload)
}

func (rs *RoomService) ClearPremoves(roomID, playerID string) error {
	room, err := rs.roomManager.GetRoom(roomID)
	if err != nil {
		return err
	}
	return room.ClearPremoves(playerID)
}

func (rs *RoomService) Resign(roomID, playerID string) error {
	room, err := rs.roomManager.GetRoom(roomID)
	if err != nil {
		return err
	}
	return room.Resign(playerID)
}

func (rs *RoomService) RegisterConnection(roomID, playerID string, conn *websocket.Conn) error {
	room, err := rs.roomManager.GetRoom(roomID)
	if err != nil {
		return err
	}
	room.RegisterConnection(playerID, conn)
	return nil
}

func (rs *RoomService) UnregisterConnection(roomID, playerID string, conn *websocket.Conn) {
	room, err := rs.roomManager.GetRoom(roomID)
	if err != nil {
		return
	}
	room.UnregisterConnection(playerID, conn)
}
