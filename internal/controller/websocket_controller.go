package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/tandemchess/tandemchess-backend/internal/model"
	"github.com/tandemchess/tandemchess-backend/internal/obslog"
	"github.com/tandemchess/tandemchess-backend/internal/service"
	"github.com/tandemchess/tandemchess-backend/internal/ws"
)

type WebSocketController struct {
	roomService *service.RoomService
}

func NewWebSocketController(roomService *service.RoomService) *WebSocketController {
	return &WebSocketController{roomService: roomService}
}

// HandleConnection is called when a new WebSocket connection is established.
// It runs the read loop until the socket closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	roomID := c.Params("roomId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.roomService.RegisterConnection(roomID, playerID, c); err != nil {
		obslog.L().Warn("ws_register_failed",
			zap.String("room_id", roomID),
			zap.String("player_id", playerID),
			zap.Error(err),
		)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			obslog.L().Debug("ws_parse_error", zap.String("room_id", roomID), zap.Error(err))
			continue
		}

		if err := wsc.handleMessage(roomID, playerID, msg); err != nil {
			wsc.sendError(c, err.Error())
		}
	}

	wsc.roomService.UnregisterConnection(roomID, playerID, c)
}

func (wsc *WebSocketController) handleMessage(roomID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var payload model.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		return wsc.roomService.HandleMove(roomID, playerID, payload)

	case ws.MessageTypePremove:
		var payload model.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		return wsc.roomService.HandlePremove(roomID, playerID, payload)

	case ws.MessageTypePremoveClear:
		return wsc.roomService.ClearPremoves(roomID, playerID)

	case ws.MessageTypeReady:
		return wsc.roomService.SetReady(roomID, playerID)

	case ws.MessageTypeResign:
		return wsc.roomService.Resign(roomID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, _ := json.Marshal(map[string]string{"error": errorMsg})
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}
