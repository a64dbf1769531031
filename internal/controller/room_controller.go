package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tandemchess/tandemchess-backend/internal/service"
)

type RoomController struct {
	roomService *service.RoomService
}

func NewRoomController(roomService *service.RoomService) *RoomController {
	return &RoomController{roomService: roomService}
}

func (rc *RoomController) CreateRoom(c *fiber.Ctx) error {
	roomID, err := rc.roomService.CreateRoom()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Room created",
		"room_id": roomID,
	})
}

func (rc *RoomController) JoinRoom(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	playerID := c.Locals("playerID").(string)

	matchIdx, color, err := rc.roomService.JoinRoom(roomID, playerID)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, service.ErrRoomNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Room joined",
		"match":   matchIdx,
		"color":   color,
	})
}

func (rc *RoomController) GetRoomState(c *fiber.Ctx) error {
	roomID := c.Params("roomId")

	state, err := rc.roomService.GetRoomState(roomID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch room state",
		})
	}

	return c.JSON(state)
}
