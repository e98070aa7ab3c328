package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/services"
	"github.com/woningspotters/woningspotters-api/internal/session"
)

const upgradeForFavorites = "Upgrade to Pro to save favorites"

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	favorites, err := h.favoriteService.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"favorites": favorites})
}

func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	var req dto.FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	favorite, err := h.favoriteService.Add(c.UserContext(), userID, &req)
	if err != nil {
		return writeError(c, err, upgradeForFavorites)
	}
	return c.JSON(fiber.Map{"favorite": favorite})
}

// Remove deletes a favorite by property URL, read from the body or the
// propertyUrl query parameter.
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	var req dto.FavoriteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
	}
	if req.PropertyURL == "" {
		req.PropertyURL = c.Query("propertyUrl")
	}

	if err := h.favoriteService.Remove(c.UserContext(), userID, req.PropertyURL); err != nil {
		return writeError(c, err, upgradeForFavorites)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
