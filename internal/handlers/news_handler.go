package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/services"
)

type NewsHandler struct {
	newsService *services.NewsService
}

func NewNewsHandler(newsService *services.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

func (h *NewsHandler) List(c *fiber.Ctx) error {
	articles, total, err := h.newsService.List(c.UserContext(), c.Query("category"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewsListResponse{Success: true, Articles: articles, Total: total})
}

func (h *NewsHandler) AdminList(c *fiber.Ctx) error {
	articles, err := h.newsService.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"articles": articles})
}

// Create accepts a single article or {"articles": [...]}.
func (h *NewsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateArticlesRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	inputs := req.Articles
	if len(inputs) == 0 {
		inputs = []dto.ArticleInput{req.ArticleInput}
	}

	articles, err := h.newsService.Create(c.UserContext(), inputs)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  fmt.Sprintf("%d article(s) added", len(articles)),
		"articles": articles,
	})
}

func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Article ID required")
	}
	if err := h.newsService.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "Article deleted"})
}

func (h *NewsHandler) Refresh(c *fiber.Ctx) error {
	result, err := h.newsService.Refresh(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.RefreshResponse{
		Success: true,
		Message: fmt.Sprintf("%d nieuwe artikelen toegevoegd, %d overgeslagen (duplicaten of errors)", result.Added, result.Skipped),
		Added:   result.Added,
		Skipped: result.Skipped,
		Total:   result.Total,
	})
}
