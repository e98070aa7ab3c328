package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/models"
	"github.com/woningspotters/woningspotters-api/internal/services"
	"github.com/woningspotters/woningspotters-api/internal/session"
)

type SearchHandler struct {
	searchService  *services.SearchService
	accountService *services.AccountService
	exportService  *services.ExportService
}

func NewSearchHandler(searchService *services.SearchService, accountService *services.AccountService, exportService *services.ExportService) *SearchHandler {
	return &SearchHandler{searchService: searchService, accountService: accountService, exportService: exportService}
}

// Search runs a listing search. Anonymous callers are allowed and get the
// free allowance without being counted.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var criteria models.SearchCriteria
	if err := c.BodyParser(&criteria); err != nil {
		return invalidBody(c)
	}

	userID := session.OptionalUserID(c)
	if userID != nil {
		if _, err := h.accountService.EnsureProfile(c.UserContext(), *userID, session.Email(c)); err != nil {
			slog.Warn("could not ensure profile before search", "user_id", userID.String(), "error", err)
		}
	}

	resp, err := h.searchService.Search(c.UserContext(), userID, criteria)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(resp)
}

func (h *SearchHandler) Export(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var req dto.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	export, err := h.exportService.Export(c.UserContext(), userID, req.Results, req.Format)
	if err != nil {
		return writeError(c, err, "Export is alleen beschikbaar voor Ultra gebruikers")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
	return c.Send(export.Content)
}
