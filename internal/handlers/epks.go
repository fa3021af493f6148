package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/epkadmin/internal/models"
	"github.com/example/epkadmin/internal/services"
	"github.com/example/epkadmin/internal/store"
	"github.com/example/epkadmin/internal/utils"
)

// EPKService is the EPK catalogue behind the EPK endpoints.
type EPKService interface {
	List(ctx context.Context, q store.EPKQuery) ([]models.EPK, int64, error)
	Get(ctx context.Context, id string) (*models.EPK, error)
	GetBySlug(ctx context.Context, slug string) (*models.EPK, error)
	Create(ctx context.Context, in services.CreateEPKInput) (*models.EPK, error)
	Update(ctx context.Context, id string, patch []byte) (*models.EPK, error)
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (*models.EPK, error)
	BulkUpdate(ctx context.Context, ids []string, updates map[string]interface{}) (int64, error)
	BulkDelete(ctx context.Context, ids []string) (int64, error)
	Import(ctx context.Context, rows []services.ImportRow) services.ImportResult
	Stats(ctx context.Context) (*store.EPKStats, error)
	Template() services.ImportTemplate
}

// EPKHandler serves the EPK endpoints.
type EPKHandler struct {
	epks EPKService
}

// NewEPKHandler constructs an EPKHandler.
func NewEPKHandler(epks EPKService) *EPKHandler {
	return &EPKHandler{epks: epks}
}

type bulkImportRequest struct {
	EPKsData []services.ImportRow `json:"epksData"`
}

// List returns a filtered page of EPKs.
func (h *EPKHandler) List(c *fiber.Ctx) error {
	params := utils.ParseListParams(c)
	minScore, _ := strconv.Atoi(c.Query("minScore"))

	q := store.EPKQuery{
		ListQuery:  listQuery(params),
		ArtistType: c.Query("artistType"),
		Status:     c.Query("status"),
		ArtistMode: c.Query("artistMode"),
		MinScore:   minScore,
	}

	epks, total, err := h.epks.List(c.UserContext(), q)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       epks,
		"pagination": utils.NewPageMeta(params.Pagination, total),
	})
}

// Get returns one EPK by id.
func (h *EPKHandler) Get(c *fiber.Ctx) error {
	epk, err := h.epks.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": epk})
}

// GetBySlug returns one EPK by its public slug. Slugs contain a slash so the
// route captures the rest of the path.
func (h *EPKHandler) GetBySlug(c *fiber.Ctx) error {
	slug, err := url.PathUnescape(c.Params("*"))
	if err != nil || slug == "" {
		return services.ErrEPKNotFound
	}

	epk, err := h.epks.GetBySlug(c.UserContext(), slug)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": epk})
}

// Create stores a new EPK.
func (h *EPKHandler) Create(c *fiber.Ctx) error {
	var req services.CreateEPKInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	epk, err := h.epks.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    epk,
		"message": "EPK created successfully",
	})
}

// Update replaces the fields present in the body.
func (h *EPKHandler) Update(c *fiber.Ctx) error {
	epk, err := h.epks.Update(c.UserContext(), c.Params("id"), c.Body())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    epk,
		"message": "EPK updated successfully",
	})
}

// Delete removes an EPK.
func (h *EPKHandler) Delete(c *fiber.Ctx) error {
	if err := h.epks.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "EPK deleted successfully"})
}

// TogglePublish flips the published flag.
func (h *EPKHandler) TogglePublish(c *fiber.Ctx) error {
	epk, err := h.epks.TogglePublish(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	state := "unpublished"
	if epk.IsPublished {
		state = "published"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    epk,
		"message": fmt.Sprintf("EPK %s successfully", state),
	})
}

// BulkUpdate applies one update to many EPKs.
func (h *EPKHandler) BulkUpdate(c *fiber.Ctx) error {
	req, err := parseBulkUpdate(c)
	if err != nil {
		return err
	}

	n, err := h.epks.BulkUpdate(c.UserContext(), req.IDs, req.Updates)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"modifiedCount": n},
		"message": fmt.Sprintf("%d EPKs updated", n),
	})
}

// BulkDelete removes many EPKs.
func (h *EPKHandler) BulkDelete(c *fiber.Ctx) error {
	req, err := parseBulkDelete(c)
	if err != nil {
		return err
	}

	n, err := h.epks.BulkDelete(c.UserContext(), req.IDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"deletedCount": n},
		"message": fmt.Sprintf("%d EPKs deleted", n),
	})
}

// BulkImport creates one EPK per spreadsheet row.
func (h *EPKHandler) BulkImport(c *fiber.Ctx) error {
	var req bulkImportRequest
	if err := c.BodyParser(&req); err != nil || req.EPKsData == nil {
		return fiber.NewError(fiber.StatusBadRequest, "epksData must be an array")
	}

	result := h.epks.Import(c.UserContext(), req.EPKsData)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
		"message": fmt.Sprintf("Imported %d EPKs, %d failed", result.Success, result.Failed),
	})
}

// Stats summarises the EPK collection.
func (h *EPKHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.epks.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}

// Template describes the bulk import columns.
func (h *EPKHandler) Template(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.epks.Template(),
		"message": "Template structure generated",
	})
}
