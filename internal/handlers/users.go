package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/example/epkadmin/internal/models"
	"github.com/example/epkadmin/internal/store"
	"github.com/example/epkadmin/internal/utils"
)

// AppUserService manages app user profiles.
type AppUserService interface {
	List(ctx context.Context, q store.ListQuery) ([]models.AppUser, int64, error)
	Get(ctx context.Context, id string) (*models.AppUser, error)
	Create(ctx context.Context, body []byte) (*models.AppUser, error)
	Update(ctx context.Context, id string, patch []byte) (*models.AppUser, error)
	Delete(ctx context.Context, id string) error
	BulkUpdate(ctx context.Context, ids []string, updates map[string]interface{}) (int64, error)
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}

// UserHandler serves the app user endpoints.
type UserHandler struct {
	users AppUserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users AppUserService) *UserHandler {
	return &UserHandler{users: users}
}

type bulkUpdateRequest struct {
	IDs     []string               `json:"ids"`
	Updates map[string]interface{} `json:"updates"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func listQuery(p utils.ListParams) store.ListQuery {
	return store.ListQuery{
		Page:      p.Page,
		Limit:     p.Limit,
		Search:    p.Search,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
	}
}

// List returns a page of app users.
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := utils.ParseListParams(c)

	users, total, err := h.users.List(c.UserContext(), listQuery(params))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       users,
		"pagination": utils.NewPageMeta(params.Pagination, total),
	})
}

// Get returns one app user.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

// Create stores a new app user.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	user, err := h.users.Create(c.UserContext(), c.Body())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user})
}

// Update replaces the fields present in the body.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	user, err := h.users.Update(c.UserContext(), c.Params("id"), c.Body())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

// Delete removes an app user.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
}

// BulkUpdate applies one update to many app users.
func (h *UserHandler) BulkUpdate(c *fiber.Ctx) error {
	req, err := parseBulkUpdate(c)
	if err != nil {
		return err
	}

	n, err := h.users.BulkUpdate(c.UserContext(), req.IDs, req.Updates)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"modifiedCount": n}})
}

// BulkDelete removes many app users.
func (h *UserHandler) BulkDelete(c *fiber.Ctx) error {
	req, err := parseBulkDelete(c)
	if err != nil {
		return err
	}

	n, err := h.users.BulkDelete(c.UserContext(), req.IDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"deletedCount": n}})
}

func parseBulkUpdate(c *fiber.Ctx) (*bulkUpdateRequest, error) {
	var req bulkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.IDs) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ids must be a non-empty array")
	}
	if len(req.Updates) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "updates must be a non-empty object")
	}
	return &req, nil
}

func parseBulkDelete(c *fiber.Ctx) (*bulkDeleteRequest, error) {
	var req bulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.IDs) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ids must be a non-empty array")
	}
	return &req, nil
}
