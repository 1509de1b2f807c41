package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"vendaboard/forecast"
	"vendaboard/models"
)

// HandleRawMaterialProjection serves purchase recommendations for a group's
// raw materials.
//
// GET /api/v1/dashboard/groups/:groupId/purchase-projection/raw-materials
func (h *Handler) HandleRawMaterialProjection(c *fiber.Ctx) error {
	return h.purchaseProjection(c, models.ItemRawMaterial)
}

// HandleResaleProjection serves purchase recommendations for a group's
// resale products.
//
// GET /api/v1/dashboard/groups/:groupId/purchase-projection/resale
func (h *Handler) HandleResaleProjection(c *fiber.Ctx) error {
	return h.purchaseProjection(c, models.ItemResale)
}

func (h *Handler) purchaseProjection(c *fiber.Ctx, kind models.ItemKind) error {
	reqID := requestID()

	groupID := c.Params("groupId")
	if groupID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "groupId is required"})
	}

	projectionDays := c.QueryInt("projection_days", 7)
	if projectionDays < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "projection_days must be >= 1"})
	}
	historyDays := c.QueryInt("history_days", 90)
	if historyDays < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "history_days must be >= 1"})
	}

	mode, err := forecast.ParseMode(c.Query("projection_type"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	companyID := c.Query("company_id")

	log.Printf("🧮 [%s] Purchase projection - group: %s, kind: %s, mode: %s, days: %d, history: %d",
		reqID, groupID, kind, mode, projectionDays, historyDays)

	resp, err := h.Purchase.Project(context.Background(), forecast.PurchaseRequest{
		GroupID:        groupID,
		CompanyID:      companyID,
		Kind:           kind,
		ProjectionDays: projectionDays,
		HistoryDays:    historyDays,
		Mode:           mode,
	})
	if err != nil {
		return renderError(c, reqID, err, "Group", "purchase projection")
	}

	return c.JSON(fiber.Map{"success": true, "data": resp})
}
