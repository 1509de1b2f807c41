package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"vendaboard/config"
	"vendaboard/forecast"
)

// HandleRevenueForecast serves the full-month revenue forecast of a company.
//
// GET /api/v1/dashboard/companies/:companyId/revenue-forecast?year&month&history_months&compare_previous
func (h *Handler) HandleRevenueForecast(c *fiber.Ctx) error {
	reqID := requestID()

	companyID := c.Params("companyId")
	if companyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "companyId is required"})
	}

	year := c.QueryInt("year")
	if year < 2000 || year > 2100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "year is required and must be a valid year"})
	}
	month := c.QueryInt("month")
	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "month is required and must be between 1 and 12"})
	}

	historyMonths := c.QueryInt("history_months", config.AppConfig.HistoryMonths)
	if historyMonths < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "history_months must be >= 1"})
	}
	comparePrevious := c.QueryBool("compare_previous")

	log.Printf("📈 [%s] Revenue forecast - company: %s, month: %d-%02d, history: %dm, compare: %v",
		reqID, companyID, year, month, historyMonths, comparePrevious)

	resp, err := h.Revenue.Forecast(context.Background(), forecast.RevenueRequest{
		CompanyID:       companyID,
		Year:            year,
		Month:           time.Month(month),
		HistoryMonths:   historyMonths,
		ComparePrevious: comparePrevious,
	})
	if err != nil {
		return renderError(c, reqID, err, "Company", "revenue forecast")
	}

	return c.JSON(fiber.Map{"success": true, "data": resp})
}
