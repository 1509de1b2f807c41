package handlers

import (
	"context"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"vendaboard/database"
)

// HandleHealth pings the database pool.
func HandleHealth(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "message": "database not initialized"})
	}
	if err := db.Ping(context.Background()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "message": "database ping failed"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleVersion serves the binary's embedded build information.
func HandleVersion(c *fiber.Ctx) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("no build information available")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(info.String())
}
