package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
}

func success(c *fiber.Ctx, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for key, value := range payload {
		body[key] = value
	}
	return c.JSON(body)
}

func created(c *fiber.Ctx, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for key, value := range payload {
		body[key] = value
	}
	return c.Status(fiber.StatusCreated).JSON(body)
}

// parseDate accepts YYYY-MM-DD dates; anything else is a client error.
func parseDate(value string, location *time.Location) (time.Time, bool) {
	parsed, err := time.ParseInLocation("2006-01-02", value, location)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func pagination(c *fiber.Ctx) (int, int) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func paginationMeta(page int, limit int, total int64) fiber.Map {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return fiber.Map{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": totalPages,
	}
}
