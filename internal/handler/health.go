package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness. It carries no dependencies on purpose so it stays
// green even when optional infrastructure (MySQL, Redis, RabbitMQ) is down.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
