package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/i474232898/weather-now/internal/config"
	"github.com/i474232898/weather-now/internal/location"
	"github.com/i474232898/weather-now/internal/presentation"
	"github.com/i474232898/weather-now/internal/store"
)

var validate = validator.New()

// ScreenReader returns the latest published screen.
type ScreenReader interface {
	Latest() (presentation.Screen, error)
}

// Foregrounder starts a new foreground cycle.
type Foregrounder interface {
	Appear(ctx context.Context) (string, error)
}

// FixReceiver accepts location fixes and the permission grant from the host.
type FixReceiver interface {
	Authorize()
	Push(c location.Coordinate) error
}

// Routes bundles what the handlers need. Fixes may be nil when the
// location source is not host-driven; the location routes are then omitted.
type Routes struct {
	Screens    ScreenReader
	Foreground Foregrounder
	Fixes      FixReceiver
	Metrics    http.Handler
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, r Routes) {
	if r.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.Metrics))
	}

	v1 := app.Group("/api/v1")

	v1.Get("/screen", func(c *fiber.Ctx) error {
		screen, err := r.Screens.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "weather screen has not appeared yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather screen")
		}
		return c.JSON(screen)
	})

	v1.Post("/foreground", func(c *fiber.Ctx) error {
		session, err := r.Foreground.Appear(c.UserContext())
		if err != nil {
			if errors.Is(err, config.ErrAPIKeyMissing) {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"session": session})
	})

	if r.Fixes == nil {
		return
	}

	v1.Post("/authorization", func(c *fiber.Ctx) error {
		r.Fixes.Authorize()
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/location", func(c *fiber.Ctx) error {
		var req fixRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid location body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		err := r.Fixes.Push(req.toCoordinate())
		switch {
		case err == nil:
			return c.SendStatus(fiber.StatusAccepted)
		case errors.Is(err, location.ErrInvalidCoordinate):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, location.ErrNotAuthorized), errors.Is(err, location.ErrNotListening):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to accept location fix")
		}
	})
}

// fixRequest is the body of POST /api/v1/location. Pointers distinguish a
// missing field from a zero coordinate.
type fixRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

func (f fixRequest) toCoordinate() location.Coordinate {
	return location.Coordinate{
		Latitude:  *f.Latitude,
		Longitude: *f.Longitude,
	}
}

// ErrorHandler renders errors as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
