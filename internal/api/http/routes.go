package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/balloon-playback/internal/playback"
	"github.com/i474232898/balloon-playback/internal/render"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, ctrl *playback.Controller, surface *render.MemorySurface) {
	v1 := app.Group("/api/v1")

	v1.Get("/paths", func(c *fiber.Ctx) error {
		if c.Query("projection") == "3857" {
			return c.JSON(fiber.Map{
				"projection": "EPSG:3857",
				"paths":      surface.ProjectedPaths(),
			})
		}
		return c.JSON(fiber.Map{
			"projection": "EPSG:4326",
			"paths":      surface.Paths(),
		})
	})

	v1.Get("/markers", func(c *fiber.Ctx) error {
		markers, gen := surface.Markers()
		return c.JSON(fiber.Map{
			"generation": gen,
			"markers":    markers,
		})
	})

	v1.Get("/view", func(c *fiber.Ctx) error {
		bounds, err := surface.View()
		if err != nil {
			if errors.Is(err, render.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "view has not been framed")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read view")
		}
		return c.JSON(bounds)
	})

	v1.Get("/playback", func(c *fiber.Ctx) error {
		return c.JSON(ctrl.State())
	})

	v1.Put("/playback/hour", func(c *fiber.Ctx) error {
		var req selectHourRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if *req.Hour > ctrl.Len()-1 {
			return fiber.NewError(fiber.StatusBadRequest, "hour out of range")
		}

		err := ctrl.SelectHour(c.UserContext(), *req.Hour)
		switch {
		case err == nil:
		case errors.Is(err, playback.ErrHourOutOfRange):
			return fiber.NewError(fiber.StatusBadRequest, "hour out of range")
		case errors.Is(err, playback.ErrStaleSelection):
			// A newer scrub owns the surface; report what is shown now.
			return c.Status(fiber.StatusConflict).JSON(ctrl.State())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to select hour")
		}

		return c.JSON(ctrl.State())
	})
}

// selectHourRequest is the body of the scrub control.
type selectHourRequest struct {
	Hour *int `json:"hour" validate:"required,min=0"`
}
