package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/places-service/internal/api/dto"
	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/service"
	"github.com/spec-kit/places-service/internal/upload"
	apperrors "github.com/spec-kit/places-service/pkg/util"
	"github.com/spec-kit/places-service/pkg/validation"
)

// PlacesHandler exposes the place catalog endpoints.
type PlacesHandler struct {
	service *service.PlaceService
	stager  *upload.Stager
}

// NewPlacesHandler constructs handler.
func NewPlacesHandler(placeService *service.PlaceService, stager *upload.Stager) *PlacesHandler {
	return &PlacesHandler{service: placeService, stager: stager}
}

// GetPlace GET /api/places/:pid.
func (h *PlacesHandler) GetPlace(c *fiber.Ctx) error {
	place, err := h.service.GetByID(c.Context(), c.Params("pid"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"place": dto.NewPlaceResponse(place)})
}

// ListByUser GET /api/places/users/:uid.
func (h *PlacesHandler) ListByUser(c *fiber.Ctx) error {
	places, err := h.service.ListByCreator(c.Context(), c.Params("uid"))
	if err != nil {
		return err
	}
	items := make([]dto.PlaceResponse, 0, len(places))
	for i := range places {
		items = append(items, dto.NewPlaceResponse(&places[i]))
	}
	return c.JSON(fiber.Map{"places": items})
}

// CreatePlace POST /api/places. Multipart: image + title, description,
// address, lat, lng.
func (h *PlacesHandler) CreatePlace(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication failed")
	}

	req := dto.CreatePlaceRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Address:     c.FormValue("address"),
	}
	var err error
	if req.Lat, err = parseCoordinate(c.FormValue("lat")); err != nil {
		return apperrors.NewValidationError("invalid inputs passed, please check your data", map[string]any{"lat": "must be a number"})
	}
	if req.Lng, err = parseCoordinate(c.FormValue("lng")); err != nil {
		return apperrors.NewValidationError("invalid inputs passed, please check your data", map[string]any{"lng": "must be a number"})
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	header, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("an image file is required", nil)
	}
	staged, err := h.stager.Stage(header)
	if err != nil {
		return err
	}

	input := service.PlaceCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Lat:         req.Lat,
		Lng:         req.Lng,
	}
	place, err := h.service.Create(c.Context(), principal.UserID, input, staged)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"place": dto.NewPlaceResponse(place)})
}

// UpdatePlace PATCH /api/places/:pid.
func (h *PlacesHandler) UpdatePlace(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication failed")
	}

	var req dto.UpdatePlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	place, err := h.service.Update(c.Context(), principal.UserID, c.Params("pid"), service.PlaceUpdateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"place": dto.NewPlaceResponse(place)})
}

// DeletePlace DELETE /api/places/:pid.
func (h *PlacesHandler) DeletePlace(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication failed")
	}

	placeID := c.Params("pid")
	if err := h.service.Delete(c.Context(), principal.UserID, placeID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Deleted place with id = %s", placeID)})
}

func parseCoordinate(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}
