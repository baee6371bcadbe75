package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
)

// EquipmentHandler serves equipment records to any authenticated caller. The
// ownership policy itself lives in the service; this layer only rejects owner
// fields a non-admin is not allowed to send.
type EquipmentHandler struct {
	service ports.EquipmentService
}

func NewEquipmentHandler(service ports.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

// List returns the equipment visible to the caller.
//
// @Summary      List equipment
// @Description  Admins see every record; other users only their own.
// @Tags         equipment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   equipmentResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/equipment [get]
func (h *EquipmentHandler) List(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEquipmentResponses(items))
}

// Create registers a new piece of equipment.
//
// @Summary      Create equipment
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEquipmentRequest  true  "New equipment"
// @Success      201   {object}  equipmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/equipment [post]
func (h *EquipmentHandler) Create(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	var req createEquipmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !id.IsAdmin() && req.OwnerID != "" && req.OwnerID != id.ID {
		return domain.ErrSelfAssignOnly
	}

	d, err := h.service.Create(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEquipmentResponse(d))
}

// Get returns one record.
//
// @Summary      Get equipment
// @Tags         equipment
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Equipment id"
// @Success      200  {object}  equipmentResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/equipment/{id} [get]
func (h *EquipmentHandler) Get(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	d, err := h.service.Get(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEquipmentResponse(d))
}

// Update applies a partial update. description and ownerId accept null.
//
// @Summary      Update equipment
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Equipment id"
// @Param        body  body      updateEquipmentRequest  true  "Fields to change"
// @Success      200   {object}  equipmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/equipment/{id} [patch]
func (h *EquipmentHandler) Update(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	var req updateEquipmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if nulls := req.nulls(); len(nulls) > 0 {
		return domain.NewError(domain.KindBadRequest, validationFailed, nulls...)
	}
	values := req.values()
	if err := c.Validate(&values); err != nil {
		return err
	}

	patch := req.toPatch()
	if patch.IsEmpty() {
		return domain.ErrEmptyPatch
	}
	if !id.IsAdmin() && patch.OwnerID.Set {
		return domain.ErrReassignAdminOnly
	}

	d, err := h.service.Update(c.Request().Context(), id, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEquipmentResponse(d))
}

// Delete removes a record.
//
// @Summary      Delete equipment
// @Tags         equipment
// @Security     BearerAuth
// @Param        id   path  string  true  "Equipment id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/equipment/{id} [delete]
func (h *EquipmentHandler) Delete(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
