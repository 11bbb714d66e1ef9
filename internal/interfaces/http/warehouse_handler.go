package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/idcodec"
)

// WarehouseHandler maneja las peticiones HTTP de almacenes.
type WarehouseHandler struct {
	uc    *usecase.WarehouseUseCase
	codec *idcodec.Codec
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase, codec *idcodec.Codec) *WarehouseHandler {
	return &WarehouseHandler{uc: uc, codec: codec}
}

func (h *WarehouseHandler) toResponse(w *entity.Warehouse) dto.WarehouseResponse {
	return dto.WarehouseResponse{
		ID:        encodeID(h.codec, w.ID),
		Name:      w.Name,
		Location:  w.Location,
		Contact:   w.Contact,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear almacén
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos del almacén"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	w, err := h.uc.Create(usecase.CreateWarehouseInput{
		Name:     in.Name,
		Location: in.Location,
		Contact:  in.Contact,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.toResponse(w))
}

// GetByID godoc
// @Summary      Obtener almacén
// @Tags         warehouses
// @Produce      json
// @Param        id  path  string  true  "ID externo cifrado"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "almacén")
	}
	w, err := h.uc.GetByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.toResponse(w))
}

// Update godoc
// @Summary      Modificar almacén
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID externo cifrado"
// @Param        body  body  dto.UpdateWarehouseRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "almacén")
	}
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	w, err := h.uc.Update(id, usecase.UpdateWarehouseInput{
		Name:     in.Name,
		Location: in.Location,
		Contact:  in.Contact,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.toResponse(w))
}

// Delete godoc
// @Summary      Eliminar almacén
// @Description  Falla con conflicto si el almacén tiene inventario; nunca se
// @Description  elimina stock en cascada.
// @Tags         warehouses
// @Param        id  path  string  true  "ID externo cifrado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "almacén")
	}
	if err := h.uc.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar almacenes
// @Tags         warehouses
// @Produce      json
// @Param        name      query  string  false  "Buscar por nombre (parcial)"
// @Param        location  query  string  false  "Buscar por ubicación (parcial)"
// @Param        limit   query  int  false  "Máximo de resultados"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.WarehouseListResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(c.Query("name"), c.Query("location"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, h.toResponse(w))
	}
	return c.JSON(dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}
