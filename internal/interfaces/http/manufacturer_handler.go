package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/idcodec"
)

// ManufacturerHandler maneja las peticiones HTTP de fabricantes.
type ManufacturerHandler struct {
	uc    *usecase.ManufacturerUseCase
	codec *idcodec.Codec
}

// NewManufacturerHandler construye el handler.
func NewManufacturerHandler(uc *usecase.ManufacturerUseCase, codec *idcodec.Codec) *ManufacturerHandler {
	return &ManufacturerHandler{uc: uc, codec: codec}
}

func (h *ManufacturerHandler) toResponse(m *entity.Manufacturer) dto.ManufacturerResponse {
	return dto.ManufacturerResponse{
		ID:          encodeID(h.codec, m.ID),
		CompanyName: m.CompanyName,
		Location:    m.Location,
		Contact:     m.Contact,
		Email:       m.Email,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear fabricante
// @Tags         manufacturers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateManufacturerRequest  true  "Datos del fabricante"
// @Success      201   {object}  dto.ManufacturerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/manufacturers [post]
func (h *ManufacturerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateManufacturerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	m, err := h.uc.Create(usecase.CreateManufacturerInput{
		CompanyName: in.CompanyName,
		Location:    in.Location,
		Contact:     in.Contact,
		Email:       in.Email,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.toResponse(m))
}

// GetByID godoc
// @Summary      Obtener fabricante
// @Tags         manufacturers
// @Produce      json
// @Param        id  path  string  true  "ID externo cifrado"
// @Success      200  {object}  dto.ManufacturerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manufacturers/{id} [get]
func (h *ManufacturerHandler) GetByID(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "fabricante")
	}
	m, err := h.uc.GetByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.toResponse(m))
}

// Update godoc
// @Summary      Modificar fabricante
// @Tags         manufacturers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID externo cifrado"
// @Param        body  body  dto.UpdateManufacturerRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ManufacturerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manufacturers/{id} [put]
func (h *ManufacturerHandler) Update(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "fabricante")
	}
	var in dto.UpdateManufacturerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	m, err := h.uc.Update(id, usecase.UpdateManufacturerInput{
		CompanyName: in.CompanyName,
		Location:    in.Location,
		Contact:     in.Contact,
		Email:       in.Email,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.toResponse(m))
}

// Delete godoc
// @Summary      Eliminar fabricante
// @Tags         manufacturers
// @Param        id  path  string  true  "ID externo cifrado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/manufacturers/{id} [delete]
func (h *ManufacturerHandler) Delete(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "fabricante")
	}
	if err := h.uc.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar fabricantes
// @Tags         manufacturers
// @Produce      json
// @Param        company_name  query  string  false  "Buscar por nombre de empresa (parcial)"
// @Param        email    query  string  false  "Buscar por email (parcial)"
// @Param        contact  query  string  false  "Buscar por contacto (parcial)"
// @Param        location query  string  false  "Buscar por ubicación (parcial)"
// @Param        limit   query  int  false  "Máximo de resultados"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ManufacturerListResponse
// @Router       /api/manufacturers [get]
func (h *ManufacturerHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(usecase.ManufacturerSearch{
		CompanyName: c.Query("company_name"),
		Email:       c.Query("email"),
		Contact:     c.Query("contact"),
		Location:    c.Query("location"),
	}, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.ManufacturerResponse, 0, len(list))
	for _, m := range list {
		items = append(items, h.toResponse(m))
	}
	return c.JSON(dto.ManufacturerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}
