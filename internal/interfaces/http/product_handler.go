package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/idcodec"
)

// ProductHandler maneja las peticiones HTTP de productos.
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	codec *idcodec.Codec
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, codec *idcodec.Codec) *ProductHandler {
	return &ProductHandler{uc: uc, codec: codec}
}

func (h *ProductHandler) toResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:               encodeID(h.codec, p.ID),
		Name:             p.Name,
		Price:            p.Price,
		Description:      p.Description,
		ManufacturerID:   encodeID(h.codec, p.ManufacturerID),
		ManufacturerName: p.ManufacturerName,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear producto
// @Description  El fabricante referenciado debe existir y la combinación
// @Description  (nombre, precio, fabricante) debe ser única.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto; manufacturer_id es el ID externo cifrado"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	manufacturerID, ok := decodeToken(h.codec, in.ManufacturerID)
	if !ok {
		return notFound(c, "fabricante")
	}
	p, err := h.uc.Create(usecase.CreateProductInput{
		Name:           in.Name,
		Price:          in.Price,
		Description:    in.Description,
		ManufacturerID: manufacturerID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.toResponse(p))
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID externo cifrado"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "producto")
	}
	p, err := h.uc.GetByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.toResponse(p))
}

// Update godoc
// @Summary      Modificar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID externo cifrado"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "producto")
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	input := usecase.UpdateProductInput{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
	}
	if in.ManufacturerID != nil {
		manufacturerID, ok := decodeToken(h.codec, *in.ManufacturerID)
		if !ok {
			return notFound(c, "fabricante")
		}
		input.ManufacturerID = &manufacturerID
	}
	p, err := h.uc.Update(id, input)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.toResponse(p))
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Falla con conflicto si el producto tiene inventario asociado.
// @Tags         products
// @Param        id  path  string  true  "ID externo cifrado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "producto")
	}
	if err := h.uc.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar productos
// @Description  Filtros opcionales: name, manufacturer_name (coincidencia
// @Description  parcial) o min_price y max_price juntos.
// @Tags         products
// @Produce      json
// @Param        name               query  string  false  "Buscar por nombre (parcial)"
// @Param        manufacturer_name  query  string  false  "Buscar por fabricante (parcial)"
// @Param        min_price  query  string  false  "Precio mínimo"
// @Param        max_price  query  string  false  "Precio máximo"
// @Param        limit   query  int  false  "Máximo de resultados"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	search := usecase.ProductSearch{
		Name:             c.Query("name"),
		ManufacturerName: c.Query("manufacturer_name"),
	}
	if raw := c.Query("min_price"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min_price inválido"})
		}
		search.MinPrice = &min
	}
	if raw := c.Query("max_price"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "max_price inválido"})
		}
		search.MaxPrice = &max
	}
	list, err := h.uc.List(search, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, h.toResponse(p))
	}
	return c.JSON(dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}
