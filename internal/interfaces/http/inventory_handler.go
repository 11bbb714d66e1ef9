package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/idcodec"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario.
type InventoryHandler struct {
	uc    *inventory.UseCase
	codec *idcodec.Codec
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, codec *idcodec.Codec) *InventoryHandler {
	return &InventoryHandler{uc: uc, codec: codec}
}

func (h *InventoryHandler) toResponse(inv *entity.Inventory) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:            encodeID(h.codec, inv.ID),
		ProductID:     encodeID(h.codec, inv.ProductID),
		ProductName:   inv.ProductName,
		WarehouseID:   encodeID(h.codec, inv.WarehouseID),
		WarehouseName: inv.WarehouseName,
		Quantity:      inv.Quantity,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func (h *InventoryHandler) listResponse(list []*entity.Inventory, limit, offset int) dto.InventoryListResponse {
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, h.toResponse(inv))
	}
	return dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

// Register godoc
// @Summary      Registrar stock inicial
// @Description  Crea el registro de stock para un par (producto, almacén).
// @Description  La cantidad inicial puede ser cero; un registro existente para
// @Description  el mismo par produce conflicto.
// @Tags         inventories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "product_id y warehouse_id son IDs externos cifrados"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories [post]
func (h *InventoryHandler) Register(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	productID, ok := decodeToken(h.codec, in.ProductID)
	if !ok {
		return notFound(c, "producto")
	}
	warehouseID, ok := decodeToken(h.codec, in.WarehouseID)
	if !ok {
		return notFound(c, "almacén")
	}
	inv, err := h.uc.Register(c.Context(), productID, warehouseID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.toResponse(inv))
}

// StockIn godoc
// @Summary      Entrada de stock
// @Tags         inventories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "inventory_id es el ID externo cifrado; quantity debe ser positiva"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventories/stock-in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, ok := decodeToken(h.codec, in.InventoryID)
	if !ok {
		return notFound(c, "stock")
	}
	inv, err := h.uc.StockIn(c.Context(), id, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.toResponse(inv))
}

// StockOut godoc
// @Summary      Salida de stock
// @Description  Rechaza con conflicto la salida que supera el stock
// @Description  disponible, indicando la cantidad actual; nunca aplica un
// @Description  decremento parcial.
// @Tags         inventories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "inventory_id es el ID externo cifrado; quantity debe ser positiva"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories/stock-out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, ok := decodeToken(h.codec, in.InventoryID)
	if !ok {
		return notFound(c, "stock")
	}
	inv, err := h.uc.StockOut(c.Context(), id, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.toResponse(inv))
}

// GetByID godoc
// @Summary      Obtener registro de stock
// @Tags         inventories
// @Produce      json
// @Param        id  path  string  true  "ID externo cifrado"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "stock")
	}
	inv, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.toResponse(inv))
}

// Remove godoc
// @Summary      Dar de baja un registro de stock
// @Description  Elimina el registro aunque tenga cantidad restante (write-off).
// @Tags         inventories
// @Param        id  path  string  true  "ID externo cifrado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id} [delete]
func (h *InventoryHandler) Remove(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "stock")
	}
	if err := h.uc.Remove(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar registros de stock
// @Tags         inventories
// @Produce      json
// @Param        limit   query  int  false  "Máximo de resultados"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventories [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.listResponse(list, limit, offset))
}

// ListByProduct godoc
// @Summary      Stock de un producto en todos los almacenes
// @Tags         inventories
// @Produce      json
// @Param        productId  path  string  true  "ID externo cifrado del producto"
// @Param        limit   query  int  false  "Máximo de resultados"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/by-product/{productId} [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	productID, ok := decodeToken(h.codec, c.Params("productId"))
	if !ok {
		return notFound(c, "producto")
	}
	limit, offset := pageParams(c)
	list, err := h.uc.ListByProduct(c.Context(), productID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.listResponse(list, limit, offset))
}

// ListByWarehouse godoc
// @Summary      Stock de un almacén
// @Tags         inventories
// @Produce      json
// @Param        warehouseId  path  string  true  "ID externo cifrado del almacén"
// @Param        limit   query  int  false  "Máximo de resultados"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/by-warehouse/{warehouseId} [get]
func (h *InventoryHandler) ListByWarehouse(c *fiber.Ctx) error {
	warehouseID, ok := decodeToken(h.codec, c.Params("warehouseId"))
	if !ok {
		return notFound(c, "almacén")
	}
	limit, offset := pageParams(c)
	list, err := h.uc.ListByWarehouse(c.Context(), warehouseID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.listResponse(list, limit, offset))
}

// ListLowStock godoc
// @Summary      Registros con stock bajo
// @Description  Devuelve registros con cantidad menor o igual al umbral,
// @Description  ordenados de menor a mayor.
// @Tags         inventories
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de stock bajo (por defecto 10)"
// @Param        limit   query  int  false  "Máximo de resultados"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventories/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	threshold := int64(c.QueryInt("threshold", 10))
	limit, offset := pageParams(c)
	list, err := h.uc.ListLowStock(c.Context(), threshold, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.listResponse(list, limit, offset))
}

// TotalByProduct godoc
// @Summary      Stock total de un producto
// @Description  Suma el stock del producto en todos los almacenes; un producto
// @Description  sin registros suma cero.
// @Tags         inventories
// @Produce      json
// @Param        productId  path  string  true  "ID externo cifrado del producto"
// @Success      200  {object}  dto.TotalQuantityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/total/{productId} [get]
func (h *InventoryHandler) TotalByProduct(c *fiber.Ctx) error {
	productID, ok := decodeToken(h.codec, c.Params("productId"))
	if !ok {
		return notFound(c, "producto")
	}
	total, err := h.uc.TotalByProduct(c.Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TotalQuantityResponse{
		ProductID:     encodeID(h.codec, productID),
		TotalQuantity: total,
	})
}

// Movements godoc
// @Summary      Historial de movimientos de un registro de stock
// @Tags         inventories
// @Produce      json
// @Param        id  path  string  true  "ID externo cifrado"
// @Param        limit   query  int  false  "Máximo de resultados"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	id, ok := decodeToken(h.codec, c.Params("id"))
	if !ok {
		return notFound(c, "stock")
	}
	limit, offset := pageParams(c)
	list, err := h.uc.Movements(c.Context(), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:        m.ID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			CreatedAt: m.CreatedAt,
		})
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}
