package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/pkg/idcodec"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ManufacturerUC *usecase.ManufacturerUseCase
	ProductUC      *usecase.ProductUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	InventoryUC    *inventory.UseCase
	Codec          *idcodec.Codec
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Manufacturers
	manufacturers := api.Group("/manufacturers")
	manufacturerHandler := NewManufacturerHandler(deps.ManufacturerUC, deps.Codec)
	manufacturers.Post("/", manufacturerHandler.Create)
	manufacturers.Get("/", manufacturerHandler.List)
	manufacturers.Get("/:id", manufacturerHandler.GetByID)
	manufacturers.Put("/:id", manufacturerHandler.Update)
	manufacturers.Delete("/:id", manufacturerHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Codec)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Warehouses
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.Codec)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	// Inventories. Las rutas fijas van antes que /:id para que Fiber no las
	// capture como parámetro.
	inventories := api.Group("/inventories")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Codec)
	inventories.Post("/", inventoryHandler.Register)
	inventories.Get("/", inventoryHandler.List)
	inventories.Post("/stock-in", inventoryHandler.StockIn)
	inventories.Post("/stock-out", inventoryHandler.StockOut)
	inventories.Get("/low-stock", inventoryHandler.ListLowStock)
	inventories.Get("/by-product/:productId", inventoryHandler.ListByProduct)
	inventories.Get("/by-warehouse/:warehouseId", inventoryHandler.ListByWarehouse)
	inventories.Get("/total/:productId", inventoryHandler.TotalByProduct)
	inventories.Get("/:id/movements", inventoryHandler.Movements)
	inventories.Get("/:id", inventoryHandler.GetByID)
	inventories.Delete("/:id", inventoryHandler.Remove)
}
