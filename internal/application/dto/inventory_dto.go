package dto

import "time"

// CreateInventoryRequest registro inicial de stock. Los IDs son tokens
// externos cifrados.
type CreateInventoryRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
}

// StockInRequest entrada de stock sobre un registro existente.
type StockInRequest struct {
	InventoryID string `json:"inventory_id"`
	Quantity    int64  `json:"quantity"`
}

// StockOutRequest salida de stock sobre un registro existente.
type StockOutRequest struct {
	InventoryID string `json:"inventory_id"`
	Quantity    int64  `json:"quantity"`
}

// InventoryResponse registro de stock con IDs externos cifrados y nombres
// denormalizados para lectura.
type InventoryResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	WarehouseID   string    `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	Quantity      int64     `json:"quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// InventoryListResponse listado paginado de registros de stock.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// MovementResponse movimiento de auditoría de un registro de stock.
type MovementResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse historial paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// TotalQuantityResponse stock total de un producto en todos los almacenes.
type TotalQuantityResponse struct {
	ProductID     string `json:"product_id"`
	TotalQuantity int64  `json:"total_quantity"`
}
