package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore emula la base de datos: el TxRunner toma el mutex durante toda la
// transacción (equivalente al bloqueo de fila de SELECT FOR UPDATE) y el
// índice único sobre (producto, almacén) se aplica en Create, igual que el
// constraint real lo haría en el insert.
// ──────────────────────────────────────────────────────────────────────────────

type pairKey struct{ productID, warehouseID int64 }

type fakeStore struct {
	mu          sync.Mutex
	nextID      int64
	inventories map[int64]*entity.Inventory
	byPair      map[pairKey]int64
	movements   []*entity.Movement
	products    map[int64]*entity.Product
	warehouses  map[int64]*entity.Warehouse
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		inventories: make(map[int64]*entity.Inventory),
		byPair:      make(map[pairKey]int64),
		products:    make(map[int64]*entity.Product),
		warehouses:  make(map[int64]*entity.Warehouse),
	}
}

func (s *fakeStore) addProduct(id int64, name string) {
	s.products[id] = &entity.Product{ID: id, Name: name, Price: decimal.NewFromInt(10)}
}

func (s *fakeStore) addWarehouse(id int64, name string) {
	s.warehouses[id] = &entity.Warehouse{ID: id, Name: name}
}

// invStore operaciones crudas sin locking; los wrappers deciden cuándo bloquear.
type invStore struct{ s *fakeStore }

func (r invStore) create(inv *entity.Inventory) error {
	key := pairKey{inv.ProductID, inv.WarehouseID}
	if _, dup := r.s.byPair[key]; dup {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.products[inv.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.warehouses[inv.WarehouseID]; !ok {
		return domain.ErrNotFound
	}
	r.s.nextID++
	inv.ID = r.s.nextID
	cp := *inv
	r.s.inventories[inv.ID] = &cp
	r.s.byPair[key] = inv.ID
	return nil
}

func (r invStore) get(id int64) *entity.Inventory {
	inv, ok := r.s.inventories[id]
	if !ok {
		return nil
	}
	cp := *inv
	return &cp
}

// txInvRepo repositorio atado a la "transacción": el runner ya tiene el mutex.
type txInvRepo struct{ s *fakeStore }

func (r txInvRepo) Create(inv *entity.Inventory) error { return invStore{r.s}.create(inv) }
func (r txInvRepo) GetByID(id int64) (*entity.Inventory, error) {
	return invStore{r.s}.get(id), nil
}
func (r txInvRepo) GetForUpdate(id int64) (*entity.Inventory, error) {
	return invStore{r.s}.get(id), nil
}
func (r txInvRepo) GetByProductAndWarehouse(productID, warehouseID int64) (*entity.Inventory, error) {
	if id, ok := r.s.byPair[pairKey{productID, warehouseID}]; ok {
		return invStore{r.s}.get(id), nil
	}
	return nil, nil
}
func (r txInvRepo) UpdateQuantity(id, quantity int64) error {
	inv, ok := r.s.inventories[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Quantity = quantity
	inv.UpdatedAt = time.Now()
	return nil
}
func (r txInvRepo) Delete(id int64) error {
	inv, ok := r.s.inventories[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.s.byPair, pairKey{inv.ProductID, inv.WarehouseID})
	delete(r.s.inventories, id)
	return nil
}
func (r txInvRepo) List(limit, offset int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range r.s.inventories {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}
func (r txInvRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range r.s.inventories {
		if inv.ProductID == productID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r txInvRepo) ListByWarehouse(warehouseID int64, limit, offset int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range r.s.inventories {
		if inv.WarehouseID == warehouseID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r txInvRepo) ListLowStock(threshold int64, limit, offset int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range r.s.inventories {
		if inv.Quantity <= threshold {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r txInvRepo) TotalQuantityByProduct(productID int64) (int64, error) {
	var total int64
	for _, inv := range r.s.inventories {
		if inv.ProductID == productID {
			total += inv.Quantity
		}
	}
	return total, nil
}

// plainInvRepo versión fuera de transacción: bloquea por llamada.
type plainInvRepo struct{ s *fakeStore }

func (r plainInvRepo) locked(fn func(tx txInvRepo) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(txInvRepo{r.s})
}
func (r plainInvRepo) Create(inv *entity.Inventory) error {
	return r.locked(func(tx txInvRepo) error { return tx.Create(inv) })
}
func (r plainInvRepo) GetByID(id int64) (*entity.Inventory, error) {
	var out *entity.Inventory
	err := r.locked(func(tx txInvRepo) error {
		var err error
		out, err = tx.GetByID(id)
		return err
	})
	return out, err
}
func (r plainInvRepo) GetForUpdate(id int64) (*entity.Inventory, error) { return r.GetByID(id) }
func (r plainInvRepo) GetByProductAndWarehouse(productID, warehouseID int64) (*entity.Inventory, error) {
	var out *entity.Inventory
	err := r.locked(func(tx txInvRepo) error {
		var err error
		out, err = tx.GetByProductAndWarehouse(productID, warehouseID)
		return err
	})
	return out, err
}
func (r plainInvRepo) UpdateQuantity(id, quantity int64) error {
	return r.locked(func(tx txInvRepo) error { return tx.UpdateQuantity(id, quantity) })
}
func (r plainInvRepo) Delete(id int64) error {
	return r.locked(func(tx txInvRepo) error { return tx.Delete(id) })
}
func (r plainInvRepo) List(limit, offset int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	err := r.locked(func(tx txInvRepo) error {
		var err error
		out, err = tx.List(limit, offset)
		return err
	})
	return out, err
}
func (r plainInvRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	err := r.locked(func(tx txInvRepo) error {
		var err error
		out, err = tx.ListByProduct(productID, limit, offset)
		return err
	})
	return out, err
}
func (r plainInvRepo) ListByWarehouse(warehouseID int64, limit, offset int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	err := r.locked(func(tx txInvRepo) error {
		var err error
		out, err = tx.ListByWarehouse(warehouseID, limit, offset)
		return err
	})
	return out, err
}
func (r plainInvRepo) ListLowStock(threshold int64, limit, offset int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	err := r.locked(func(tx txInvRepo) error {
		var err error
		out, err = tx.ListLowStock(threshold, limit, offset)
		return err
	})
	return out, err
}
func (r plainInvRepo) TotalQuantityByProduct(productID int64) (int64, error) {
	var out int64
	err := r.locked(func(tx txInvRepo) error {
		var err error
		out, err = tx.TotalQuantityByProduct(productID)
		return err
	})
	return out, err
}

// txMovRepo / plainMovRepo auditoría de movimientos.
type txMovRepo struct{ s *fakeStore }

func (r txMovRepo) Create(m *entity.Movement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r txMovRepo) ListByInventory(inventoryID int64, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.InventoryID == inventoryID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type plainMovRepo struct{ s *fakeStore }

func (r plainMovRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return txMovRepo{r.s}.Create(m)
}
func (r plainMovRepo) ListByInventory(inventoryID int64, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return txMovRepo{r.s}.ListByInventory(inventoryID, limit, offset)
}

// fakeProductRepo / fakeWarehouseRepo solo lo que el libro consulta.
type fakeProductRepo struct{ s *fakeStore }

func (r fakeProductRepo) Create(p *entity.Product) error { return nil }
func (r fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r fakeProductRepo) Update(p *entity.Product) error { return nil }
func (r fakeProductRepo) Delete(id int64) error          { return nil }
func (r fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r fakeProductRepo) SearchByName(name string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r fakeProductRepo) SearchByManufacturerName(companyName string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r fakeProductRepo) SearchByPriceRange(min, max decimal.Decimal, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeWarehouseRepo struct{ s *fakeStore }

func (r fakeWarehouseRepo) Create(w *entity.Warehouse) error { return nil }
func (r fakeWarehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.warehouses[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}
func (r fakeWarehouseRepo) Update(w *entity.Warehouse) error { return nil }
func (r fakeWarehouseRepo) Delete(id int64) error            { return nil }
func (r fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (r fakeWarehouseRepo) SearchByName(name string, limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (r fakeWarehouseRepo) SearchByLocation(location string, limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}

// fakeTxRunner serializa las transacciones con el mutex del store, igual que
// el bloqueo de fila serializa los read-modify-write reales.
type fakeTxRunner struct{ s *fakeStore }

func (r fakeTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(txInvRepo{r.s}, txMovRepo{r.s})
}

func newTestUseCase(t *testing.T) (*inventory.UseCase, *fakeStore) {
	t.Helper()
	s := newFakeStore()
	s.addProduct(1, "tornillo M4")
	s.addProduct(2, "tuerca M4")
	s.addWarehouse(1, "almacén central")
	s.addWarehouse(2, "almacén norte")
	uc := inventory.NewUseCase(
		fakeTxRunner{s},
		plainInvRepo{s},
		plainMovRepo{s},
		fakeProductRepo{s},
		fakeWarehouseRepo{s},
	)
	return uc, s
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_OK(t *testing.T) {
	uc, _ := newTestUseCase(t)

	inv, err := uc.Register(context.Background(), 1, 1, 50)
	require.NoError(t, err)
	assert.Positive(t, inv.ID)
	assert.Equal(t, int64(50), inv.Quantity)
	assert.Equal(t, "tornillo M4", inv.ProductName)
	assert.Equal(t, "almacén central", inv.WarehouseName)
}

func TestRegister_CantidadCeroEsValida(t *testing.T) {
	uc, _ := newTestUseCase(t)

	inv, err := uc.Register(context.Background(), 1, 1, 0)
	require.NoError(t, err)
	assert.Zero(t, inv.Quantity, "cantidad cero es un registro válido, no un error")
}

func TestRegister_CantidadNegativa(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Register(context.Background(), 1, 1, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_ProductoOAlmacenInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Register(context.Background(), 99, 1, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = uc.Register(context.Background(), 1, 99, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound, "almacén inexistente")
}

// Escenario C: registrar dos veces el mismo par deja exactamente un registro.
func TestRegister_DuplicadoConflicto(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	first, err := uc.Register(ctx, 1, 1, 5)
	require.NoError(t, err)

	_, err = uc.Register(ctx, 1, 1, 5)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity, "el registro original no debe cambiar")

	list, err := uc.ListByProduct(ctx, 1, 100, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1, "debe existir exactamente un registro para el par")
}

// Dos Register concurrentes sobre el mismo par: exactamente uno gana y el
// otro recibe conflicto (el índice único resuelve la carrera del pre-chequeo).
func TestRegister_CarreraConcurrente(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Register(ctx, 2, 2, 7)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, domain.ErrDuplicate)
			conflicts++
		}
	}
	assert.Equal(t, 1, ok, "exactamente un Register debe ganar")
	assert.Equal(t, n-1, conflicts)
}

// ──────────────────────────────────────────────────────────────────────────────
// StockIn / StockOut
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A completo: registro 50 → entrada 10 → salida 70 rechazada →
// salida 60 deja cantidad 0.
func TestStockInOut_EscenarioCompleto(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	inv, err := uc.Register(ctx, 1, 1, 50)
	require.NoError(t, err)

	inv, err = uc.StockIn(ctx, inv.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(60), inv.Quantity)

	_, err = uc.StockOut(ctx, inv.ID, 70)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "60", "el error debe informar el stock actual")

	got, err := uc.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.Quantity, "una salida rechazada no aplica decremento parcial")

	inv, err = uc.StockOut(ctx, inv.ID, 60)
	require.NoError(t, err)
	assert.Zero(t, inv.Quantity, "cantidad cero sigue siendo un registro activo")

	got, err = uc.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Quantity)
}

func TestStockIn_Validaciones(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.StockIn(ctx, 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.StockIn(ctx, 1, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.StockIn(ctx, 12345, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockOut_Validaciones(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.StockOut(ctx, 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.StockOut(ctx, 12345, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockInOut_RegistranMovimientos(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	inv, err := uc.Register(ctx, 1, 1, 20)
	require.NoError(t, err)

	_, err = uc.StockIn(ctx, inv.ID, 5)
	require.NoError(t, err)
	_, err = uc.StockOut(ctx, inv.ID, 8)
	require.NoError(t, err)

	movs, err := uc.Movements(ctx, inv.ID, 100, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3, "registro inicial + entrada + salida")

	var sum int64
	types := make(map[string]int)
	for _, m := range movs {
		sum += m.Quantity
		types[m.Type]++
		assert.NotEmpty(t, m.ID, "cada movimiento lleva uuid")
	}
	assert.Equal(t, int64(17), sum, "la suma de movimientos debe igualar el stock actual")
	assert.Equal(t, 2, types[entity.MovementTypeEntrada])
	assert.Equal(t, 1, types[entity.MovementTypeSalida])
}

// Propiedad de concurrencia: N salidas de cantidad a sobre stock Q dejan pasar
// exactamente floor(Q/a) y el resto observa stock insuficiente.
func TestStockOut_ConcurrenciaFloorQA(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	const (
		q = int64(55)
		a = int64(10)
		n = 10
	)
	inv, err := uc.Register(ctx, 1, 1, q)
	require.NoError(t, err)

	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.StockOut(ctx, inv.ID, a)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			insufficient++
		}
	}
	assert.Equal(t, int(q/a), ok, "deben pasar exactamente floor(Q/a) salidas")
	assert.Equal(t, n-int(q/a), insufficient)

	got, err := uc.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, q-int64(ok)*a, got.Quantity)
	assert.GreaterOrEqual(t, got.Quantity, int64(0), "la cantidad nunca es negativa")
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove / Get
// ──────────────────────────────────────────────────────────────────────────────

// Escenario D: la baja es incondicional sobre la cantidad.
func TestRemove_IncondicionalYGetPosterior(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	inv, err := uc.Register(ctx, 1, 1, 30)
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, inv.ID), "la baja con cantidad 30 debe proceder")

	_, err = uc.Get(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Remove(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "segunda baja del mismo registro")
}

func TestRemove_DejaMovimientoDeBaja(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()

	inv, err := uc.Register(ctx, 1, 1, 30)
	require.NoError(t, err)
	require.NoError(t, uc.Remove(ctx, inv.ID))

	s.mu.Lock()
	defer s.mu.Unlock()
	var baja *entity.Movement
	for _, m := range s.movements {
		if m.InventoryID == inv.ID && m.Type == entity.MovementTypeBaja {
			baja = m
		}
	}
	require.NotNil(t, baja, "la baja con stock restante deja movimiento BAJA")
	assert.Equal(t, int64(-30), baja.Quantity)
}

func TestGet_EsIdempotente(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	inv, err := uc.Register(ctx, 1, 1, 12)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		got, err := uc.Get(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(12), got.Quantity, "lecturas repetidas sin escrituras no cambian nada")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestConsultas_LowStockYTotales(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	a, err := uc.Register(ctx, 1, 1, 3)
	require.NoError(t, err)
	_, err = uc.Register(ctx, 1, 2, 40)
	require.NoError(t, err)
	_, err = uc.Register(ctx, 2, 1, 2)
	require.NoError(t, err)

	low, err := uc.ListLowStock(ctx, 5, 100, 0)
	require.NoError(t, err)
	assert.Len(t, low, 2)

	total, err := uc.TotalByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(43), total)

	_, err = uc.TotalByProduct(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ListLowStock(ctx, -1, 100, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	byWarehouse, err := uc.ListByWarehouse(ctx, 1, 100, 0)
	require.NoError(t, err)
	assert.Len(t, byWarehouse, 2)

	got, err := uc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity)
}
