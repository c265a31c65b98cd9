package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/farm-ledger/internal/application/ledger"
	"github.com/agrovida/farm-ledger/internal/domain"
	"github.com/agrovida/farm-ledger/internal/domain/entity"
	"github.com/agrovida/farm-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (mismo contrato que los adaptadores postgres)
// ──────────────────────────────────────────────────────────────────────────────

type fakeBatchRepo struct {
	batches map[string]*entity.Batch
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: map[string]*entity.Batch{}}
}

// Create / Update guardan copias y Get devuelve copias, emulando filas de BD:
// mutar el objeto devuelto no toca el almacén hasta el siguiente Update.
func (r *fakeBatchRepo) Create(b *entity.Batch) error {
	r.batches[b.ID] = b.Clone()
	return nil
}

func (r *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	return r.batches[id].Clone(), nil
}

func (r *fakeBatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	return r.batches[id].Clone(), nil
}

func (r *fakeBatchRepo) Update(b *entity.Batch) error {
	r.batches[b.ID] = b.Clone()
	return nil
}

func (r *fakeBatchRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.batches {
		if b.OrganizationID == orgID {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

type fakeMovementRepo struct {
	events []*entity.MovementEvent
}

func (r *fakeMovementRepo) Append(ev *entity.MovementEvent) error {
	r.events = append(r.events, ev)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.MovementEvent, error) {
	for _, ev := range r.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByBatch(batchID string) ([]*entity.MovementEvent, error) {
	var out []*entity.MovementEvent
	for _, ev := range r.events {
		if ev.References(batchID) {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeCommodityRepo struct {
	existing map[string]bool
}

func (r *fakeCommodityRepo) Create(c *entity.Commodity) error          { r.existing[c.ID] = true; return nil }
func (r *fakeCommodityRepo) GetByID(string) (*entity.Commodity, error) { return nil, nil }
func (r *fakeCommodityRepo) Exists(id string) (bool, error)            { return r.existing[id], nil }
func (r *fakeCommodityRepo) List(int, int) ([]*entity.Commodity, error) {
	return nil, nil
}

type fakeFarmRepo struct {
	orgByFarm map[string]string
}

func (r *fakeFarmRepo) Create(*entity.Farm) error           { return nil }
func (r *fakeFarmRepo) GetByID(string) (*entity.Farm, error) { return nil, nil }
func (r *fakeFarmRepo) BelongsToOrg(farmID, orgID string) (bool, error) {
	return r.orgByFarm[farmID] == orgID, nil
}
func (r *fakeFarmRepo) ListByOrganization(string, int, int) ([]*entity.Farm, error) {
	return nil, nil
}

// fakeTxRunner ejecuta fn directamente contra los fakes. Suficiente para la
// lógica del motor: las validaciones ocurren antes de cualquier escritura,
// así que un fallo no deja mutaciones a medias en los fakes.
type fakeTxRunner struct {
	batches   *fakeBatchRepo
	movements *fakeMovementRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.BatchRepository, repository.MovementRepository) error) error {
	return fn(r.batches, r.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testOrgID   = "org-1"
	testActorID = "user-1"
	testComID   = "commodity-coffee"
)

type testEnv struct {
	uc        *ledger.LedgerUseCase
	batches   *fakeBatchRepo
	movements *fakeMovementRepo
}

func newTestEnv() *testEnv {
	batches := newFakeBatchRepo()
	movements := &fakeMovementRepo{}
	commodities := &fakeCommodityRepo{existing: map[string]bool{testComID: true}}
	farms := &fakeFarmRepo{orgByFarm: map[string]string{"farm-1": testOrgID}}
	tx := &fakeTxRunner{batches: batches, movements: movements}
	return &testEnv{
		uc:        ledger.NewLedgerUseCase(tx, batches, movements, commodities, farms),
		batches:   batches,
		movements: movements,
	}
}

// seedBatch inserta un lote AVAILABLE directamente en el fake.
func (e *testEnv) seedBatch(t *testing.T, qty, unit, location string) *entity.Batch {
	t.Helper()
	b := &entity.Batch{
		ID:             uuid.New().String(),
		OrganizationID: testOrgID,
		CommodityID:    testComID,
		Quantity:       decimal.RequireFromString(qty),
		Unit:           unit,
		Status:         entity.BatchStatusAvailable,
		Location:       location,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, e.batches.Create(b))
	return b
}

func (e *testEnv) stored(t *testing.T, id string) *entity.Batch {
	t.Helper()
	b, err := e.batches.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// CreateBatch / GetBatch
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBatch_PersisteYRegistraEvento(t *testing.T) {
	env := newTestEnv()
	b, err := env.uc.CreateBatch(context.Background(), ledger.CreateBatchInput{
		OrganizationID: testOrgID,
		ActorID:        testActorID,
		CommodityID:    testComID,
		FarmID:         "farm-1",
		Quantity:       dec("500"),
		Unit:           "kg",
		Location:       "silo-norte",
		Quality:        "AA",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusAvailable, b.Status)
	assert.True(t, b.Quantity.Equal(dec("500")))

	require.Len(t, env.movements.events, 1)
	assert.Equal(t, entity.MovementKindCREATE, env.movements.events[0].Kind)
	assert.True(t, env.movements.events[0].References(b.ID))
}

func TestCreateBatch_CommodityInexistente_Retorna404(t *testing.T) {
	env := newTestEnv()
	_, err := env.uc.CreateBatch(context.Background(), ledger.CreateBatchInput{
		OrganizationID: testOrgID,
		CommodityID:    "commodity-fantasma",
		Quantity:       dec("10"),
		Unit:           "kg",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.movements.events, "ninguna operación fallida debe dejar eventos")
}

func TestCreateBatch_FincaDeOtraOrganizacion_Prohibido(t *testing.T) {
	env := newTestEnv()
	_, err := env.uc.CreateBatch(context.Background(), ledger.CreateBatchInput{
		OrganizationID: "org-ajena",
		CommodityID:    testComID,
		FarmID:         "farm-1",
		Quantity:       dec("10"),
		Unit:           "kg",
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetBatch_Inexistente(t *testing.T) {
	env := newTestEnv()
	_, err := env.uc.GetBatch(context.Background(), testOrgID, "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_DeltaNegativoQueDejaNegativo_Rechazado(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "100", "kg", "silo-a")

	_, err := env.uc.Adjust(context.Background(), testOrgID, b.ID, dec("-150"), "merma", testActorID)
	require.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	after := env.stored(t, b.ID)
	assert.True(t, after.Quantity.Equal(dec("100")), "el rechazo no debe mutar la cantidad")
	assert.Empty(t, env.movements.events)
}

func TestAdjust_HastaCero_ConsumeLote(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "30", "kg", "silo-a")

	out, err := env.uc.Adjust(context.Background(), testOrgID, b.ID, dec("-30"), "disposición", testActorID)
	require.NoError(t, err)
	assert.True(t, out.Quantity.IsZero())
	assert.Equal(t, entity.BatchStatusConsumed, out.Status)

	require.Len(t, env.movements.events, 1)
	assert.Equal(t, entity.MovementKindADJUST, env.movements.events[0].Kind)
}

func TestAdjust_SobreLoteReservado_TransicionInvalida(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "100", "kg", "silo-a")
	_, err := env.uc.Reserve(context.Background(), testOrgID, b.ID, dec("50"), "O1", time.Now().Add(time.Hour), testActorID)
	require.NoError(t, err)

	_, err = env.uc.Adjust(context.Background(), testOrgID, b.ID, dec("-10"), "merma", testActorID)
	require.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reserve / Release
// ──────────────────────────────────────────────────────────────────────────────

func TestReserve_RoundTripDejaCantidadIntacta(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "200", "kg", "silo-a")
	expiry := time.Now().Add(48 * time.Hour)

	reserved, err := env.uc.Reserve(context.Background(), testOrgID, b.ID, dec("80"), "O1", expiry, testActorID)
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusReserved, reserved.Status)
	require.NotNil(t, reserved.Reservation)
	assert.Equal(t, "O1", reserved.Reservation.OrderID)
	assert.True(t, reserved.Quantity.Equal(dec("200")), "reservar es un hold, no un retiro")

	released, err := env.uc.Release(context.Background(), testOrgID, b.ID, "O1", "orden cancelada", testActorID)
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusAvailable, released.Status)
	assert.Nil(t, released.Reservation)
	assert.True(t, released.Quantity.Equal(dec("200")))

	require.Len(t, env.movements.events, 2)
	assert.Equal(t, entity.MovementKindRESERVE, env.movements.events[0].Kind)
	assert.Equal(t, entity.MovementKindRELEASE, env.movements.events[1].Kind)
}

func TestReserve_CantidadMayorAlDisponible_Rechazada(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "50", "kg", "silo-a")

	_, err := env.uc.Reserve(context.Background(), testOrgID, b.ID, dec("51"), "O1", time.Now().Add(time.Hour), testActorID)
	require.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	after := env.stored(t, b.ID)
	assert.Equal(t, entity.BatchStatusAvailable, after.Status)
	assert.Nil(t, after.Reservation)
}

func TestReserve_ExpiracionPasadaOCero_EntradaInvalida(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "100", "kg", "silo-a")

	_, err := env.uc.Reserve(context.Background(), testOrgID, b.ID, dec("10"), "O1", time.Now().Add(-time.Minute), testActorID)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "una reserva ya vencida no retiene nada")

	_, err = env.uc.Reserve(context.Background(), testOrgID, b.ID, dec("10"), "O1", time.Time{}, testActorID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	after := env.stored(t, b.ID)
	assert.Equal(t, entity.BatchStatusAvailable, after.Status)
	assert.Nil(t, after.Reservation)
	assert.Empty(t, env.movements.events)
}

func TestReserve_SobreLoteYaReservado_TransicionInvalida(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "100", "kg", "silo-a")
	_, err := env.uc.Reserve(context.Background(), testOrgID, b.ID, dec("10"), "O1", time.Now().Add(time.Hour), testActorID)
	require.NoError(t, err)

	_, err = env.uc.Reserve(context.Background(), testOrgID, b.ID, dec("10"), "O2", time.Now().Add(time.Hour), testActorID)
	require.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestRelease_OrdenDistinta_ReservationMismatch(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "100", "kg", "silo-a")
	_, err := env.uc.Reserve(context.Background(), testOrgID, b.ID, dec("40"), "O1", time.Now().Add(time.Hour), testActorID)
	require.NoError(t, err)

	_, err = env.uc.Release(context.Background(), testOrgID, b.ID, "O2", "equivocada", testActorID)
	require.ErrorIs(t, err, domain.ErrReservationMismatch)

	after := env.stored(t, b.ID)
	assert.Equal(t, entity.BatchStatusReserved, after.Status, "el mismatch debe dejar el lote sin cambios")
	require.NotNil(t, after.Reservation)
	assert.Equal(t, "O1", after.Reservation.OrderID)
}

func TestRelease_SinReservaActiva_TransicionInvalida(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "100", "kg", "silo-a")

	_, err := env.uc.Release(context.Background(), testOrgID, b.ID, "O1", "nada que liberar", testActorID)
	require.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_ConservaCantidadTotal(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "120", "kg", "silo-a")

	dest, err := env.uc.Transfer(context.Background(), testOrgID, src.ID, dec("45"), "planta-b", testActorID)
	require.NoError(t, err)

	after := env.stored(t, src.ID)
	assert.True(t, after.Quantity.Equal(dec("75")))
	assert.True(t, dest.Quantity.Equal(dec("45")))
	assert.Equal(t, "planta-b", dest.Location)
	assert.Equal(t, src.CommodityID, dest.CommodityID)
	assert.Equal(t, src.Unit, dest.Unit)

	// Conservación: 75 + 45 == 120
	assert.True(t, after.Quantity.Add(dest.Quantity).Equal(dec("120")))

	require.Len(t, env.movements.events, 1)
	ev := env.movements.events[0]
	assert.Equal(t, entity.MovementKindTRANSFER, ev.Kind)
	assert.True(t, ev.References(src.ID))
	assert.True(t, ev.References(dest.ID))
}

func TestTransfer_Total_ConsumeOrigen(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "60", "kg", "silo-a")

	dest, err := env.uc.Transfer(context.Background(), testOrgID, src.ID, dec("60"), "planta-b", testActorID)
	require.NoError(t, err)

	after := env.stored(t, src.ID)
	assert.True(t, after.Quantity.IsZero())
	assert.Equal(t, entity.BatchStatusConsumed, after.Status)
	assert.True(t, dest.Quantity.Equal(dec("60")))
}

func TestTransfer_CantidadMayorAlDisponible_Rechazada(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "10", "kg", "silo-a")

	_, err := env.uc.Transfer(context.Background(), testOrgID, src.ID, dec("11"), "planta-b", testActorID)
	require.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	after := env.stored(t, src.ID)
	assert.True(t, after.Quantity.Equal(dec("10")))
	assert.Empty(t, env.movements.events)
}

func TestTransfer_LoteInexistente(t *testing.T) {
	env := newTestEnv()
	_, err := env.uc.Transfer(context.Background(), testOrgID, "no-existe", dec("5"), "planta-b", testActorID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Merge
// ──────────────────────────────────────────────────────────────────────────────

func TestMerge_SumaYConsumeOrigen(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "40", "kg", "silo-a")
	dst := env.seedBatch(t, "60", "kg", "silo-a")

	target, err := env.uc.Merge(context.Background(), testOrgID, src.ID, dst.ID, "consolidación", testActorID)
	require.NoError(t, err)
	assert.True(t, target.Quantity.Equal(dec("100")))

	srcAfter := env.stored(t, src.ID)
	assert.True(t, srcAfter.Quantity.IsZero())
	assert.Equal(t, entity.BatchStatusConsumed, srcAfter.Status)

	// Conservación: 40 + 60 antes == 0 + 100 después
	assert.True(t, srcAfter.Quantity.Add(target.Quantity).Equal(dec("100")))

	require.Len(t, env.movements.events, 1)
	ev := env.movements.events[0]
	assert.Equal(t, entity.MovementKindMERGE, ev.Kind)
	assert.True(t, ev.References(src.ID))
	assert.True(t, ev.References(dst.ID))
	assert.Equal(t, "40", ev.Payload["quantity"])
}

func TestMerge_UnidadesDistintas_SinMutacion(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "40", "kg", "silo-a")
	dst := env.seedBatch(t, "60", "lb", "silo-a")

	_, err := env.uc.Merge(context.Background(), testOrgID, src.ID, dst.ID, "consolidación", testActorID)
	require.ErrorIs(t, err, domain.ErrUnitMismatch)

	assert.True(t, env.stored(t, src.ID).Quantity.Equal(dec("40")))
	assert.True(t, env.stored(t, dst.ID).Quantity.Equal(dec("60")))
	assert.Empty(t, env.movements.events)
}

func TestMerge_CommodityDistinto_Rechazado(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "40", "kg", "silo-a")
	dst := env.seedBatch(t, "60", "kg", "silo-a")
	dst.CommodityID = "commodity-otro"
	require.NoError(t, env.batches.Update(dst))

	_, err := env.uc.Merge(context.Background(), testOrgID, src.ID, dst.ID, "consolidación", testActorID)
	require.ErrorIs(t, err, domain.ErrCommodityMismatch)
}

func TestMerge_MismoLote_EntradaInvalida(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "40", "kg", "silo-a")

	_, err := env.uc.Merge(context.Background(), testOrgID, src.ID, src.ID, "", testActorID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Split
// ──────────────────────────────────────────────────────────────────────────────

func TestSplit_ParcialConservaCantidad(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "100", "kg", "silo-a")

	res, err := env.uc.Split(context.Background(), testOrgID, src.ID, []ledger.SplitEntry{
		{Quantity: dec("40"), DestinationLocation: "X"},
		{Quantity: dec("30"), DestinationLocation: "Y"},
	}, testActorID)
	require.NoError(t, err)

	assert.True(t, res.Source.Quantity.Equal(dec("30")))
	assert.Equal(t, entity.BatchStatusAvailable, res.Source.Status, "30 > 0: el origen sigue disponible")
	require.Len(t, res.Created, 2)
	assert.True(t, res.Created[0].Quantity.Equal(dec("40")))
	assert.Equal(t, "X", res.Created[0].Location)
	assert.True(t, res.Created[1].Quantity.Equal(dec("30")))
	assert.Equal(t, "Y", res.Created[1].Location)

	// Conservación: 40 + 30 + 30 == 100
	total := res.Source.Quantity.Add(res.Created[0].Quantity).Add(res.Created[1].Quantity)
	assert.True(t, total.Equal(dec("100")))

	require.Len(t, env.movements.events, 1)
	ev := env.movements.events[0]
	assert.Equal(t, entity.MovementKindSPLIT, ev.Kind)
	assert.Len(t, ev.BatchIDs, 3, "el evento SPLIT referencia origen y todos los hijos")
}

func TestSplit_TotalAgotaYConsumeOrigen(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "100", "kg", "silo-a")

	res, err := env.uc.Split(context.Background(), testOrgID, src.ID, []ledger.SplitEntry{
		{Quantity: dec("100"), DestinationLocation: "X"},
	}, testActorID)
	require.NoError(t, err)
	assert.True(t, res.Source.Quantity.IsZero())
	assert.Equal(t, entity.BatchStatusConsumed, res.Source.Status)
}

func TestSplit_SumaExcedeDisponible_Rechazado(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "50", "kg", "silo-a")

	_, err := env.uc.Split(context.Background(), testOrgID, src.ID, []ledger.SplitEntry{
		{Quantity: dec("30"), DestinationLocation: "X"},
		{Quantity: dec("30"), DestinationLocation: "Y"},
	}, testActorID)
	require.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	assert.True(t, env.stored(t, src.ID).Quantity.Equal(dec("50")))
	assert.Empty(t, env.movements.events)
}

func TestSplit_SinPorciones_EntradaInvalida(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "50", "kg", "silo-a")

	_, err := env.uc.Split(context.Background(), testOrgID, src.ID, nil, testActorID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Quality test / Expire
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordQualityTest_ActualizaGradoYRegistraEvento(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "100", "kg", "silo-a")

	out, err := env.uc.RecordQualityTest(context.Background(), testOrgID, b.ID, "AA+", "catación trimestral", testActorID)
	require.NoError(t, err)
	assert.Equal(t, "AA+", out.Quality)
	assert.True(t, out.Quantity.Equal(dec("100")), "la calidad no toca la cantidad")

	require.Len(t, env.movements.events, 1)
	assert.Equal(t, entity.MovementKindQUALITYTEST, env.movements.events[0].Kind)
}

func TestExpire_DesdeReservado_LimpiaReserva(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "100", "kg", "silo-a")
	_, err := env.uc.Reserve(context.Background(), testOrgID, b.ID, dec("10"), "O1", time.Now().Add(time.Hour), testActorID)
	require.NoError(t, err)

	out, err := env.uc.Expire(context.Background(), testOrgID, b.ID, "vencimiento", testActorID)
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusExpired, out.Status)
	assert.Nil(t, out.Reservation)
}

func TestExpire_LoteConsumido_TransicionInvalida(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "10", "kg", "silo-a")
	_, err := env.uc.Adjust(context.Background(), testOrgID, b.ID, dec("-10"), "disposición", testActorID)
	require.NoError(t, err)

	_, err = env.uc.Expire(context.Background(), testOrgID, b.ID, "tarde", testActorID)
	require.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento multi-tenant
// ──────────────────────────────────────────────────────────────────────────────

// Un lote de otra organización se trata como inexistente: ErrNotFound, sin
// revelar que el id existe.
func TestGetBatch_DeOtraOrganizacion_NoEncontrado(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "100", "kg", "silo-a")

	_, err := env.uc.GetBatch(context.Background(), "org-ajena", b.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_LoteDeOtraOrganizacion_NoEncontradoSinMutacion(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "100", "kg", "silo-a")

	_, err := env.uc.Adjust(context.Background(), "org-ajena", b.ID, dec("-10"), "merma", testActorID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	after := env.stored(t, b.ID)
	assert.True(t, after.Quantity.Equal(dec("100")), "otro tenant no debe poder mutar el lote")
	assert.Empty(t, env.movements.events)
}

func TestMerge_LotesDeOtraOrganizacion_NoEncontrado(t *testing.T) {
	env := newTestEnv()
	src := env.seedBatch(t, "40", "kg", "silo-a")
	dst := env.seedBatch(t, "60", "kg", "silo-a")

	_, err := env.uc.Merge(context.Background(), "org-ajena", src.ID, dst.ID, "consolidación", testActorID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.True(t, env.stored(t, src.ID).Quantity.Equal(dec("40")))
	assert.True(t, env.stored(t, dst.ID).Quantity.Equal(dec("60")))
	assert.Empty(t, env.movements.events)
}

func TestMovements_LoteDeOtraOrganizacion_NoEncontrado(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "100", "kg", "silo-a")

	_, err := env.uc.Movements(context.Background(), "org-ajena", b.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
