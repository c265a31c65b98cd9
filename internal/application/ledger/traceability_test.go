package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/farm-ledger/internal/application/ledger"
	"github.com/agrovida/farm-ledger/internal/domain"
	"github.com/agrovida/farm-ledger/internal/domain/entity"
)

// Escenario completo: create -> split -> merge. La cadena del lote hijo debe
// contener exactamente los eventos que lo referencian, en orden cronológico.
func TestTraceability_CadenaCompletaDeUnHijo(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	src, err := env.uc.CreateBatch(ctx, ledger.CreateBatchInput{
		OrganizationID: testOrgID,
		ActorID:        testActorID,
		CommodityID:    testComID,
		Quantity:       decimal.RequireFromString("100"),
		Unit:           "kg",
		Location:       "silo-a",
	})
	require.NoError(t, err)

	res, err := env.uc.Split(ctx, testOrgID, src.ID, []ledger.SplitEntry{
		{Quantity: decimal.RequireFromString("40"), DestinationLocation: "X"},
		{Quantity: decimal.RequireFromString("30"), DestinationLocation: "Y"},
	}, testActorID)
	require.NoError(t, err)
	child := res.Created[0]

	other := env.seedBatch(t, "25", "kg", "X")
	_, err = env.uc.Merge(ctx, testOrgID, other.ID, child.ID, "consolidación", testActorID)
	require.NoError(t, err)

	report, err := env.uc.Traceability(ctx, testOrgID, child.ID)
	require.NoError(t, err)

	// El hijo participa del SPLIT que lo creó y del MERGE posterior; no del CREATE del padre.
	require.Len(t, report.Chain, 2)
	assert.Equal(t, entity.MovementKindSPLIT, report.Chain[0].Kind)
	assert.Equal(t, entity.MovementKindMERGE, report.Chain[1].Kind)
	assert.False(t, report.Chain[1].Timestamp.Before(report.Chain[0].Timestamp),
		"la cadena debe estar en orden cronológico ascendente")

	assert.Equal(t, 2, report.Summary.TotalEvents)
	assert.Equal(t, 1, report.Summary.SplitCount)
	assert.Equal(t, 1, report.Summary.MergeCount)
	assert.Equal(t, 0, report.Summary.QualityTestCount)
	require.NotNil(t, report.Summary.FirstEventAt)
	require.NotNil(t, report.Summary.LastEventAt)
	assert.Equal(t, report.Chain[0].Timestamp, *report.Summary.FirstEventAt)
	assert.Equal(t, report.Chain[1].Timestamp, *report.Summary.LastEventAt)
}

// Un lote sin historial registrado devuelve cadena vacía, no error.
func TestTraceability_SinHistorial_CadenaVacia(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "10", "kg", "silo-a")

	report, err := env.uc.Traceability(context.Background(), testOrgID, b.ID)
	require.NoError(t, err)
	assert.NotNil(t, report.Chain)
	assert.Empty(t, report.Chain)
	assert.Equal(t, 0, report.Summary.TotalEvents)
	assert.Nil(t, report.Summary.FirstEventAt)
	assert.Nil(t, report.Summary.LastEventAt)
}

// Lote inexistente: la trazabilidad exige que el lote exista.
func TestTraceability_LoteInexistente(t *testing.T) {
	env := newTestEnv()
	_, err := env.uc.Traceability(context.Background(), testOrgID, "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTraceability_CuentaPruebasDeCalidad(t *testing.T) {
	env := newTestEnv()
	b := env.seedBatch(t, "10", "kg", "silo-a")

	_, err := env.uc.RecordQualityTest(context.Background(), testOrgID, b.ID, "A", "", testActorID)
	require.NoError(t, err)
	_, err = env.uc.RecordQualityTest(context.Background(), testOrgID, b.ID, "AA", "reproceso", testActorID)
	require.NoError(t, err)

	report, err := env.uc.Traceability(context.Background(), testOrgID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.QualityTestCount)
	assert.Equal(t, 2, report.Summary.TotalEvents)
}
