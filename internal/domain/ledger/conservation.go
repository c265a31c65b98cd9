package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agrovida/farm-ledger/internal/domain/entity"
)

// SumQuantities suma las cantidades de un conjunto de lotes.
func SumQuantities(batches ...*entity.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		total = total.Add(b.Quantity)
	}
	return total
}

// CheckConservation verifica la ley de conservación: las operaciones que
// mueven cantidad (transfer, merge, split) no crean ni destruyen cantidad,
// solo la reubican. Se invoca antes del commit; una violación aquí es un bug
// del motor, no un error del caller.
func CheckConservation(before, after decimal.Decimal) error {
	if !before.Equal(after) {
		return fmt.Errorf("ley de conservación violada: antes=%s después=%s", before, after)
	}
	return nil
}

// CheckNonNegative verifica que ningún lote quede con cantidad negativa.
func CheckNonNegative(batches ...*entity.Batch) error {
	for _, b := range batches {
		if b.Quantity.IsNegative() {
			return fmt.Errorf("cantidad negativa en lote %s: %s", b.ID, b.Quantity)
		}
	}
	return nil
}
