package inventory

import (
	"testing"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReplay_ConservaCantidades(t *testing.T) {
	movs := []*entity.StockMovement{
		{Type: entity.MovementTypeReceipt, SKU: "A", Quantity: decimal.NewFromInt(100), ToLocation: "LOC001"},
		{Type: entity.MovementTypeReceipt, SKU: "A", Quantity: decimal.NewFromInt(50), ToLocation: "LOC002"},
		{Type: entity.MovementTypeTransfer, SKU: "A", Quantity: decimal.NewFromInt(30), FromLocation: "LOC001", ToLocation: "LOC002"},
		{Type: entity.MovementTypeConsumption, SKU: "A", Quantity: decimal.NewFromInt(-20), FromLocation: "LOC002"},
		{Type: entity.MovementTypeAdjustment, SKU: "A", Quantity: decimal.NewFromInt(-5), ToLocation: "LOC001"},
		{Type: entity.MovementTypeReceipt, SKU: "B", Quantity: decimal.NewFromInt(7), ToLocation: "LOC001"},
	}

	got := Replay(movs)
	assert.True(t, got[LocationSKU{"LOC001", "A"}].Equal(decimal.NewFromInt(65)))
	assert.True(t, got[LocationSKU{"LOC002", "A"}].Equal(decimal.NewFromInt(60)))
	assert.True(t, got[LocationSKU{"LOC001", "B"}].Equal(decimal.NewFromInt(7)))

	net := NetBySKU(movs)
	assert.True(t, net["A"].Equal(decimal.NewFromInt(125)))
	assert.True(t, net["B"].Equal(decimal.NewFromInt(7)))
}

func TestEffects_TrasladoNeteaCero(t *testing.T) {
	m := &entity.StockMovement{Type: entity.MovementTypeTransfer, SKU: "A", Quantity: decimal.NewFromInt(9), FromLocation: "X", ToLocation: "Y"}
	effects := Effects(m)
	assert.Len(t, effects, 2)
	assert.True(t, effects[0].Delta.Add(effects[1].Delta).IsZero())
}
