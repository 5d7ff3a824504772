package services

import (
	"errors"
	"testing"

	"scrapyard_backend/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeUllage_SumsComponentsIntoPercentage(t *testing.T) {
	result, err := ComputeUllage(dec("100"), []decimal.Decimal{dec("5"), dec("10")})
	if err != nil {
		t.Fatalf("ComputeUllage error: %v", err)
	}
	if !result.TotalUllageWeight.Equal(dec("15")) {
		t.Fatalf("expected total ullage weight 15, got %s", result.TotalUllageWeight)
	}
	if !result.UllagePercentage.Equal(dec("15")) {
		t.Fatalf("expected ullage percentage 15, got %s", result.UllagePercentage)
	}
}

func TestComputeUllage_RejectsNonPositiveSampleWeight(t *testing.T) {
	for _, sample := range []decimal.Decimal{decimal.Zero, dec("-1")} {
		_, err := ComputeUllage(sample, []decimal.Decimal{dec("1")})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("ComputeUllage(%s) expected validation error, got %v", sample, err)
		}
	}
}

func TestComputeNetWeight_AppliesPercentage(t *testing.T) {
	net := ComputeNetWeight(dec("1000"), dec("15"))
	if !net.Equal(dec("850")) {
		t.Fatalf("expected net weight 850, got %s", net)
	}
}

func TestComputeNetWeight_OverHundredPercentGoesNegative(t *testing.T) {
	// An inspector can record losses exceeding the sample; the net weight
	// is negative and the caller decides whether to act on it.
	net := ComputeNetWeight(dec("100"), dec("120"))
	if !net.Equal(dec("-20")) {
		t.Fatalf("expected net weight -20, got %s", net)
	}
}

func TestComputeEffectiveUnitPrice_SpreadsCostOverNetWeight(t *testing.T) {
	// 1000 kg at 10 plus a 200 logistics share, shrunk to 850 kg net:
	// (10000 + 200) / 850 = 12.
	price, err := ComputeEffectiveUnitPrice(dec("1000"), dec("10"), dec("200"), dec("850"))
	if err != nil {
		t.Fatalf("ComputeEffectiveUnitPrice error: %v", err)
	}
	if !price.Equal(dec("12")) {
		t.Fatalf("expected effective unit price 12, got %s", price)
	}
}

func TestComputeEffectiveUnitPrice_ZeroNetWeightFails(t *testing.T) {
	_, err := ComputeEffectiveUnitPrice(dec("1000"), dec("10"), dec("0"), decimal.Zero)
	if !errors.Is(err, ErrInvalidCalculation) {
		t.Fatalf("expected invalid calculation error, got %v", err)
	}
}

func TestComputeEffectiveUnitPrice_NegativeNetWeightStillPrices(t *testing.T) {
	price, err := ComputeEffectiveUnitPrice(dec("100"), dec("10"), dec("0"), dec("-20"))
	if err != nil {
		t.Fatalf("ComputeEffectiveUnitPrice error: %v", err)
	}
	if !price.IsNegative() {
		t.Fatalf("expected a negative effective unit price, got %s", price)
	}
}

func TestAllocateFIFO_SpansLotsOldestFirst(t *testing.T) {
	lots := []models.StockLot{
		{ID: 1, Quantity: dec("30")},
		{ID: 2, Quantity: dec("50")},
	}

	allocations, err := AllocateFIFO(dec("40"), lots)
	if err != nil {
		t.Fatalf("AllocateFIFO error: %v", err)
	}
	if len(allocations) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocations))
	}
	if allocations[0].LotID != 1 || !allocations[0].Deducted.Equal(dec("30")) {
		t.Fatalf("expected lot 1 drained for 30, got lot %d for %s", allocations[0].LotID, allocations[0].Deducted)
	}
	if allocations[1].LotID != 2 || !allocations[1].Deducted.Equal(dec("10")) {
		t.Fatalf("expected lot 2 partially deducted for 10, got lot %d for %s", allocations[1].LotID, allocations[1].Deducted)
	}
}

func TestAllocateFIFO_ExactFitDrainsSingleLot(t *testing.T) {
	lots := []models.StockLot{
		{ID: 7, Quantity: dec("25")},
		{ID: 8, Quantity: dec("100")},
	}

	allocations, err := AllocateFIFO(dec("25"), lots)
	if err != nil {
		t.Fatalf("AllocateFIFO error: %v", err)
	}
	if len(allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(allocations))
	}
	if allocations[0].LotID != 7 || !allocations[0].Deducted.Equal(dec("25")) {
		t.Fatalf("expected lot 7 drained for 25, got lot %d for %s", allocations[0].LotID, allocations[0].Deducted)
	}
}

func TestAllocateFIFO_InsufficientStockLeavesNoAllocations(t *testing.T) {
	lots := []models.StockLot{
		{ID: 1, Quantity: dec("30")},
		{ID: 2, Quantity: dec("50")},
	}

	allocations, err := AllocateFIFO(dec("90"), lots)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if allocations != nil {
		t.Fatalf("expected no allocations on shortfall, got %v", allocations)
	}
}

func TestAllocateFIFO_RejectsNonPositiveRequest(t *testing.T) {
	_, err := AllocateFIFO(decimal.Zero, []models.StockLot{{ID: 1, Quantity: dec("10")}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
