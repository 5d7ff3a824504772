package services

import (
	"errors"
	"fmt"

	"scrapyard_backend/internal/models"

	"github.com/shopspring/decimal"
)

// Errors shared across the workflow services.
var (
	ErrValidation         = errors.New("validation error")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidCalculation = errors.New("invalid calculation")
)

var hundred = decimal.NewFromInt(100)

// priceScale is the decimal precision effective unit prices are rounded to.
const priceScale = 6

// UllageResult holds the outcome of a sample-based loss measurement.
type UllageResult struct {
	TotalUllageWeight decimal.Decimal
	UllagePercentage  decimal.Decimal
}

// ComputeUllage sums the measured loss components and expresses them as a
// percentage of the sample weight.
func ComputeUllage(sampleWeight decimal.Decimal, weights []decimal.Decimal) (UllageResult, error) {
	if sampleWeight.LessThanOrEqual(decimal.Zero) {
		return UllageResult{}, fmt.Errorf("%w: sample weight must be positive", ErrValidation)
	}

	total := decimal.Zero
	for _, w := range weights {
		total = total.Add(w)
	}

	return UllageResult{
		TotalUllageWeight: total,
		UllagePercentage:  total.Div(sampleWeight).Mul(hundred),
	}, nil
}

// ComputeNetWeight applies the ullage percentage to a gross weight.
// An ullage percentage above 100 yields a negative net weight; that is the
// inspector's call and is not rejected here.
func ComputeNetWeight(grossWeight, ullagePercentage decimal.Decimal) decimal.Decimal {
	return grossWeight.Mul(decimal.NewFromInt(1).Sub(ullagePercentage.Div(hundred)))
}

// ComputeEffectiveUnitPrice spreads the full cost of a line (raw cost plus
// its logistics share) over the net weight that actually enters stock.
func ComputeEffectiveUnitPrice(grossWeight, unitPrice, logisticsCostShare, netWeight decimal.Decimal) (decimal.Decimal, error) {
	if netWeight.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: net weight is zero, cannot derive an effective unit price", ErrInvalidCalculation)
	}
	totalCost := grossWeight.Mul(unitPrice).Add(logisticsCostShare)
	return totalCost.DivRound(netWeight, priceScale), nil
}

// LotAllocation is one FIFO deduction against a stock lot.
type LotAllocation struct {
	LotID    int64
	Deducted decimal.Decimal
}

// AllocateFIFO greedily deducts the requested quantity from lots in the
// given order (callers pass lots sorted oldest-first). The availability
// check runs before the allocation walk so an insufficient request returns
// with no allocations at all.
func AllocateFIFO(requested decimal.Decimal, lots []models.StockLot) ([]LotAllocation, error) {
	if requested.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: requested quantity must be positive", ErrValidation)
	}

	available := decimal.Zero
	for _, lot := range lots {
		available = available.Add(lot.Quantity)
	}
	if available.LessThan(requested) {
		return nil, fmt.Errorf("%w: requested %s, available %s", ErrInsufficientStock, requested.String(), available.String())
	}

	allocations := []LotAllocation{}
	remaining := requested
	for _, lot := range lots {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		deduct := decimal.Min(remaining, lot.Quantity)
		if deduct.LessThanOrEqual(decimal.Zero) {
			continue
		}
		allocations = append(allocations, LotAllocation{LotID: lot.ID, Deducted: deduct})
		remaining = remaining.Sub(deduct)
	}
	return allocations, nil
}
