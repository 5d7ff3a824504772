package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func newValidationOnlySellingService() SellingService {
	return NewSellingService(nil, nil, nil, nil, nil, nil)
}

func TestCreateSelling_RejectsEmptyItems(t *testing.T) {
	s := newValidationOnlySellingService()
	_, err := s.CreateSelling(1, CreateSellingRequest{PartnerID: 1})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty items, got %v", err)
	}
}

func TestCreateSelling_RejectsNonPositiveQuantity(t *testing.T) {
	s := newValidationOnlySellingService()
	_, err := s.CreateSelling(1, CreateSellingRequest{
		PartnerID: 1,
		Items: []CreateSellingItemRequest{
			{MaterialID: 3, Quantity: decimal.Zero, UnitPrice: dec("20")},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestCreateSelling_RejectsNegativeUnitPrice(t *testing.T) {
	s := newValidationOnlySellingService()
	_, err := s.CreateSelling(1, CreateSellingRequest{
		PartnerID: 1,
		Items: []CreateSellingItemRequest{
			{MaterialID: 3, Quantity: dec("10"), UnitPrice: dec("-20")},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for negative unit price, got %v", err)
	}
}
