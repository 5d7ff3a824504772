package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// Validation runs before any database work, so a service with nil
// dependencies is enough to exercise the rejection paths.
func newValidationOnlyReceivingService() ReceivingService {
	return NewReceivingService(nil, nil, nil, nil, nil)
}

func TestCreateReceiving_RejectsEmptyItems(t *testing.T) {
	s := newValidationOnlyReceivingService()
	_, err := s.CreateReceiving(1, CreateReceivingRequest{PartnerID: 1})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty items, got %v", err)
	}
}

func TestCreateReceiving_RejectsNonPositiveGrossWeight(t *testing.T) {
	s := newValidationOnlyReceivingService()
	_, err := s.CreateReceiving(1, CreateReceivingRequest{
		PartnerID: 1,
		Items: []CreateReceivingItemRequest{
			{MaterialID: 3, GrossWeight: decimal.Zero, UnitPrice: dec("10")},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for zero gross weight, got %v", err)
	}
}

func TestCreateReceiving_RejectsNegativeUnitPrice(t *testing.T) {
	s := newValidationOnlyReceivingService()
	_, err := s.CreateReceiving(1, CreateReceivingRequest{
		PartnerID: 1,
		Items: []CreateReceivingItemRequest{
			{MaterialID: 3, GrossWeight: dec("100"), UnitPrice: dec("-1")},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for negative unit price, got %v", err)
	}
}

func TestCreateReceiving_RejectsNegativeLogisticsCost(t *testing.T) {
	s := newValidationOnlyReceivingService()
	_, err := s.CreateReceiving(1, CreateReceivingRequest{
		PartnerID:     1,
		LogisticsCost: dec("-50"),
		Items: []CreateReceivingItemRequest{
			{MaterialID: 3, GrossWeight: dec("100"), UnitPrice: dec("10")},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for negative logistics cost, got %v", err)
	}
}

func TestCreateReceiving_RejectsMalformedDocDate(t *testing.T) {
	s := newValidationOnlyReceivingService()
	badDate := "29/08/2026"
	_, err := s.CreateReceiving(1, CreateReceivingRequest{
		PartnerID: 1,
		DocDate:   &badDate,
		Items: []CreateReceivingItemRequest{
			{MaterialID: 3, GrossWeight: dec("100"), UnitPrice: dec("10")},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for malformed doc date, got %v", err)
	}
}
