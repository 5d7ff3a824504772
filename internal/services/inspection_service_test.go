package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func newValidationOnlyInspectionService() InspectionService {
	return NewInspectionService(nil, nil, nil)
}

func TestCreateInspection_RejectsEmptyItems(t *testing.T) {
	s := newValidationOnlyInspectionService()
	_, err := s.CreateInspection(1, CreateInspectionRequest{
		ReceivingItemID: 1,
		SampleWeight:    dec("100"),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty items, got %v", err)
	}
}

func TestCreateInspection_RejectsNegativeLossWeight(t *testing.T) {
	s := newValidationOnlyInspectionService()
	_, err := s.CreateInspection(1, CreateInspectionRequest{
		ReceivingItemID: 1,
		SampleWeight:    dec("100"),
		Items: []CreateInspectionItemRequest{
			{UllageTypeID: 2, Weight: dec("-5")},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for negative loss weight, got %v", err)
	}
}

func TestCreateInspection_RejectsNonPositiveSampleWeight(t *testing.T) {
	s := newValidationOnlyInspectionService()
	_, err := s.CreateInspection(1, CreateInspectionRequest{
		ReceivingItemID: 1,
		SampleWeight:    decimal.Zero,
		Items: []CreateInspectionItemRequest{
			{UllageTypeID: 2, Weight: dec("5")},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for zero sample weight, got %v", err)
	}
}
