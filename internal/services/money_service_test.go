package services

import (
	"errors"
	"testing"
)

func TestCreateMoneyTransaction_RejectsUnknownType(t *testing.T) {
	s := NewMoneyService(nil, nil, nil)
	_, err := s.CreateMoneyTransaction(1, CreateMoneyTransactionRequest{
		PartnerID: 1,
		Type:      "transfer",
		Amount:    dec("100"),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
}

func TestCreateMoneyTransaction_RejectsNonPositiveAmount(t *testing.T) {
	s := NewMoneyService(nil, nil, nil)
	for _, amount := range []string{"0", "-100"} {
		_, err := s.CreateMoneyTransaction(1, CreateMoneyTransactionRequest{
			PartnerID: 1,
			Type:      "payment",
			Amount:    dec(amount),
		})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error for amount %s, got %v", amount, err)
		}
	}
}
