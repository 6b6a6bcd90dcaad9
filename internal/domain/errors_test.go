package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/escrow-invoice-api/internal/domain"
)

func TestUserMessage(t *testing.T) {
	assert.Equal(t,
		"The invoice total doesn't match the line items. Please verify your calculations.",
		domain.UserMessage(domain.CodeAmountMismatch))
	assert.Equal(t,
		"Something went wrong. Please try again or contact support.",
		domain.UserMessage("SOMETHING_ELSE"))
}

func TestCodeOf(t *testing.T) {
	mismatch := &domain.ValidationError{
		Code:   domain.CodeAmountMismatch,
		Fields: []domain.FieldViolation{{Field: "totalAmount", Message: "x"}},
	}
	wrapped := fmt.Errorf("crear deal: %w", mismatch)

	assert.Equal(t, domain.CodeAmountMismatch, domain.CodeOf(wrapped))
	assert.True(t, errors.Is(wrapped, domain.ErrAmountMismatch))
	assert.False(t, errors.Is(wrapped, domain.ErrInvalidInput))

	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(domain.ErrNotFound))
	assert.Equal(t, domain.CodeTooManyRequests, domain.CodeOf(fmt.Errorf("x: %w", domain.ErrTooManyRequests)))
	assert.Equal(t, domain.CodeInternal, domain.CodeOf(errors.New("boom")))
	assert.Equal(t, domain.ErrorCode(""), domain.CodeOf(nil))
}

func TestValidationError_Error(t *testing.T) {
	err := &domain.ValidationError{
		Code:   domain.CodeInvalidInput,
		Fields: []domain.FieldViolation{{Field: "date", Message: "Invoice date required"}},
	}
	assert.Equal(t, "INVALID_INPUT: date: Invoice date required", err.Error())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
