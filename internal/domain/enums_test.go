package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"miklean/internal/domain"
)

func TestFrequency_IntervalDays(t *testing.T) {
	days, ok := domain.FrequencyWeekly.IntervalDays()
	assert.True(t, ok)
	assert.Equal(t, 7, days)

	days, ok = domain.FrequencyBiweekly.IntervalDays()
	assert.True(t, ok)
	assert.Equal(t, 14, days)

	days, ok = domain.FrequencyMonthly.IntervalDays()
	assert.True(t, ok)
	assert.Equal(t, 30, days)

	_, ok = domain.FrequencyOneTime.IntervalDays()
	assert.False(t, ok)

	_, ok = domain.Frequency("daily").IntervalDays()
	assert.False(t, ok)
}

func TestEstimateStatus_Editable(t *testing.T) {
	assert.True(t, domain.EstimateStatusDraft.Editable())
	assert.True(t, domain.EstimateStatusSent.Editable())
	assert.False(t, domain.EstimateStatusAccepted.Editable())
}

func TestValidationError(t *testing.T) {
	verr := domain.NewValidationError()
	assert.NoError(t, verr.OrNil())

	verr.Add("name is required")
	verr.Add("phone is required")
	err := verr.OrNil()
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "name is required; phone is required", err.Error())
}

func TestInvoiceLine_Amount(t *testing.T) {
	line := domain.InvoiceLine{}
	_, ok := line.Amount()
	assert.False(t, ok)
}
