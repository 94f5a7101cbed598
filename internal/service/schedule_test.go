package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miklean/internal/domain"
	"miklean/internal/service"
)

func TestScheduleDates(t *testing.T) {
	tests := []struct {
		freq domain.Frequency
		last domain.Date
	}{
		{domain.FrequencyWeekly, domain.NewDate(2024, time.February, 19)},
		{domain.FrequencyBiweekly, domain.NewDate(2024, time.April, 8)},
		{domain.FrequencyMonthly, domain.NewDate(2024, time.July, 29)},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			dates, err := service.ScheduleDates(jan(1), tt.freq, 8)
			require.NoError(t, err)
			require.Len(t, dates, 8)
			assert.Equal(t, jan(1), dates[0])
			assert.Equal(t, tt.last, dates[7])
			for i := 1; i < len(dates); i++ {
				assert.True(t, dates[i].After(dates[i-1]))
			}
		})
	}

	_, err := service.ScheduleDates(jan(1), domain.FrequencyOneTime, 8)
	assert.ErrorIs(t, err, domain.ErrNotRecurring)
}

func TestPlanReplenishment(t *testing.T) {
	weekly := domain.FrequencyWeekly
	visit := func(d domain.Date, price string) domain.Visit {
		v := domain.Visit{ScheduledDate: d, Frequency: &weekly, IsRecurring: true}
		if price != "" {
			v.Price = decimal.NewNullDecimal(decimal.RequireFromString(price))
		}
		return v
	}

	t.Run("carries the latest visit price", func(t *testing.T) {
		future := []domain.Visit{visit(jan(8), "100"), visit(jan(22), "110"), visit(jan(15), "105")}
		plan, err := service.PlanReplenishment(future, jan(2), weekly, decimal.NullDecimal{}, 5)
		require.NoError(t, err)
		assert.Equal(t, []domain.Date{jan(29), domain.NewDate(2024, time.February, 5)}, plan.Dates)
		assert.True(t, plan.Price.Decimal.Equal(decimal.NewFromInt(110)))
	})

	t.Run("explicit price wins", func(t *testing.T) {
		future := []domain.Visit{visit(jan(8), "100")}
		plan, err := service.PlanReplenishment(future, jan(2), weekly, decimal.NewNullDecimal(decimal.NewFromInt(130)), 2)
		require.NoError(t, err)
		assert.Len(t, plan.Dates, 1)
		assert.True(t, plan.Price.Decimal.Equal(decimal.NewFromInt(130)))
	})

	t.Run("no price anywhere stays unset", func(t *testing.T) {
		plan, err := service.PlanReplenishment([]domain.Visit{visit(jan(8), "")}, jan(2), weekly, decimal.NullDecimal{}, 3)
		require.NoError(t, err)
		assert.Len(t, plan.Dates, 2)
		assert.False(t, plan.Price.Valid)
	})

	t.Run("full window", func(t *testing.T) {
		future := []domain.Visit{visit(jan(8), "1"), visit(jan(15), "1")}
		plan, err := service.PlanReplenishment(future, jan(2), weekly, decimal.NullDecimal{}, 2)
		require.NoError(t, err)
		assert.Empty(t, plan.Dates)
	})

	t.Run("one time", func(t *testing.T) {
		_, err := service.PlanReplenishment(nil, jan(2), domain.FrequencyOneTime, decimal.NullDecimal{}, 8)
		assert.ErrorIs(t, err, domain.ErrNotRecurring)
	})
}
