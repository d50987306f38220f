package services

import (
	"testing"
	"time"

	"sofra.link/models"

	"github.com/stretchr/testify/assert"
)

func TestDayWindow(t *testing.T) {
	ref := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	start, end := DayWindow(ref)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), end)

	// Gece yarısı kendi gününün başlangıcıdır.
	start, end = DayWindow(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), end)
}

func TestWeekWindow(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
	}{
		{
			name:      "çarşamba, aynı haftanın pazartesisine döner",
			ref:       time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), // Çarşamba
			wantStart: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "pazartesi kendi haftasının başıdır",
			ref:       time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC),
			wantStart: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "pazar hâlâ önceki pazartesinin haftasındadır",
			ref:       time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC),
			wantStart: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekWindow(tt.ref)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantStart.AddDate(0, 0, 7), end)
		})
	}
}

func TestMealHasCapacity(t *testing.T) {
	unlimited := &models.Meal{MaxAttendees: nil}
	assert.True(t, MealHasCapacity(unlimited, 0))
	assert.True(t, MealHasCapacity(unlimited, 100000))

	limited := &models.Meal{MaxAttendees: intPtr(2)}
	assert.True(t, MealHasCapacity(limited, 0))
	assert.True(t, MealHasCapacity(limited, 1))
	assert.False(t, MealHasCapacity(limited, 2))
	assert.False(t, MealHasCapacity(limited, 3))
}
