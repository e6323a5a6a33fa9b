package mealtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealtrack-backend/config"
)

func testPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := NewPolicy(config.MealsConfig{
		Lunch:          config.MealWindowConfig{StartTime: "12:00", EndTime: "15:00"},
		Dinner:         config.MealWindowConfig{StartTime: "19:00", EndTime: "22:30"},
		EarlyThreshold: 30,
		LateThreshold:  30,
	})
	require.NoError(t, err)
	return p
}

// at builds a timestamp on an arbitrary date; only the time of day matters.
func at(hour, min int) time.Time {
	return time.Date(2026, 8, 28, hour, min, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	p := testPolicy(t)

	testCases := []struct {
		name     string
		meal     MealType
		at       time.Time
		expected Classification
	}{
		{"lunch window start", MealLunch, at(12, 0), ScanOnTime},
		{"lunch mid window", MealLunch, at(13, 30), ScanOnTime},
		{"lunch window end is inclusive", MealLunch, at(15, 0), ScanOnTime},
		{"lunch within late threshold", MealLunch, at(15, 30), ScanOnTime},
		{"lunch one minute past late threshold", MealLunch, at(15, 31), ScanLate},
		{"lunch within early threshold", MealLunch, at(11, 30), ScanOnTime},
		{"lunch one minute before early threshold", MealLunch, at(11, 29), ScanEarly},
		{"dinner on time", MealDinner, at(20, 15), ScanOnTime},
		{"dinner late", MealDinner, at(23, 1), ScanLate},
		{"dinner early morning scan is early", MealDinner, at(9, 0), ScanEarly},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.Classify(tc.meal, tc.at)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestInvalidMealType(t *testing.T) {
	p := testPolicy(t)

	_, err := p.Classify("breakfast", at(9, 0))
	assert.ErrorIs(t, err, ErrInvalidMealType)

	_, err = p.Window("supper")
	assert.ErrorIs(t, err, ErrInvalidMealType)

	_, err = p.WithinWindow("", at(12, 0))
	assert.ErrorIs(t, err, ErrInvalidMealType)
}

func TestWithinWindow(t *testing.T) {
	p := testPolicy(t)

	within, err := p.WithinWindow(MealLunch, at(15, 0))
	require.NoError(t, err)
	assert.True(t, within, "window end should be inclusive")

	within, err = p.WithinWindow(MealLunch, at(15, 1))
	require.NoError(t, err)
	assert.False(t, within)

	within, err = p.WithinWindow(MealLunch, at(11, 59))
	require.NoError(t, err)
	assert.False(t, within)
}

func TestNewPolicyRejectsBadConfig(t *testing.T) {
	_, err := NewPolicy(config.MealsConfig{
		Lunch:  config.MealWindowConfig{StartTime: "noon", EndTime: "15:00"},
		Dinner: config.MealWindowConfig{StartTime: "19:00", EndTime: "22:30"},
	})
	assert.Error(t, err)

	_, err = NewPolicy(config.MealsConfig{
		Lunch:  config.MealWindowConfig{StartTime: "15:00", EndTime: "12:00"},
		Dinner: config.MealWindowConfig{StartTime: "19:00", EndTime: "22:30"},
	})
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "12:00 PM", FormatClock(12*60))
	assert.Equal(t, "10:30 PM", FormatClock(22*60+30))
	assert.Equal(t, "12:00 AM", FormatClock(0))
}
