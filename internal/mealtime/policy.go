package mealtime

import (
	"errors"
	"fmt"
	"time"

	"mealtrack-backend/config"
)

// MealType identifies one of the configured meal services.
type MealType string

const (
	MealLunch  MealType = "lunch"
	MealDinner MealType = "dinner"
)

// ErrInvalidMealType is returned for any meal type other than lunch or dinner.
var ErrInvalidMealType = errors.New("invalid meal type")

// Classification is the verdict for a scan relative to a meal window.
type Classification string

const (
	ScanOnTime Classification = "on_time"
	ScanEarly  Classification = "early"
	ScanLate   Classification = "late"
)

// Window is a meal service window expressed as minutes past midnight.
// Windows never cross midnight; callers must not feed timestamps from a
// different logical service day.
type Window struct {
	Start int
	End   int
}

// Policy classifies scan timestamps against the configured service windows.
// It is built once at startup and immutable afterwards.
type Policy struct {
	windows        map[MealType]Window
	earlyThreshold int
	lateThreshold  int
}

// NewPolicy builds a Policy from configuration. Start/end times are "HH:MM".
func NewPolicy(cfg config.MealsConfig) (*Policy, error) {
	windows := make(map[MealType]Window, 2)
	for meal, wc := range map[MealType]config.MealWindowConfig{
		MealLunch:  cfg.Lunch,
		MealDinner: cfg.Dinner,
	} {
		start, err := parseClock(wc.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid %s start_time %q: %w", meal, wc.StartTime, err)
		}
		end, err := parseClock(wc.EndTime)
		if err != nil {
			return nil, fmt.Errorf("invalid %s end_time %q: %w", meal, wc.EndTime, err)
		}
		if end < start {
			return nil, fmt.Errorf("%s window ends before it starts (%s > %s)", meal, wc.StartTime, wc.EndTime)
		}
		windows[meal] = Window{Start: start, End: end}
	}
	return &Policy{
		windows:        windows,
		earlyThreshold: cfg.EarlyThreshold,
		lateThreshold:  cfg.LateThreshold,
	}, nil
}

// Window returns the configured service window for a meal type.
func (p *Policy) Window(meal MealType) (Window, error) {
	w, ok := p.windows[meal]
	if !ok {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidMealType, meal)
	}
	return w, nil
}

// WithinWindow reports whether the scan's time of day falls inside the meal
// window, inclusive on both ends. The date component is discarded.
func (p *Policy) WithinWindow(meal MealType, at time.Time) (bool, error) {
	w, err := p.Window(meal)
	if err != nil {
		return false, err
	}
	m := minutesOf(at)
	return w.Start <= m && m <= w.End, nil
}

// Late reports whether the scan is past the window end plus the late threshold.
func (p *Policy) Late(meal MealType, at time.Time) (bool, error) {
	w, err := p.Window(meal)
	if err != nil {
		return false, err
	}
	return minutesOf(at) > w.End+p.lateThreshold, nil
}

// Early reports whether the scan is before the window start minus the early
// threshold.
func (p *Policy) Early(meal MealType, at time.Time) (bool, error) {
	w, err := p.Window(meal)
	if err != nil {
		return false, err
	}
	return minutesOf(at) < w.Start-p.earlyThreshold, nil
}

// Classify returns the verdict for a scan: early, late, or on_time.
func (p *Policy) Classify(meal MealType, at time.Time) (Classification, error) {
	early, err := p.Early(meal, at)
	if err != nil {
		return "", err
	}
	if early {
		return ScanEarly, nil
	}
	late, err := p.Late(meal, at)
	if err != nil {
		return "", err
	}
	if late {
		return ScanLate, nil
	}
	return ScanOnTime, nil
}

// FormatClock renders minutes past midnight as a 12-hour "03:04 PM" string.
func FormatClock(minutes int) string {
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("03:04 PM")
}

func minutesOf(at time.Time) int {
	return at.Hour()*60 + at.Minute()
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
