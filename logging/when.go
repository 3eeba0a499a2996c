// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"strings"
	"time"
)

// When is the unit of a rotation period.
type When string

// Rotation units. Weekly units start at midnight of the named weekday,
// with W0 being Monday.
const (
	WhenSecond    When = "S"
	WhenMinute    When = "M"
	WhenHour      When = "H"
	WhenDay       When = "D"
	WhenMidnight  When = "MIDNIGHT"
	WhenMonday    When = "W0"
	WhenTuesday   When = "W1"
	WhenWednesday When = "W2"
	WhenThursday  When = "W3"
	WhenFriday    When = "W4"
	WhenSaturday  When = "W5"
	WhenSunday    When = "W6"
)

// ParseWhen parses a rotation unit, ignoring case.
func ParseWhen(s string) (When, error) {
	w := When(strings.ToUpper(strings.TrimSpace(s)))
	if err := w.validate(); err != nil {
		return "", err
	}
	return w, nil
}

func (w When) validate() error {
	switch w {
	case WhenSecond, WhenMinute, WhenHour, WhenDay, WhenMidnight:
		return nil
	}
	if _, ok := w.weekday(); ok {
		return nil
	}
	return fmt.Errorf("%w: invalid rotation unit %q", ErrConfiguration, string(w))
}

// weekday returns the time.Weekday of a weekly unit.
func (w When) weekday() (time.Weekday, bool) {
	if len(w) != 2 || w[0] != 'W' || w[1] < '0' || w[1] > '6' {
		return 0, false
	}
	// W0 is Monday, time.Weekday counts from Sunday.
	return time.Weekday((int(w[1]-'0') + 1) % 7), true
}

// next returns the first period boundary after t. Boundaries are aligned to
// the start of the unit containing t in loc, then advanced by interval units.
func (w When) next(t time.Time, interval int, loc *time.Location) time.Time {
	t = t.In(loc)
	y, mo, d := t.Date()
	switch w {
	case WhenSecond:
		return t.Truncate(time.Second).Add(time.Duration(interval) * time.Second)
	case WhenMinute:
		start := time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, loc)
		return start.Add(time.Duration(interval) * time.Minute)
	case WhenHour:
		start := time.Date(y, mo, d, t.Hour(), 0, 0, 0, loc)
		return start.Add(time.Duration(interval) * time.Hour)
	case WhenDay, WhenMidnight:
		return time.Date(y, mo, d+interval, 0, 0, 0, 0, loc)
	}
	target, _ := w.weekday()
	ahead := (int(target) - int(t.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	ahead += 7 * (interval - 1)
	return time.Date(y, mo, d+ahead, 0, 0, 0, 0, loc)
}
