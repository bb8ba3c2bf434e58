// Package picker models the two-column minutes/seconds duration selector.
package picker

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ensigniasec/countdown/internal/validate"
)

// Selectable ranges for each column.
const (
	MaxMinutes = 60
	MaxSeconds = 59

	// Initial selection shown when no preference is configured.
	DefaultMinutes = 1
	DefaultSeconds = 30
)

// ErrInvalidSelection is returned when a selection falls outside the picker ranges.
var ErrInvalidSelection = errors.New("invalid selection")

// Selection is one minutes/seconds pick.
type Selection struct {
	Minutes int `yaml:"minutes" json:"minutes" validate:"min=0,max=60"`
	Seconds int `yaml:"seconds" json:"seconds" validate:"min=0,max=59"`
}

// Default returns the initial 1 min 30 sec selection.
func Default() Selection {
	return Selection{Minutes: DefaultMinutes, Seconds: DefaultSeconds}
}

// Validate checks that both columns are within range.
func (s Selection) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSelection, validate.Describe(err))
	}
	return nil
}

// Duration combines the columns as minutes*60 + seconds.
func (s Selection) Duration() time.Duration {
	return time.Duration(s.Minutes*60+s.Seconds) * time.Second
}

func (s Selection) String() string {
	return fmt.Sprintf("%d min %d sec", s.Minutes, s.Seconds)
}

// FromDuration splits d into whole minutes and seconds, clamped to the selectable range.
func FromDuration(d time.Duration) Selection {
	if d <= 0 {
		return Selection{}
	}
	total := int(d / time.Second)
	s := Selection{Minutes: total / 60, Seconds: total % 60}
	if s.Minutes > MaxMinutes {
		return Selection{Minutes: MaxMinutes, Seconds: MaxSeconds}
	}
	return s
}

// Column identifies a picker column.
type Column int

const (
	MinutesColumn Column = iota
	SecondsColumn
)

// Unit is the label rendered next to the column.
func (c Column) Unit() string {
	if c == SecondsColumn {
		return "sec"
	}
	return "min"
}

func (c Column) max() int {
	if c == SecondsColumn {
		return MaxSeconds
	}
	return MaxMinutes
}

// Rows returns the labels for a column: "0".."60" for minutes and "0".."59" for seconds.
func Rows(c Column) []string {
	rows := make([]string, 0, c.max()+1)
	for i := 0; i <= c.max(); i++ {
		rows = append(rows, strconv.Itoa(i))
	}
	return rows
}

// Picker is the interactive selector state. The zero value focuses minutes at 0:00.
type Picker struct {
	Selection Selection
	Focus     Column
}

// New returns a picker positioned on sel. Out-of-range values are clamped.
func New(sel Selection) Picker {
	sel.Minutes = clamp(sel.Minutes, MaxMinutes)
	sel.Seconds = clamp(sel.Seconds, MaxSeconds)
	return Picker{Selection: sel, Focus: MinutesColumn}
}

// Up moves the focused column to the next row, wrapping at the end.
func (p Picker) Up() Picker {
	return p.shift(1)
}

// Down moves the focused column to the previous row, wrapping at zero.
func (p Picker) Down() Picker {
	return p.shift(-1)
}

// Left focuses the minutes column.
func (p Picker) Left() Picker {
	p.Focus = MinutesColumn
	return p
}

// Right focuses the seconds column.
func (p Picker) Right() Picker {
	p.Focus = SecondsColumn
	return p
}

// Value returns the selected row of c.
func (p Picker) Value(c Column) int {
	if c == SecondsColumn {
		return p.Selection.Seconds
	}
	return p.Selection.Minutes
}

func (p Picker) shift(delta int) Picker {
	rows := p.Focus.max() + 1
	next := (p.Value(p.Focus) + delta + rows) % rows
	if p.Focus == SecondsColumn {
		p.Selection.Seconds = next
	} else {
		p.Selection.Minutes = next
	}
	return p
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
