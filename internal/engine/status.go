package engine

import (
	"fmt"
	"strings"

	"github.com/withley/courier/internal/catalog"
	"github.com/withley/courier/internal/models"
)

const statusBarCells = 20

type Level int

const (
	LevelStable Level = iota
	LevelSpicy
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelStable:
		return "stable"
	case LevelSpicy:
		return "spicy"
	default:
		return "critical"
	}
}

// RippleStatus is the display form of the ripple index.
type RippleStatus struct {
	Value  int
	Max    int
	Filled int
	Level  Level
	Note   string
}

// Status builds the ripple status for the given index.
func Status(ripple int, notes catalog.RippleNotes) RippleStatus {
	st := RippleStatus{
		Value:  ripple,
		Max:    models.MaxRipple,
		Filled: models.Clamp(statusBarCells*ripple/models.MaxRipple, 0, statusBarCells),
	}
	switch {
	case ripple < models.ParadoxThreshold:
		st.Level, st.Note = LevelStable, notes.Stable
	case 4*ripple < 3*models.MaxRipple:
		st.Level, st.Note = LevelSpicy, notes.Spicy
	default:
		st.Level, st.Note = LevelCritical, notes.Critical
	}
	return st
}

// Bar renders the gauge, e.g. "[######--------------]".
func (s RippleStatus) Bar() string {
	return "[" + strings.Repeat("#", s.Filled) + strings.Repeat("-", statusBarCells-s.Filled) + "]"
}

func (s RippleStatus) String() string {
	return fmt.Sprintf("Ripple Index: %s %d/%d", s.Bar(), s.Value, s.Max)
}
