package engine

import (
	"fmt"
	"log/slog"

	"github.com/withley/courier/internal/catalog"
	"github.com/withley/courier/internal/models"
)

// jitter is the harmony wobble added to every delivery; 0 has double weight.
var jitter = []int{-1, 0, 0, 1}

// Outcome describes what one delivery did.
type Outcome struct {
	ParcelID       string
	CivilizationID string
	HarmonyDelta   int
	ChaosDelta     int
	// RippleDelta is the delta before the ripple index is clamped.
	RippleDelta int
	SideEffect  string
	Note        string
	Lines       []string
}

// ApplyDelivery resolves a parcel landing in a civilization and commits the
// result to the session. Rules apply in a fixed order; the calm/cozy step
// floors the running ripple delta at zero, not the final one.
func (e *Engine) ApplyDelivery(s *models.Session, p catalog.Parcel, c catalog.Civilization) Outcome {
	harmony, chaos, ripple := 0, 0, p.BaseRipple

	if p.Tags.Intersects(c.Preferred) {
		harmony += 2
		ripple--
	}
	if p.Tags.Intersects(c.Hated) {
		harmony -= 2
		chaos += 2
		ripple += 2
	}
	if p.Tags.Has("chaos") {
		chaos++
	}
	if p.Tags.Has("calm") || p.Tags.Has("cozy") {
		harmony++
		ripple = max(0, ripple-1)
	}
	harmony += pick(e.rng, jitter)

	s.AdjustMood(c.ID, harmony, chaos)
	s.AdjustRipple(ripple)
	for _, tag := range p.Tags {
		s.BumpTagInfluence(tag)
	}
	s.RecordDelivery(p.ID, c.ID)

	side := pick(e.rng, e.catalog.Narrative.SideEffects)
	out := Outcome{
		ParcelID:       p.ID,
		CivilizationID: c.ID,
		HarmonyDelta:   harmony,
		ChaosDelta:     chaos,
		RippleDelta:    ripple,
		SideEffect:     side,
		Lines: []string{
			"The parcel " + side,
			fmt.Sprintf("In %s, harmony shifts by %+d, chaos by %+d.", c.Name, harmony, chaos),
		},
	}

	switch {
	case harmony > 1:
		out.Note = "Grateful for " + p.Name
	case harmony < 0:
		out.Note = "Suspicious about " + p.Name
	}
	if out.Note != "" {
		s.AddNote(c.ID, out.Note)
	}

	e.log.Debug("delivery applied",
		slog.Int("turn", s.Turn),
		slog.String("parcel", p.ID),
		slog.String("civilization", c.ID),
		slog.Int("harmony", harmony),
		slog.Int("chaos", chaos),
		slog.Int("ripple_delta", ripple),
		slog.Int("ripple", s.RippleIndex),
	)
	return out
}
