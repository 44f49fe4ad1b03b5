package engine

import (
	"log/slog"
	"slices"

	"github.com/withley/courier/internal/catalog"
	"github.com/withley/courier/internal/models"
)

const (
	// OfferSize is how many parcels the selection screen shows.
	OfferSize = 5

	MinDeliveriesForUnlock = 8
	MinMeanHarmony         = -1.0
	// UnlockRippleCeiling is 80% of MaxRipple.
	UnlockRippleCeiling = models.MaxRipple * 8 / 10
)

// SampleParcels draws up to OfferSize distinct parcels.
func (e *Engine) SampleParcels() []catalog.Parcel {
	pool := slices.Clone(e.catalog.Parcels)
	e.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:min(OfferSize, len(pool))]
}

// MissionScene draws the flavor line that opens a debrief.
func (e *Engine) MissionScene() string {
	return pick(e.rng, e.catalog.Narrative.MissionScenes)
}

// ApplyAdvice commits a debrief choice to the current civilization.
func ApplyAdvice(s *models.Session, civID string, a catalog.Advice) {
	s.AdjustMood(civID, a.Harmony, a.Chaos)
	s.AdjustRipple(a.Ripple)
}

// ParadoxDue reports whether the ripple index demands a paradox.
func ParadoxDue(s *models.Session) bool {
	return s.RippleIndex >= models.ParadoxThreshold
}

// TriggerParadox counts a paradox and draws the scenario to resolve.
func (e *Engine) TriggerParadox(s *models.Session) catalog.ParadoxScenario {
	s.ParadoxesTriggered++
	sc := pick(e.rng, e.catalog.Narrative.Paradox.Scenarios)
	e.log.Info("paradox triggered",
		slog.String("scenario", sc.ID),
		slog.Int("ripple", s.RippleIndex),
		slog.Int("count", s.ParadoxesTriggered),
	)
	return sc
}

// ResolveParadox applies a patch to every civilization and the ripple index.
func ResolveParadox(s *models.Session, p catalog.ParadoxPatch) {
	s.AdjustAllHarmony(p.HarmonyAll)
	s.AdjustRipple(p.Ripple)
	s.ParadoxesResolved++
}

// CanUnlock reports whether the final puzzle may be offered.
func CanUnlock(s *models.Session) bool {
	if s.UnlockedFinal {
		return false
	}
	return len(s.Deliveries) >= MinDeliveriesForUnlock &&
		s.MeanHarmony() >= MinMeanHarmony &&
		s.RippleIndex <= UnlockRippleCeiling
}

// SelectEnding maps a quiz score and the ripple index to an ending id.
func SelectEnding(score, ripple int) string {
	switch {
	case score >= 3 && ripple <= models.ParadoxThreshold:
		return catalog.EndingGoldenHarmony
	case score >= 2 && ripple < models.MaxRipple:
		return catalog.EndingBittersweetMosaic
	default:
		return catalog.EndingChaoticCarousel
	}
}
