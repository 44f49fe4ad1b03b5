package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/withley/courier/internal/catalog"
	"github.com/withley/courier/internal/models"
)

// scriptedRand returns its ints in order (modulo n) and never shuffles.
type scriptedRand struct {
	ints []int
	next int
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.next%len(r.ints)]
	r.next++
	return v % n
}

func (r *scriptedRand) Shuffle(int, func(i, j int)) {}

func newTestEngine(t *testing.T, ints ...int) (*Engine, *models.Session) {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	eng := NewEngine(cat, &scriptedRand{ints: ints})
	return eng, models.NewSession(cat.CivilizationIDs(), cat.Tags)
}

func mustParcel(t *testing.T, e *Engine, id string) catalog.Parcel {
	t.Helper()
	p, ok := e.Catalog().Parcel(id)
	if !ok {
		t.Fatalf("no parcel %q", id)
	}
	return p
}

func mustCiv(t *testing.T, e *Engine, id string) catalog.Civilization {
	t.Helper()
	c, ok := e.Catalog().Civilization(id)
	if !ok {
		t.Fatalf("no civilization %q", id)
	}
	return c
}

func TestApplyDelivery(t *testing.T) {
	tests := []struct {
		name        string
		parcel      string
		civ         string
		startRipple int
		draws       []int // jitter index, side effect index
		wantHarmony int
		wantChaos   int
		wantRipple  int
		wantNote    string
	}{
		{
			name:        "preferred and cozy",
			parcel:      "tea",
			civ:         "sky_nomads",
			draws:       []int{0, 1},
			wantHarmony: 2,
			wantChaos:   0,
			wantRipple:  0,
			wantNote:    "Grateful for Tea",
		},
		{
			name:        "hated with chaos",
			parcel:      "fireworks",
			civ:         "atlantis_2",
			draws:       []int{3, 0},
			wantHarmony: -1,
			wantChaos:   3,
			wantRipple:  6,
			wantNote:    "Suspicious about Fireworks",
		},
		{
			name:        "preferred and hated together",
			parcel:      "board_games",
			civ:         "bureaucracy_dimension",
			draws:       []int{1, 0},
			wantHarmony: 0,
			wantChaos:   2,
			wantRipple:  3,
		},
		{
			// preferred takes the running delta to 0, calm floors it there
			// instead of letting it reach -1.
			name:        "calm floor applies to running delta",
			parcel:      "meditation",
			civ:         "sky_nomads",
			startRipple: 5,
			draws:       []int{2, 0},
			wantHarmony: 3,
			wantChaos:   0,
			wantRipple:  5,
			wantNote:    "Grateful for Meditation",
		},
		{
			name:        "neutral",
			parcel:      "sneezing",
			civ:         "sky_nomads",
			draws:       []int{1, 0},
			wantHarmony: 0,
			wantChaos:   1,
			wantRipple:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, s := newTestEngine(t, tt.draws...)
			s.RippleIndex = tt.startRipple
			p := mustParcel(t, eng, tt.parcel)
			c := mustCiv(t, eng, tt.civ)

			out := eng.ApplyDelivery(s, p, c)

			cs := s.Civ(tt.civ)
			if cs.Harmony != tt.wantHarmony || out.HarmonyDelta != tt.wantHarmony {
				t.Errorf("Expected harmony %d, got state %d delta %d", tt.wantHarmony, cs.Harmony, out.HarmonyDelta)
			}
			if cs.Chaos != tt.wantChaos || out.ChaosDelta != tt.wantChaos {
				t.Errorf("Expected chaos %d, got state %d delta %d", tt.wantChaos, cs.Chaos, out.ChaosDelta)
			}
			if s.RippleIndex != tt.wantRipple {
				t.Errorf("Expected ripple %d, got %d", tt.wantRipple, s.RippleIndex)
			}
			if out.Note != tt.wantNote {
				t.Errorf("Expected note %q, got %q", tt.wantNote, out.Note)
			}
			if tt.wantNote == "" && len(cs.Notes) != 0 {
				t.Errorf("Expected no notes, got %v", cs.Notes)
			}
			if len(out.Lines) != 2 {
				t.Fatalf("Expected 2 narrative lines, got %v", out.Lines)
			}
			if out.Lines[0] != "The parcel "+out.SideEffect {
				t.Errorf("Unexpected side effect line %q", out.Lines[0])
			}
		})
	}
}

func TestApplyDeliveryNarrative(t *testing.T) {
	eng, s := newTestEngine(t, 0, 1)
	out := eng.ApplyDelivery(s, mustParcel(t, eng, "tea"), mustCiv(t, eng, "sky_nomads"))

	want := []string{
		"The parcel causes three parallel universes to agree on pineapple pizza, briefly.",
		"In Sky Nomads, harmony shifts by +2, chaos by +0.",
	}
	if diff := cmp.Diff(want, out.Lines); diff != "" {
		t.Errorf("narrative mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyDeliveryBookkeeping(t *testing.T) {
	eng, s := newTestEngine(t)
	before := make(map[string]int, len(s.TagInfluence))
	for k, v := range s.TagInfluence {
		before[k] = v
	}

	p := mustParcel(t, eng, "fireworks")
	eng.ApplyDelivery(s, p, mustCiv(t, eng, "dino_senate"))

	if len(s.Deliveries) != 1 {
		t.Fatalf("Expected 1 delivery, got %d", len(s.Deliveries))
	}
	if s.Deliveries[0] != (models.Delivery{ParcelID: "fireworks", CivilizationID: "dino_senate"}) {
		t.Errorf("Unexpected delivery %+v", s.Deliveries[0])
	}
	for tag, n := range s.TagInfluence {
		want := before[tag]
		if p.Tags.Has(tag) {
			want++
		}
		if n != want {
			t.Errorf("Expected tag %s at %d, got %d", tag, want, n)
		}
	}
}

func TestJitterDistribution(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	eng := NewEngine(cat, NewRand(7))
	p, _ := cat.Parcel("sneezing")
	c, _ := cat.Civilization("sky_nomads")

	const draws = 20000
	counts := map[int]int{}
	for range draws {
		s := models.NewSession(cat.CivilizationIDs(), cat.Tags)
		counts[eng.ApplyDelivery(s, p, c).HarmonyDelta]++
	}

	want := map[int]float64{-1: 0.25, 0: 0.5, 1: 0.25}
	for delta, share := range want {
		got := float64(counts[delta]) / draws
		if got < share-0.02 || got > share+0.02 {
			t.Errorf("Expected delta %+d near %.2f, got %.3f", delta, share, got)
		}
	}
	if len(counts) != 3 {
		t.Errorf("Expected only -1, 0, +1, got %v", counts)
	}
}

func TestSelectEnding(t *testing.T) {
	tests := []struct {
		score, ripple int
		want          string
	}{
		{3, 10, catalog.EndingGoldenHarmony},
		{3, 12, catalog.EndingGoldenHarmony},
		{2, 20, catalog.EndingBittersweetMosaic},
		{0, 29, catalog.EndingChaoticCarousel},
		{3, 15, catalog.EndingBittersweetMosaic},
		{3, 30, catalog.EndingChaoticCarousel},
		{2, 0, catalog.EndingBittersweetMosaic},
		{1, 0, catalog.EndingChaoticCarousel},
	}
	for _, tt := range tests {
		if got := SelectEnding(tt.score, tt.ripple); got != tt.want {
			t.Errorf("SelectEnding(%d, %d) = %q, want %q", tt.score, tt.ripple, got, tt.want)
		}
	}
}

func TestCanUnlock(t *testing.T) {
	ids := []string{"a", "b"}
	fill := func(n int) *models.Session {
		s := models.NewSession(ids, nil)
		for range n {
			s.RecordDelivery("tea", "a")
		}
		return s
	}

	if CanUnlock(fill(7)) {
		t.Error("Expected no unlock with 7 deliveries")
	}
	if !CanUnlock(fill(8)) {
		t.Error("Expected unlock with 8 deliveries")
	}

	s := fill(8)
	s.AdjustMood("a", -2, 0)
	if !CanUnlock(s) {
		t.Error("Expected unlock at mean harmony -1")
	}
	s.AdjustMood("b", -1, 0)
	if CanUnlock(s) {
		t.Error("Expected no unlock below mean harmony -1")
	}

	s = fill(8)
	s.RippleIndex = UnlockRippleCeiling
	if !CanUnlock(s) {
		t.Errorf("Expected unlock at ripple %d", UnlockRippleCeiling)
	}
	s.RippleIndex++
	if CanUnlock(s) {
		t.Errorf("Expected no unlock at ripple %d", s.RippleIndex)
	}

	s = fill(8)
	s.Unlock()
	if CanUnlock(s) {
		t.Error("Expected no offer once accepted")
	}
}

func TestParadoxRules(t *testing.T) {
	eng, s := newTestEngine(t, 1)
	s.RippleIndex = 11
	if ParadoxDue(s) {
		t.Error("Expected no paradox at 11")
	}
	s.RippleIndex = 12
	if !ParadoxDue(s) {
		t.Error("Expected paradox at 12")
	}

	sc := eng.TriggerParadox(s)
	if sc.ID != "early_fireworks" || s.ParadoxesTriggered != 1 {
		t.Fatalf("Unexpected scenario %q, triggered %d", sc.ID, s.ParadoxesTriggered)
	}
	ResolveParadox(s, sc.Options[2])
	if s.RippleIndex != 11 || s.ParadoxesResolved != 1 {
		t.Errorf("Expected ripple 11 and 1 resolved, got %d and %d", s.RippleIndex, s.ParadoxesResolved)
	}
	for _, id := range s.CivIDs() {
		if h := s.Civ(id).Harmony; h != 1 {
			t.Errorf("Expected harmony 1 for %s, got %d", id, h)
		}
	}
}

func TestSampleParcels(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	eng := NewEngine(cat, NewRand(3))
	for range 50 {
		offers := eng.SampleParcels()
		if len(offers) != OfferSize {
			t.Fatalf("Expected %d offers, got %d", OfferSize, len(offers))
		}
		seen := map[string]bool{}
		for _, p := range offers {
			if seen[p.ID] {
				t.Fatalf("Duplicate offer %s in %v", p.ID, offers)
			}
			seen[p.ID] = true
		}
	}
	if cat.Parcels[0].ID != "electricity" {
		t.Error("Sampling must not reorder the catalog")
	}
}

func TestStatus(t *testing.T) {
	notes := catalog.RippleNotes{Stable: "s", Spicy: "p", Critical: "c"}
	tests := []struct {
		ripple int
		level  Level
		bar    string
	}{
		{0, LevelStable, "[--------------------]"},
		{11, LevelStable, "[#######-------------]"},
		{12, LevelSpicy, "[########------------]"},
		{22, LevelSpicy, "[##############------]"},
		{23, LevelCritical, "[###############-----]"},
		{30, LevelCritical, "[####################]"},
	}
	for _, tt := range tests {
		st := Status(tt.ripple, notes)
		if st.Level != tt.level || st.Bar() != tt.bar {
			t.Errorf("Status(%d) = %s %s, want %s %s", tt.ripple, st.Level, st.Bar(), tt.level, tt.bar)
		}
	}
	if got := Status(6, notes).String(); got != "Ripple Index: [####----------------] 6/30" {
		t.Errorf("Unexpected status string %q", got)
	}
}
