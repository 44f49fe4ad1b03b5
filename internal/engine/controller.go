package engine

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/withley/courier/internal/catalog"
	"github.com/withley/courier/internal/logging"
	"github.com/withley/courier/internal/models"
)

// Controller drives one playthrough. It owns the session and advances one
// phase per accepted input; rejected input leaves the phase unchanged and
// sets Screen().Notice.
type Controller struct {
	eng     *Engine
	session *models.Session
	log     *slog.Logger

	phase  Phase
	screen Screen

	offers   []catalog.Parcel
	parcel   catalog.Parcel
	civ      catalog.Civilization
	scenario catalog.ParadoxScenario
	step     int
	score    int
	ending   string
}

// NewController starts a fresh session on the title screen.
func NewController(eng *Engine) *Controller {
	cat := eng.Catalog()
	c := &Controller{
		eng:     eng,
		session: models.NewSession(cat.CivilizationIDs(), cat.Tags),
		log:     logging.New("turn"),
	}
	c.enterTitle()
	return c
}

func (c *Controller) Engine() *Engine           { return c.eng }
func (c *Controller) Session() *models.Session { return c.session }
func (c *Controller) Phase() Phase              { return c.phase }
func (c *Controller) Screen() Screen            { return c.screen }
func (c *Controller) Done() bool                { return c.phase.Terminal() }

// Ending is the chosen ending id, empty until the puzzle completes.
func (c *Controller) Ending() string { return c.ending }

// Farewell is the line shown when a session is interrupted.
func (c *Controller) Farewell() string { return c.narrative().Farewell }

// Snapshot copies the session together with the puzzle result.
func (c *Controller) Snapshot() models.Snapshot {
	snap := c.session.Snapshot()
	snap.QuizScore = c.score
	snap.Ending = c.ending
	return snap
}

// Submit feeds one line of player input to the current phase.
func (c *Controller) Submit(input string) {
	in := strings.ToLower(strings.TrimSpace(input))
	switch c.phase {
	case PhaseTitle:
		c.beginCycle()
	case PhaseSelectParcel:
		c.submitParcel(in)
	case PhaseSelectCivilization:
		c.submitCivilization(in)
	case PhaseAdvising:
		c.submitAdvice(in)
	case PhaseParadox:
		c.submitParadox(in)
	case PhaseUnlockOffer:
		c.submitUnlock(in)
	case PhaseContinue:
		c.submitContinue(in)
	case PhasePuzzle:
		c.submitPuzzle(in)
	case PhaseEnding:
		c.enterCredits()
	}
}

func (c *Controller) narrative() *catalog.Narrative {
	return &c.eng.Catalog().Narrative
}

func (c *Controller) status() Block {
	return status(Status(c.session.RippleIndex, c.narrative().RippleNotes))
}

func (c *Controller) show(phase Phase, s Screen) {
	if phase != c.phase {
		c.log.Debug("phase", slog.String("from", c.phase.String()), slog.String("to", phase.String()))
	}
	s.Phase = phase
	c.phase = phase
	c.screen = s
}

func (c *Controller) reject(notice string) {
	c.screen.Notice = notice
}

// choice parses a 1-based menu selection of n entries into an index.
func choice(in string, n int) (int, bool) {
	if in == "" {
		return 0, false
	}
	for _, r := range in {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	num, err := strconv.Atoi(in)
	if err != nil || num < 1 || num > n {
		return 0, false
	}
	return num - 1, true
}

func numbered(labels ...string) []Option {
	opts := make([]Option, len(labels))
	for i, l := range labels {
		opts[i] = Option{Key: strconv.Itoa(i + 1), Label: l}
	}
	return opts
}

func (c *Controller) enterTitle() {
	n := c.narrative()
	c.show(PhaseTitle, Screen{
		Blocks: []Block{
			text(ToneHeading, n.Title...),
			slow(ToneFlavor, n.Subtitle),
			slow(ToneHighlight, n.Presenter),
			slow(ToneNarrative, n.Intro...),
		},
		Prompt: "Press Enter to begin...",
	})
}

func (c *Controller) beginCycle() {
	c.session.Turn++
	c.offers = c.eng.SampleParcels()
	c.showParcels()
}

func (c *Controller) showParcels() {
	opts := make([]Option, 0, len(c.offers)+1)
	for i, p := range c.offers {
		opts = append(opts, Option{
			Key:    strconv.Itoa(i + 1),
			Label:  p.Name,
			Detail: "Tags: " + strings.Join(p.Tags.Sorted(), ", "),
		})
	}
	opts = append(opts, Option{Key: "R", Label: "Refresh selection"})
	c.show(PhaseSelectParcel, Screen{
		Heading: "=== IDEA PARCEL SELECTION ===",
		Options: opts,
		Prompt:  "Select a parcel (number) or R: ",
	})
}

func (c *Controller) submitParcel(in string) {
	if in == "r" {
		c.offers = c.eng.SampleParcels()
		c.showParcels()
		return
	}
	i, ok := choice(in, len(c.offers))
	if !ok {
		c.reject(c.narrative().Rejections.Parcel)
		return
	}
	c.parcel = c.offers[i]

	cat := c.eng.Catalog()
	opts := make([]Option, len(cat.Civilizations))
	for i, civ := range cat.Civilizations {
		cs := c.session.Civ(civ.ID)
		opts[i] = Option{
			Key:    strconv.Itoa(i + 1),
			Label:  civ.Name,
			Detail: fmt.Sprintf("(harmony %+d, chaos %+d) - %s", cs.Harmony, cs.Chaos, cs.Mood()),
		}
	}
	c.show(PhaseSelectCivilization, Screen{
		Heading: "=== DESTINATION TIMELINE ===",
		Blocks:  []Block{text(ToneHighlight, "Parcel in hand: "+c.parcel.Name)},
		Options: opts,
		Prompt:  "Select a destination (number): ",
	})
}

func (c *Controller) submitCivilization(in string) {
	cat := c.eng.Catalog()
	i, ok := choice(in, len(cat.Civilizations))
	if !ok {
		c.reject(c.narrative().Rejections.Destination)
		return
	}
	c.civ = cat.Civilizations[i]
	n := c.narrative()

	out := c.eng.ApplyDelivery(c.session, c.parcel, c.civ)
	scene := c.eng.MissionScene()

	labels := make([]string, len(n.Advice))
	for i, a := range n.Advice {
		labels[i] = a.Label
	}
	c.show(PhaseAdvising, Screen{
		Heading: fmt.Sprintf("Delivering '%s' to %s...", c.parcel.Name, c.civ.Name),
		Blocks: []Block{
			text(ToneMystic, deliveryPhases(n.DeliveryPhases)...),
			{Kind: BlockArt, Tone: ToneCalm, Lines: []string{c.civ.Art}},
			text(ToneHighlight, fmt.Sprintf("%s: \"%s\"", c.civ.Name, c.civ.Motto)),
			slow(ToneNarrative, fmt.Sprintf("You hand over the parcel of %s.", c.parcel.Name)),
			slow(ToneNarrative, out.Lines...),
			c.status(),
			box(ToneCalm, fmt.Sprintf("Mission Debrief: %s -> %s", c.parcel.Name, c.civ.Name),
				scene, "", n.MissionQuestion),
		},
		Options: numbered(labels...),
		Prompt:  "How do you advise them? ",
	})
}

// deliveryPhases pairs each progress phase with a growing bar.
func deliveryPhases(phases []string) []string {
	bars := []string{"[=         ]", "[===       ]", "[=====     ]", "[========  ]", "[==========]"}
	lines := make([]string, len(phases))
	for i, p := range phases {
		lines[i] = fmt.Sprintf(" %s %s", bars[min(i, len(bars)-1)], p)
	}
	return lines
}

func (c *Controller) submitAdvice(in string) {
	n := c.narrative()
	i, ok := choice(in, len(n.Advice))
	if !ok {
		c.reject(n.Rejections.Advice)
		return
	}
	a := n.Advice[i]
	ApplyAdvice(c.session, c.civ.ID, a)
	pre := []Block{slow(ToneNarrative, a.Flavor), c.status()}

	if !ParadoxDue(c.session) {
		c.afterCycle(pre)
		return
	}
	c.scenario = c.eng.TriggerParadox(c.session)
	labels := make([]string, len(c.scenario.Options))
	for i, o := range c.scenario.Options {
		labels[i] = o.Label
	}
	c.show(PhaseParadox, Screen{
		Blocks: append(pre,
			box(ToneAlert, n.Paradox.Title, n.Paradox.Lines...),
			slow(ToneNarrative, c.scenario.Text),
		),
		Options: numbered(labels...),
		Prompt:  "Choose a paradox patch: ",
	})
}

func (c *Controller) submitParadox(in string) {
	i, ok := choice(in, len(c.scenario.Options))
	if !ok {
		c.reject(c.narrative().Rejections.Paradox)
		return
	}
	patch := c.scenario.Options[i]
	ResolveParadox(c.session, patch)
	c.afterCycle([]Block{slow(ToneNarrative, patch.Flavor), c.status()})
}

// afterCycle runs the unlock check and otherwise asks to continue.
func (c *Controller) afterCycle(pre []Block) {
	if !CanUnlock(c.session) {
		c.showContinue(pre)
		return
	}
	c.log.Info("final puzzle offered",
		slog.Int("deliveries", len(c.session.Deliveries)),
		slog.Float64("mean_harmony", c.session.MeanHarmony()),
		slog.Int("ripple", c.session.RippleIndex),
	)
	n := c.narrative()
	c.show(PhaseUnlockOffer, Screen{
		Blocks: append(pre,
			box(ToneSuccess, n.Unlock.Title, n.Unlock.Lines...),
			c.status(),
		),
		Prompt: "Attempt the 'Harmonize the Multiverse' protocol now? (y/n): ",
	})
}

func (c *Controller) showContinue(pre []Block) {
	c.show(PhaseContinue, Screen{
		Heading: "=== COURIER STATUS ===",
		Blocks:  append(pre, c.status()),
		Options: []Option{
			{Key: "Enter", Label: "Continue deliveries"},
			{Key: "Q", Label: "Retire for now"},
		},
		Prompt: "Choice: ",
	})
}

func (c *Controller) submitUnlock(in string) {
	if !strings.HasPrefix(in, "y") {
		c.log.Info("final puzzle declined")
		c.showContinue(nil)
		return
	}
	c.session.Unlock()
	c.step, c.score = 0, 0
	n := c.narrative()
	c.showPuzzleStep([]Block{box(ToneMystic, n.Puzzle.Title, n.Puzzle.Lines...)})
}

func (c *Controller) submitContinue(in string) {
	if in != "q" {
		c.beginCycle()
		return
	}
	c.session.Retire()
	c.log.Info("courier retired", slog.Int("turn", c.session.Turn), slog.Int("ripple", c.session.RippleIndex))
	c.show(PhaseRetired, Screen{
		Blocks: []Block{slow(ToneNarrative, c.narrative().Retire...)},
	})
}

func (c *Controller) showPuzzleStep(pre []Block) {
	step := c.narrative().Puzzle.Steps[c.step]
	labels := make([]string, len(step.Options))
	for i, o := range step.Options {
		labels[i] = o.Label
	}
	c.show(PhasePuzzle, Screen{
		Blocks:  append(pre, text(ToneHeading, step.Prompt)),
		Options: numbered(labels...),
		Prompt:  "Choose: ",
	})
}

func (c *Controller) submitPuzzle(in string) {
	n := c.narrative()
	step := n.Puzzle.Steps[c.step]
	i, ok := choice(in, len(step.Options))
	if !ok {
		c.reject(n.Rejections.Puzzle)
		return
	}
	opt := step.Options[i]
	c.score += opt.Score
	c.step++
	pre := []Block{slow(ToneNarrative, opt.Flavor)}
	if c.step < len(n.Puzzle.Steps) {
		c.showPuzzleStep(pre)
		return
	}

	c.ending = SelectEnding(c.score, c.session.RippleIndex)
	c.log.Info("ending selected",
		slog.String("ending", c.ending),
		slog.Int("score", c.score),
		slog.Int("ripple", c.session.RippleIndex),
	)
	ending, _ := n.Ending(c.ending)
	c.show(PhaseEnding, Screen{
		Blocks: append(pre,
			slow(ToneNarrative, n.Puzzle.Analyzing),
			box(endingTone(c.ending), "Ending: "+ending.Title, ending.Body...),
			slow(ToneNarrative, ending.Closing...),
			c.status(),
		),
		Prompt: "Press Enter to continue...",
	})
}

func endingTone(id string) Tone {
	switch id {
	case catalog.EndingGoldenHarmony:
		return ToneSuccess
	case catalog.EndingBittersweetMosaic:
		return ToneCaution
	default:
		return ToneMystic
	}
}

func (c *Controller) enterCredits() {
	n := c.narrative()
	c.show(PhaseCredits, Screen{
		Blocks: []Block{
			box(ToneHeading, n.Credits.Title, n.Credits.Lines...),
			slow(ToneNarrative, n.Credits.Closing...),
		},
	})
}
