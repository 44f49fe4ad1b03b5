// Package console is the line-mode front end: it renders screens as plain
// scrolling text and reads one line of input per prompt.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/withley/courier/internal/engine"
)

const defaultWidth = 76

type Options struct {
	// TextSpeed is the delay per typed character. Zero prints instantly.
	TextSpeed time.Duration
	NoColor   bool
	// Clear wipes the terminal between screens.
	Clear bool
	Width int
}

type Console struct {
	in  io.Reader
	out io.Writer

	styles styles
	opts   Options

	once    sync.Once
	lines   chan string
	readErr error
}

func New(in io.Reader, out io.Writer, opts Options) *Console {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	re := lipgloss.NewRenderer(out)
	if opts.NoColor {
		re.SetColorProfile(termenv.Ascii)
	}
	return &Console{
		in:     in,
		out:    out,
		styles: newStyles(re),
		opts:   opts,
	}
}

// Render writes one line of text in the given tone.
func (c *Console) Render(text string, tone engine.Tone) {
	fmt.Fprintln(c.out, c.styles.tone(tone).Render(text))
}

// Prompt shows label and blocks for one line of input. It returns io.EOF
// when input is exhausted and ctx.Err() when ctx is cancelled first.
func (c *Console) Prompt(ctx context.Context, label string) (string, error) {
	c.once.Do(c.startReader)
	fmt.Fprint(c.out, c.styles.prompt.Render(label))
	select {
	case line, ok := <-c.lines:
		if !ok {
			if c.readErr != nil {
				return "", c.readErr
			}
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Console) startReader() {
	c.lines = make(chan string)
	go func() {
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			c.lines <- sc.Text()
		}
		c.readErr = sc.Err()
		close(c.lines)
	}()
}

// Show renders a whole screen.
func (c *Console) Show(s engine.Screen) {
	if c.opts.Clear {
		termenv.NewOutput(c.out).ClearScreen()
	}
	if s.Heading != "" {
		c.Render(s.Heading, engine.ToneHeading)
		fmt.Fprintln(c.out)
	}
	for _, b := range s.Blocks {
		c.block(b)
		fmt.Fprintln(c.out)
	}
	for _, o := range s.Options {
		c.Render(fmt.Sprintf("[%s] %s", o.Key, o.Label), engine.ToneHighlight)
		if o.Detail != "" {
			c.Render("    "+o.Detail, engine.ToneNarrative)
		}
	}
	if len(s.Options) > 0 {
		fmt.Fprintln(c.out)
	}
	if s.Notice != "" {
		c.Render(s.Notice, engine.ToneAlert)
	}
}

func (c *Console) block(b engine.Block) {
	switch b.Kind {
	case engine.BlockBox:
		fmt.Fprintln(c.out, c.styles.box(b.Tone, b.Title, b.Lines, c.opts.Width))
	case engine.BlockArt:
		for _, l := range b.Lines {
			fmt.Fprintln(c.out, c.styles.tone(b.Tone).Render(l))
		}
	case engine.BlockStatus:
		fmt.Fprintln(c.out, c.styles.level(b.Status.Level).Render(b.Status.String()))
		fmt.Fprintln(c.out, c.styles.tone(engine.ToneFlavor).Render(b.Status.Note))
	default:
		st := c.styles.tone(b.Tone).Width(c.opts.Width)
		for _, l := range b.Lines {
			if b.Slow {
				c.typeOut(st.Render(l))
				continue
			}
			fmt.Fprintln(c.out, st.Render(l))
		}
	}
}

// typeOut prints text one rune at a time, pausing on visible characters.
func (c *Console) typeOut(text string) {
	if c.opts.TextSpeed <= 0 {
		fmt.Fprintln(c.out, text)
		return
	}
	for _, r := range text {
		fmt.Fprint(c.out, string(r))
		if r != ' ' && r != '\n' {
			time.Sleep(c.opts.TextSpeed)
		}
	}
	fmt.Fprintln(c.out)
}

// Run drives ctrl until it finishes. Running out of input or cancelling
// ctx ends the session gracefully with a farewell line and a nil error.
func Run(ctx context.Context, ctrl *engine.Controller, c *Console) error {
	redraw := true
	for {
		scr := ctrl.Screen()
		if redraw {
			c.Show(scr)
		} else {
			c.Render(scr.Notice, engine.ToneAlert)
		}
		if ctrl.Done() {
			return nil
		}

		in, err := c.Prompt(ctx, scr.Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				fmt.Fprintln(c.out)
				c.Render(ctrl.Farewell(), engine.ToneHeading)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		ctrl.Submit(in)
		redraw = ctrl.Screen().Notice == ""
	}
}

// Transcript flattens a screen to unstyled text, for logs and tests.
func Transcript(s engine.Screen) string {
	var b strings.Builder
	if s.Heading != "" {
		b.WriteString(s.Heading + "\n")
	}
	for _, blk := range s.Blocks {
		if blk.Kind == engine.BlockStatus {
			b.WriteString(blk.Status.String() + "\n" + blk.Status.Note + "\n")
			continue
		}
		if blk.Title != "" {
			b.WriteString(blk.Title + "\n")
		}
		for _, l := range blk.Lines {
			b.WriteString(l + "\n")
		}
	}
	for _, o := range s.Options {
		fmt.Fprintf(&b, "[%s] %s\n", o.Key, o.Label)
	}
	return b.String()
}
