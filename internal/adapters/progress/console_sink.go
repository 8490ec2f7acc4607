package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/everdragons2/deployer/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ConsoleSink writes status lines to out and, when given a terminal, animates
// a spinner on a separate writer while long operations run
type ConsoleSink struct {
	out     io.Writer
	color   bool
	spinner *spinner.Spinner
	title   cases.Caser
}

// NewConsoleSink creates a sink printing plain lines to out
func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{
		out:   out,
		title: cases.Title(language.English),
	}
}

// WithSpinner enables a spinner written to w, usually the terminal's stderr
func (s *ConsoleSink) WithSpinner(w io.Writer) *ConsoleSink {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	sp.HideCursor = false
	s.spinner = sp
	return s
}

// WithColor enables colored status lines
func (s *ConsoleSink) WithColor(enabled bool) *ConsoleSink {
	s.color = enabled
	return s
}

// OnProgress starts the spinner for spinner events and stops it otherwise
func (s *ConsoleSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if s.spinner == nil {
		return
	}
	if event.Spinner {
		s.spinner.Suffix = fmt.Sprintf(" %s: %s", s.title.String(event.Stage), event.Message)
		if !s.spinner.Active() {
			s.spinner.Start()
		}
		return
	}
	if s.spinner.Active() {
		s.spinner.Stop()
	}
}

// Info prints an info message
func (s *ConsoleSink) Info(message string) {
	s.println(message, color.FgCyan)
}

// Error prints an error message
func (s *ConsoleSink) Error(message string) {
	s.println(message, color.FgRed)
}

func (s *ConsoleSink) println(message string, attr color.Attribute) {
	wasActive := s.spinner != nil && s.spinner.Active()
	if wasActive {
		s.spinner.Stop()
	}

	if s.color {
		c := color.New(attr)
		c.EnableColor()
		c.Fprintln(s.out, message)
	} else {
		fmt.Fprintln(s.out, message)
	}

	if wasActive {
		s.spinner.Start()
	}
}

// Ensure ConsoleSink implements ProgressSink
var _ usecase.ProgressSink = (*ConsoleSink)(nil)
