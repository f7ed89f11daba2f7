// Package session runs a submitted word through lookup, rendering and
// history-aware highlighting for one user session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rbhz/dictionary-lookup/app/highlight"
	"github.com/rbhz/dictionary-lookup/app/history"
	"github.com/rbhz/dictionary-lookup/app/lookup"
	"github.com/rbhz/dictionary-lookup/app/metrics"
	"github.com/rs/zerolog/log"
)

// ErrSuperseded is returned when a newer submission started before lookup finished
var ErrSuperseded = errors.New("superseded by a newer submission")

const outcomeSuperseded = "superseded"

// Looker resolves search term to an entry
type Looker interface {
	Lookup(ctx context.Context, term string) (lookup.Entry, error)
}

// Renderer turns entries and error messages into markup
type Renderer interface {
	Entry(entry lookup.Entry) (string, error)
	Error(message string) (string, error)
}

// Pipeline holds dependencies shared by sessions of one front end
type Pipeline struct {
	Looker      Looker
	Renderer    Renderer
	Highlighter *highlight.Highlighter
	Metrics     *metrics.Metrics
}

// Display is the visible state of a session. Definitions and Error are
// never both set.
type Display struct {
	Definitions string        `json:"definitions"`
	Error       string        `json:"error"`
	Entry       *lookup.Entry `json:"-"`
}

// Empty reports whether nothing is displayed
func (d Display) Empty() bool {
	return d.Definitions == "" && d.Error == ""
}

// Session serializes submissions of a single user
type Session struct {
	history  history.History
	pipeline Pipeline

	mx       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	display  Display
	lastSeen time.Time
}

// ID returns session identifier
func (s *Session) ID() string {
	return s.history.Session()
}

// Submit looks input up and replaces session display with the highlighted result.
// Only the latest submission is applied, earlier ones in flight are cancelled
// and return ErrSuperseded.
func (s *Session) Submit(ctx context.Context, input string) (Display, error) {
	s.mx.Lock()
	s.seq++
	seq := s.seq
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.lastSeen = time.Now()
	s.mx.Unlock()
	defer cancel()

	started := time.Now()
	entry, err := s.pipeline.Looker.Lookup(ctx, input)

	s.mx.Lock()
	defer s.mx.Unlock()
	if seq != s.seq {
		s.pipeline.Metrics.Observe(outcomeSuperseded, time.Since(started))
		return Display{}, ErrSuperseded
	}
	s.cancel = nil
	s.pipeline.Metrics.Observe(outcome(err), time.Since(started))

	s.display = Display{}
	var display Display
	if err == nil {
		display, err = s.showEntry(entry)
	} else {
		display, err = s.showFailure(lookup.AsFailure(err))
	}
	if err != nil {
		return Display{}, err
	}
	s.display = display
	return display, nil
}

// ShowError replaces session display with highlighted error message
func (s *Session) ShowError(message string) (Display, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.lastSeen = time.Now()
	s.display = Display{}
	display, err := s.showError(message)
	if err != nil {
		return Display{}, err
	}
	s.display = display
	return display, nil
}

// Display returns the result of the last applied submission
func (s *Session) Display() Display {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.display
}

// History returns words looked up in session, oldest first
func (s *Session) History() ([]string, error) {
	return s.history.All()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mx.Lock()
	defer s.mx.Unlock()
	if s.cancel != nil {
		return 0
	}
	return now.Sub(s.lastSeen)
}

// showEntry must be called with s.mx held
func (s *Session) showEntry(entry lookup.Entry) (Display, error) {
	markup, err := s.pipeline.Renderer.Entry(entry)
	if err != nil {
		return Display{}, err
	}
	if err := s.history.Append(entry.Word); err != nil {
		return Display{}, fmt.Errorf("append history: %w", err)
	}
	words, err := s.history.All()
	if err != nil {
		return Display{}, fmt.Errorf("read history: %w", err)
	}
	return Display{
		Definitions: s.pipeline.Highlighter.Highlight(markup, words),
		Entry:       &entry,
	}, nil
}

func (s *Session) showFailure(f *lookup.Failure) (Display, error) {
	message := f.Message()
	if message == "" {
		log.Debug().Err(f).Str("session", s.ID()).Msg("lookup failed without displayable error")
		return Display{}, nil
	}
	return s.showError(message)
}

func (s *Session) showError(message string) (Display, error) {
	words, err := s.history.All()
	if err != nil {
		return Display{}, fmt.Errorf("read history: %w", err)
	}
	markup, err := s.pipeline.Renderer.Error(message)
	if err != nil {
		return Display{}, err
	}
	return Display{Error: s.pipeline.Highlighter.Highlight(markup, words)}, nil
}

func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	return lookup.AsFailure(err).Kind.String()
}
