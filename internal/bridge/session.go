package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nanitex-official/chatbot/internal/transcript"
	"github.com/nanitex-official/chatbot/internal/types"
)

// GenericErrorText is recorded when a failure carries no usable message.
const GenericErrorText = "Something went wrong. Please try again."

var (
	// ErrEmptyInput is returned by Begin when the input is blank.
	ErrEmptyInput = errors.New("input is empty")
	// ErrBusy is returned by Begin while a submission is in flight.
	ErrBusy = errors.New("a message is already being sent")
	// ErrNotSending is returned by Finish when nothing is in flight.
	ErrNotSending = errors.New("no message is being sent")
)

// Phase is the submission state of a Session.
type Phase int

const (
	Idle Phase = iota
	Sending
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a snapshot of the session state machine.
// Reply is set only in Succeeded, Err only in Failed.
type State struct {
	Phase Phase
	Reply string
	Err   string
}

// Session owns the UI state of one chat: the pending input, the transcript
// and the current submission state. It is safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	transcript transcript.Store
	input      string
	state      State
}

// NewSession creates an idle Session recording entries into store.
func NewSession(store transcript.Store) *Session {
	return &Session{transcript: store}
}

// SetInput replaces the pending input text.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// Input returns the pending input text.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns the entries recorded so far, oldest first.
func (s *Session) Transcript() []types.Entry {
	return s.transcript.List()
}

// Begin starts a submission of text. A blank text is a no-op reported as
// ErrEmptyInput; a second submission while one is in flight is ErrBusy.
// Otherwise the raw text is recorded as a user entry, the input and any
// previous error are cleared, and the session enters Sending.
func (s *Session) Begin(text string) (types.Entry, error) {
	if _, ok := types.NormalizeMessage(text); !ok {
		return types.Entry{}, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase == Sending {
		return types.Entry{}, ErrBusy
	}

	entry := types.NewEntry(types.AuthorUser, text)
	if err := s.transcript.Append(entry); err != nil {
		return types.Entry{}, fmt.Errorf("recording user entry: %w", err)
	}

	s.input = ""
	s.state = State{Phase: Sending}
	return entry, nil
}

// Finish completes the in-flight submission. On success the reply is
// recorded as a bot entry; on failure the error text replaces the previous
// error and no bot entry is written.
func (s *Session) Finish(reply string, sendErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != Sending {
		return ErrNotSending
	}

	if sendErr != nil {
		s.state = State{Phase: Failed, Err: ErrorText(sendErr)}
		return nil
	}

	if err := s.transcript.Append(types.NewEntry(types.AuthorBot, reply)); err != nil {
		s.state = State{Phase: Failed, Err: ErrorText(err)}
		return fmt.Errorf("recording bot entry: %w", err)
	}
	s.state = State{Phase: Succeeded, Reply: reply}
	return nil
}

// Submit runs Begin, sends the text and runs Finish. Delivery failures are
// recorded in the session state and are not returned.
func (s *Session) Submit(ctx context.Context, sender Sender, text string) error {
	if _, err := s.Begin(text); err != nil {
		return err
	}
	reply, err := sender.Send(ctx, text)
	return s.Finish(reply, err)
}

// ErrorText returns a message suitable for display.
func ErrorText(err error) string {
	if err == nil || err.Error() == "" {
		return GenericErrorText
	}
	return err.Error()
}
