package voice

import (
	"context"
	"sync"

	"smartchef/internal/logger"
)

// Speaker is the text-to-speech capability consumed by the session
// controller. Speak is fire-and-forget: implementations must cancel any
// in-flight utterance before starting a new one (at most one concurrent
// utterance), and failures must never block a state transition. Enabled
// reports the capability once, detected at construction; when false all
// methods are silent no-ops.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Cancel()
	Enabled() bool
}

// Compile-time interface checks.
var (
	_ Speaker = (*NoopSpeaker)(nil)
	_ Speaker = (*LogSpeaker)(nil)
)

// NoopSpeaker is used when voice output is disabled or unsupported.
type NoopSpeaker struct{}

func NewNoopSpeaker() *NoopSpeaker { return &NoopSpeaker{} }

func (*NoopSpeaker) Speak(ctx context.Context, text string) error { return nil }
func (*NoopSpeaker) Cancel()                                      {}
func (*NoopSpeaker) Enabled() bool                                { return false }

// LogSpeaker emits prompts through the structured logger. It stands in for
// a real synthesis engine on the server side; the cancel-before-speak
// contract is kept so swapping in a real engine changes no call sites.
type LogSpeaker struct {
	log *logger.Logger

	mu      sync.Mutex
	current string // last utterance, kept for cancellation bookkeeping
}

func NewLogSpeaker(log *logger.Logger) *LogSpeaker {
	return &LogSpeaker{log: log}
}

func (s *LogSpeaker) Speak(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != "" {
		s.log.Debugw("speech_cancelled", "text", s.current)
	}
	s.current = text
	s.log.Infow("speak", "text", text)
	return nil
}

func (s *LogSpeaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ""
}

func (s *LogSpeaker) Enabled() bool { return true }
