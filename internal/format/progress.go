package format

import (
	"fmt"
	"log/slog"
)

// Progress receives progress events of a read or write.
// Init is called once, then Step with increasing counts up to total.
type Progress interface {
	Init(total int, title string)
	Step(n int, message string)
}

// NopProgress ignores all events.
type NopProgress struct{}

// Init implements Progress.
func (NopProgress) Init(int, string) {}

// Step implements Progress.
func (NopProgress) Step(int, string) {}

// LogProgress reports events through a logger at debug level.
type LogProgress struct {
	Logger *slog.Logger

	title string
	total int
}

// Init implements Progress.
func (p *LogProgress) Init(total int, title string) {
	p.title, p.total = title, total
	p.Logger.Debug("started", "task", title, "steps", total)
}

// Step implements Progress.
func (p *LogProgress) Step(n int, message string) {
	p.Logger.Debug(message, "task", p.title, "step", n, "of", p.total)
}

// StepCounter drives a Progress through an exact number of steps.
// Calling Step more often than declared, or Done before every step was
// taken, is a programming error and panics.
type StepCounter struct {
	progress Progress
	title    string
	total    int
	taken    int
}

// NewStepCounter initializes p with total steps. A nil p is NopProgress.
func NewStepCounter(p Progress, total int, title string) *StepCounter {
	if p == nil {
		p = NopProgress{}
	}

	p.Init(total, title)

	return &StepCounter{progress: p, title: title, total: total}
}

// Step reports the next step.
func (s *StepCounter) Step(message string) {
	if s.taken == s.total {
		panic(fmt.Sprintf("%s: step %q exceeds the declared %d steps", s.title, message, s.total))
	}

	s.taken++
	s.progress.Step(s.taken, message)
}

// Done checks that every declared step was reported.
func (s *StepCounter) Done() {
	if s.taken != s.total {
		panic(fmt.Sprintf("%s: %d of the declared %d steps were reported", s.title, s.taken, s.total))
	}
}
