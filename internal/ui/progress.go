package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/josephgoksu/codecrew/internal/agents/crew"
	"github.com/josephgoksu/codecrew/internal/utils"
)

var stepLabels = map[crew.Step]string{
	crew.StepPlan:   "📋 Planning tasks...",
	crew.StepCode:   "💻 Generating code...",
	crew.StepReview: "🔍 Reviewing code...",
	crew.StepTest:   "🧪 Creating tests...",
}

// ProgressReporter prints pipeline progress, one line per step.
// On a terminal a spinner runs while the model call is in flight.
type ProgressReporter struct {
	out     io.Writer
	spinner *Spinner
	mu      sync.Mutex
}

var _ crew.Reporter = (*ProgressReporter)(nil)

// NewProgressReporter creates a reporter writing to out.
func NewProgressReporter(out io.Writer) *ProgressReporter {
	p := &ProgressReporter{out: out}
	if IsTerminal(out) {
		p.spinner = NewSpinner(out, StyleSubtle.Render("waiting for model"))
	}
	return p
}

// Started prints the goal being processed.
func (p *ProgressReporter) Started(goal string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "🤖 Processing: %s...\n", utils.Head(goal, 50))
}

// StepStarted prints the step heading.
func (p *ProgressReporter) StepStarted(step crew.Step) {
	p.mu.Lock()
	defer p.mu.Unlock()
	label, ok := stepLabels[step]
	if !ok {
		label = string(step) + "..."
	}
	fmt.Fprintln(p.out, StylePrefixStep.Render(label))
	if p.spinner != nil {
		p.spinner.Start()
	}
}

// StepDone prints the step's detail line.
func (p *ProgressReporter) StepDone(step crew.Step, detail string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()
	fmt.Fprintf(p.out, "   %s\n", StylePrefixDone.Render(detail))
}

// Stop clears any running spinner. Call it when a run ends early.
func (p *ProgressReporter) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()
}

func (p *ProgressReporter) stopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
	}
}
