package telemetry

import "time"

// Event names.
const (
	EventGenerationCompleted = "generation_completed"
	EventGenerationFailed    = "generation_failed"
	EventCommandExecuted     = "command_executed"
)

// Generation describes a finished run. It deliberately has no field for the
// goal text or generated code.
type Generation struct {
	Provider string
	Model    string
	Language string
	Score    int
	Approved bool
	Tokens   int
	Duration time.Duration
}

// Properties returns the event attributes for g.
func (g Generation) Properties() Properties {
	return Properties{
		"provider":      g.Provider,
		"model":         g.Model,
		"language":      g.Language,
		"quality_score": g.Score,
		"approved":      g.Approved,
		"total_tokens":  g.Tokens,
		"duration_ms":   g.Duration.Milliseconds(),
	}
}

// Failure describes a run that ended with an error. Only the failing step and
// an error category are kept.
type Failure struct {
	Provider  string
	Model     string
	Step      string
	ErrorType string
}

// Properties returns the event attributes for f.
func (f Failure) Properties() Properties {
	return Properties{
		"provider":   f.Provider,
		"model":      f.Model,
		"step":       f.Step,
		"error_type": f.ErrorType,
	}
}
