package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/stdmath/reduce"
)

// Outcome is the result of one command.
type Outcome struct {
	Command  string          `json:"command" yaml:"command"`
	Type     string          `json:"type,omitempty" yaml:"type,omitempty"`
	Status   string          `json:"status" yaml:"status"`
	Value    any             `json:"value,omitempty" yaml:"value,omitempty"`
	Overflow *OverflowDetail `json:"overflow,omitempty" yaml:"overflow,omitempty"`
	RunID    string          `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Steps    int             `json:"steps" yaml:"steps"`

	lines []string
}

// OverflowDetail describes the element that overflowed.
type OverflowDetail struct {
	At      any `json:"at" yaml:"at"`
	Partial any `json:"partial" yaml:"partial"`
	Index   int `json:"index" yaml:"index"`
}

func outcomeOf[T, R any](state reduce.OverflowState[T, R]) *Outcome {
	if at, ok := state.At(); ok {
		return &Outcome{
			Status:   statusOverflow,
			Overflow: &OverflowDetail{At: at, Partial: state.Value(), Index: state.Index()},
		}
	}
	return &Outcome{Status: statusOK, Value: state.Value()}
}

func valueOutcome(v any) *Outcome {
	return &Outcome{Status: statusOK, Value: v}
}

const (
	statusOK       = "ok"
	statusOverflow = "overflow"
	statusError    = "error"
)

// Text renders the outcome for text output.
func (o *Outcome) Text() string {
	if o.Overflow != nil {
		return fmt.Sprintf("overflow: %s overflowed %s at element %v (index %d); partial result %v",
			o.Command, o.Type, o.Overflow.At, o.Overflow.Index, o.Overflow.Partial)
	}
	if len(o.lines) > 0 {
		return strings.Join(o.lines, "\n")
	}
	return fmt.Sprint(o.Value)
}

// reportRecorder keeps the last reduction report and forwards every report
// to next.
type reportRecorder struct {
	last *reduce.Report
	next reduce.Observer
}

func (r *reportRecorder) ObserveReduction(ctx context.Context, rep reduce.Report) {
	r.last = &rep
	if r.next != nil {
		r.next.ObserveReduction(ctx, rep)
	}
}

func (r *reportRecorder) reset() { r.last = nil }
