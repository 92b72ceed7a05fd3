// Package classifier scores free text against fixed phishing heuristics.
//
// Two scoring modes exist. The weighted rule set (ModeWeighted) is the
// default; the keyword-density scorer (ModeDensity) is kept as an alternate
// configuration selected per deployment. The modes never share scoring state.
package classifier

import (
	"fmt"
	"math"
	"strings"
)

// Label is the verdict attached to a classified text.
type Label string

const (
	LabelPhish Label = "phish"
	LabelSafe  Label = "safe"
)

// Mode selects a scoring implementation.
type Mode string

const (
	ModeWeighted Mode = "weighted"
	ModeDensity  Mode = "density"
)

// Result is the outcome of classifying a single text.
type Result struct {
	Label       Label
	Score       float64
	Explanation string
	Findings    []string
}

// Classifier turns text into a Result. Implementations must be total and
// safe for concurrent use.
type Classifier interface {
	Classify(text string) Result
}

// New returns the classifier for the given mode.
func New(mode Mode) (Classifier, error) {
	switch mode {
	case ModeWeighted, "":
		return NewWeighted(), nil
	case ModeDensity:
		return NewDensity(), nil
	default:
		return nil, fmt.Errorf("unknown classifier mode %q", mode)
	}
}

// ParseMode normalizes a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeWeighted:
		return ModeWeighted, nil
	case ModeDensity:
		return ModeDensity, nil
	default:
		return "", fmt.Errorf("unknown classifier mode %q", s)
	}
}

// clampScore bounds s to [0, 1] and drops float accumulation noise.
func clampScore(s float64) float64 {
	s = math.Max(0, math.Min(1, s))
	return math.Round(s*1e6) / 1e6
}
