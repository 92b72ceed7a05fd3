package classifier

import (
	"regexp"
	"strings"
)

// DensityThreshold is the minimum keyword-density score labelled phish.
const DensityThreshold = 0.3

// DensityKeywords is the flat keyword list scored by Density.
var DensityKeywords = []string{
	"urgent", "verify", "account", "password", "login",
	"click", "bank", "suspended", "winner", "prize",
}

const credentialURLExplanation = "Contains a URL with embedded credentials (user@host), a common trick to disguise the real destination."

var credentialURLPattern = regexp.MustCompile(`https?://[^/\s]+@`)

// Density scores text by the share of distinct keywords it contains. A URL
// carrying userinfo short-circuits to a certain phish verdict.
type Density struct {
	keywords []string
}

// NewDensity returns a classifier over DensityKeywords.
func NewDensity() *Density {
	return &Density{keywords: DensityKeywords}
}

func (d *Density) Classify(text string) Result {
	lower := strings.ToLower(text)

	if credentialURLPattern.MatchString(lower) {
		return Result{
			Label:       LabelPhish,
			Score:       1.0,
			Explanation: credentialURLExplanation,
			Findings:    []string{credentialURLExplanation},
		}
	}

	var matched []string
	seen := make(map[string]struct{}, len(d.keywords))
	for _, k := range d.keywords {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if strings.Contains(lower, k) {
			matched = append(matched, k)
		}
	}

	var score float64
	if len(seen) > 0 {
		score = clampScore(float64(len(matched)) / float64(len(seen)))
	}

	label := LabelSafe
	if score >= DensityThreshold {
		label = LabelPhish
	}

	explanation := "No suspicious keywords were found."
	if len(matched) > 0 {
		explanation = "Suspicious keywords found: " + strings.Join(matched, ", ")
	}

	return Result{
		Label:       label,
		Score:       score,
		Explanation: explanation,
		Findings:    matched,
	}
}
