package classifier

import (
	"regexp"
	"strings"
)

// PhishThreshold is the minimum weighted score labelled phish.
const PhishThreshold = 0.4

const (
	noFindingsExplanation = "No common red flags were found. However, always remain cautious."
	findingsPrefix        = "Potential red flags identified:\n- "
	findingsSeparator     = "\n- "
)

// Rule fires when any trigger substring occurs in the lowercased text, or
// when Pattern matches it.
type Rule struct {
	Name     string
	Triggers []string
	Pattern  *regexp.Regexp
	Weight   float64
	Finding  string
}

// Matches reports whether the rule fires for already lowercased text.
func (r Rule) Matches(lower string) bool {
	if r.Pattern != nil && r.Pattern.MatchString(lower) {
		return true
	}
	for _, t := range r.Triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// DefaultRules is the canonical rule set, in evaluation order.
var DefaultRules = []Rule{
	{
		Name:     "urgency",
		Triggers: []string{"urgent", "immediate action required", "account suspended", "act now", "limited time"},
		Weight:   0.3,
		Finding:  "Creates a false sense of urgency.",
	},
	{
		Name:     "threat",
		Triggers: []string{"unauthorized access", "suspicious activity", "security alert", "problem with your account"},
		Weight:   0.3,
		Finding:  "Uses threats or warnings to scare you.",
	},
	{
		Name:     "personal_info",
		Triggers: []string{"password", "social security", "ssn", "credit card", "login details", "verify your account"},
		Weight:   0.4,
		Finding:  "Asks for sensitive personal information.",
	},
	{
		Name:    "url",
		Pattern: urlPattern,
		Weight:  0.2,
		Finding: "Contains URL(s). Be careful where you click.",
	},
	{
		Name:     "generic_greeting",
		Triggers: []string{"dear customer", "dear user", "valued member"},
		Weight:   0.1,
		Finding:  "Uses a generic greeting instead of your name.",
	},
	{
		Name:     "prize",
		Triggers: []string{"you have won", "congratulations you won", "claim your prize", "lottery"},
		Weight:   0.3,
		Finding:  "Promises an unexpected prize or reward.",
	},
}

// Weighted sums the weights of every fired rule.
type Weighted struct {
	rules     []Rule
	threshold float64
}

// NewWeighted returns a classifier over DefaultRules.
func NewWeighted() *Weighted {
	return NewWeightedWithRules(DefaultRules)
}

// NewWeightedWithRules returns a classifier over a custom rule set.
func NewWeightedWithRules(rules []Rule) *Weighted {
	return &Weighted{rules: rules, threshold: PhishThreshold}
}

// Classify evaluates every rule; there is no early exit.
func (w *Weighted) Classify(text string) Result {
	lower := strings.ToLower(text)

	var score float64
	var findings []string
	for _, r := range w.rules {
		if r.Matches(lower) {
			score += r.Weight
			findings = append(findings, r.Finding)
		}
	}

	score = clampScore(score)
	return Result{
		Label:       LabelFor(score),
		Score:       score,
		Explanation: explain(findings),
		Findings:    findings,
	}
}

// LabelFor applies PhishThreshold to a weighted score.
func LabelFor(score float64) Label {
	if score >= PhishThreshold {
		return LabelPhish
	}
	return LabelSafe
}

func explain(findings []string) string {
	if len(findings) == 0 {
		return noFindingsExplanation
	}
	return findingsPrefix + strings.Join(findings, findingsSeparator)
}
