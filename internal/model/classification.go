package model

import (
	"time"

	"github.com/Stewz00/go-phishguard/internal/classifier"
)

// TimestampLayout renders timestamps as UTC ISO-8601 with a Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Source values recorded on history entries.
const (
	SourceText  = "text"
	SourceImage = "image"
)

// ClassificationResult is the immutable outcome returned to clients.
type ClassificationResult struct {
	Text        string           `json:"text"`
	Label       classifier.Label `json:"label"`
	Score       float64          `json:"score"`
	Explanation string           `json:"explanation"`
	Timestamp   string           `json:"timestamp"`
}

// NewClassificationResult stamps a classifier verdict for text at now.
func NewClassificationResult(text string, r classifier.Result, now time.Time) ClassificationResult {
	return ClassificationResult{
		Text:        text,
		Label:       r.Label,
		Score:       r.Score,
		Explanation: r.Explanation,
		Timestamp:   now.UTC().Format(TimestampLayout),
	}
}

// HistoryEntry is a classification recorded for a user.
type HistoryEntry struct {
	ClassificationResult
	UserID   int64  `json:"user_id"`
	Scenario string `json:"scenario,omitempty"`
	Source   string `json:"source"`
}
