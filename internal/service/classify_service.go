package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Stewz00/go-phishguard/internal/classifier"
	"github.com/Stewz00/go-phishguard/internal/interfaces"
	"github.com/Stewz00/go-phishguard/internal/logging"
	"github.com/Stewz00/go-phishguard/internal/model"
)

var (
	ErrEmptyText       = errors.New("text is empty")
	ErrNoTextFound     = errors.New("no text found in image")
	ErrImageProcessing = errors.New("image processing failed")
)

// ClassifyService runs text and OCR output through one classifier and
// records each verdict in the caller's history.
type ClassifyService struct {
	classifier   classifier.Classifier
	extractor    interfaces.TextExtractor
	history      interfaces.HistoryRepository
	storeTimeout time.Duration
	now          func() time.Time
}

func NewClassifyService(c classifier.Classifier, extractor interfaces.TextExtractor, history interfaces.HistoryRepository, storeTimeout time.Duration) *ClassifyService {
	if storeTimeout <= 0 {
		storeTimeout = DefaultStoreTimeout
	}
	return &ClassifyService{
		classifier:   c,
		extractor:    extractor,
		history:      history,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

// ClassifyText rejects blank input before the classifier sees it.
func (s *ClassifyService) ClassifyText(ctx context.Context, userID int64, text, scenario string) (model.ClassificationResult, error) {
	if strings.TrimSpace(text) == "" {
		return model.ClassificationResult{}, ErrEmptyText
	}
	return s.classify(ctx, userID, text, scenario, model.SourceText), nil
}

// ClassifyImage extracts text from img and classifies it like typed text.
func (s *ClassifyService) ClassifyImage(ctx context.Context, userID int64, img io.Reader, scenario string) (model.ClassificationResult, error) {
	text, err := s.extractor.ExtractText(ctx, img)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("%w: %w", ErrImageProcessing, err)
	}
	if strings.TrimSpace(text) == "" {
		return model.ClassificationResult{}, ErrNoTextFound
	}
	return s.classify(ctx, userID, text, scenario, model.SourceImage), nil
}

// History lists the caller's entries, newest first.
func (s *ClassifyService) History(ctx context.Context, userID int64, scenario string) ([]model.HistoryEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	entries, err := s.history.ListEntries(ctx, userID, strings.TrimSpace(scenario))
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

func (s *ClassifyService) classify(ctx context.Context, userID int64, text, scenario, source string) model.ClassificationResult {
	result := model.NewClassificationResult(text, s.classifier.Classify(text), s.now())
	s.record(ctx, model.HistoryEntry{
		ClassificationResult: result,
		UserID:               userID,
		Scenario:             strings.TrimSpace(scenario),
		Source:               source,
	})
	return result
}

// record appends to history; a storage failure never fails the classification.
func (s *ClassifyService) record(ctx context.Context, entry model.HistoryEntry) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.history.AppendEntry(ctx, entry); err != nil {
		logging.FromContext(ctx).Warn("failed to record history", "user_id", entry.UserID, "error", err)
	}
}
