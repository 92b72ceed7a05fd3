// Package ocr extracts text from uploaded images by shelling out to the
// Tesseract command-line engine.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/Stewz00/go-phishguard/internal/interfaces"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedImage = errors.New("unsupported or corrupt image")
	ErrImageTooLarge    = errors.New("image exceeds size limit")
	ErrTimeout          = errors.New("ocr timed out")
)

const (
	DefaultCommand  = "tesseract"
	DefaultLanguage = "eng"
	DefaultTimeout  = 20 * time.Second
	DefaultMaxBytes = 10 << 20
)

// runFunc executes name with args and returns its stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Tesseract runs the tesseract binary against a temp copy of the image.
type Tesseract struct {
	command  string
	language string
	timeout  time.Duration
	maxBytes int64
	run      runFunc
}

var _ interfaces.TextExtractor = (*Tesseract)(nil)

// NewTesseract returns an extractor; zero values fall back to defaults.
func NewTesseract(command, language string, timeout time.Duration, maxBytes int64) *Tesseract {
	if command == "" {
		command = DefaultCommand
	}
	if language == "" {
		language = DefaultLanguage
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Tesseract{
		command:  command,
		language: language,
		timeout:  timeout,
		maxBytes: maxBytes,
		run:      runCommand,
	}
}

// ExtractText returns the raw text recognised in img. Blank output is not an error.
func (t *Tesseract) ExtractText(ctx context.Context, img io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(img, t.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > t.maxBytes {
		return "", ErrImageTooLarge
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	f, err := os.CreateTemp("", "phishguard-ocr-*."+format)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := t.run(ctx, t.command, f.Name(), "stdout", "-l", t.language)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("tesseract failed: %w", err)
	}

	return string(out), nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
