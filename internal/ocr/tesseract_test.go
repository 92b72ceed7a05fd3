package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTesseract_ExtractText(t *testing.T) {
	tess := NewTesseract("/opt/tesseract", "eng+hin", time.Second, 0)

	var gotName string
	var gotArgs []string
	tess.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		_, err := os.Stat(args[0])
		require.NoError(t, err, "image should be on disk while tesseract runs")
		return []byte("Dear customer\n"), nil
	}

	text, err := tess.ExtractText(context.Background(), bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, "Dear customer\n", text)
	assert.Equal(t, "/opt/tesseract", gotName)
	require.Len(t, gotArgs, 4)
	assert.True(t, strings.HasSuffix(gotArgs[0], ".png"))
	assert.Equal(t, []string{"stdout", "-l", "eng+hin"}, gotArgs[1:])

	_, err = os.Stat(gotArgs[0])
	assert.True(t, os.IsNotExist(err), "temp image should be removed")
}

func TestTesseract_RejectsNonImage(t *testing.T) {
	tess := NewTesseract("", "", 0, 0)
	tess.run = func(context.Context, string, ...string) ([]byte, error) {
		t.Fatal("tesseract must not run for invalid input")
		return nil, nil
	}

	_, err := tess.ExtractText(context.Background(), strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestTesseract_RejectsOversizedImage(t *testing.T) {
	data := pngBytes(t)
	tess := NewTesseract("", "", 0, int64(len(data)-1))

	_, err := tess.ExtractText(context.Background(), bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestTesseract_CommandFailure(t *testing.T) {
	tess := NewTesseract("", "", 0, 0)
	tess.run = func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}

	_, err := tess.ExtractText(context.Background(), bytes.NewReader(pngBytes(t)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tesseract failed")
}

func TestTesseract_Timeout(t *testing.T) {
	tess := NewTesseract("", "", 10*time.Millisecond, 0)
	tess.run = func(ctx context.Context, _ string, _ ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, err := tess.ExtractText(context.Background(), bytes.NewReader(pngBytes(t)))
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestNewTesseract_Defaults(t *testing.T) {
	tess := NewTesseract("", "", 0, 0)
	assert.Equal(t, DefaultCommand, tess.command)
	assert.Equal(t, DefaultLanguage, tess.language)
	assert.Equal(t, DefaultTimeout, tess.timeout)
	assert.Equal(t, int64(DefaultMaxBytes), tess.maxBytes)
}
