package eraser

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoader_ShouldLoadLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, opaqueImage(12, 8)), 0o644))

	img, err := NewFileLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(12, 8), img.Bounds().Size())
}

func TestLoader_ShouldRejectNonImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not an image"), 0o644))

	_, err := NewFileLoader().Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestLoader_ShouldFailOnMissingFile(t *testing.T) {
	_, err := NewFileLoader().Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_ShouldDownloadImage(t *testing.T) {
	data := encodePNG(t, opaqueImage(7, 5))
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer ts.Close()

	img, err := NewFileLoader().Load(ts.URL + "/image.png")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(7, 5), img.Bounds().Size())
}

func TestLoader_ShouldReadPipedImage(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	data := encodePNG(t, opaqueImage(3, 9))
	go func() {
		w.Write(data)
		w.Close()
	}()

	img, err := (&FileLoader{Stdin: r}).Load(PipeName)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(3, 9), img.Bounds().Size())
}

func TestLoader_PipeWithoutStdin(t *testing.T) {
	_, err := (&FileLoader{}).Load(PipeName)
	assert.Error(t, err)
}
