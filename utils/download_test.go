package utils

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUtils_ShouldDownloadImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("could not encode test image: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	f, err := DownloadImage(srv.URL + "/sample.png")
	if err != nil {
		t.Fatalf("could't download test file: %v", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	img, _, err := image.Decode(f)
	assert.NoError(t, err)
	assert.Equal(t, image.Pt(4, 4), img.Bounds().Size())
}

func TestUtils_ShouldRejectNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>not an image</body></html>"))
	}))
	defer srv.Close()

	_, err := DownloadImage(srv.URL)
	assert.Error(t, err)
}

func TestUtils_ShouldRejectBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := DownloadImage(srv.URL)
	assert.Error(t, err)
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://github.com/esimov/eraser/"))
	assert.False(t, IsValidUrl("testdata/sample.png"))
	assert.False(t, IsValidUrl("-"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "sample*.png")
	if err != nil {
		t.Fatalf("could not create temp file: %v", err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("could not encode test image: %v", err)
	}
	f.Close()

	ftype, err := DetectContentType(f.Name())
	if err != nil {
		t.Fatalf("could not detect content type: %v", err)
	}
	assert.Equal(t, "image/png", ftype)
}
