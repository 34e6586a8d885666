package eraser

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/eraser/utils"
	"golang.org/x/term"

	// Register the WebP decoder next to the formats supported by imaging.
	_ "golang.org/x/image/webp"
)

// PipeName is the image path indicating the image is read from stdin.
const PipeName = "-"

// ErrUnsupportedImage is returned when the source is not an image.
var ErrUnsupportedImage = errors.New("the source is not a valid image file")

// Loader fetches and decodes the widget image.
type Loader interface {
	Load(path string) (image.Image, error)
}

// FileLoader loads images from local files, http(s) urls or,
// if the path is the pipe name, from the standard input.
type FileLoader struct {
	Stdin *os.File
}

// NewFileLoader returns a loader reading piped images from os.Stdin.
func NewFileLoader() *FileLoader {
	return &FileLoader{Stdin: os.Stdin}
}

// Load implements Loader.
func (l *FileLoader) Load(path string) (image.Image, error) {
	switch {
	case utils.IsValidUrl(path):
		src, err := utils.DownloadImage(path)
		if err != nil {
			return nil, err
		}
		defer os.Remove(src.Name())
		defer src.Close()

		return decodeImg(src)
	case path == PipeName:
		if l.Stdin == nil || term.IsTerminal(int(l.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return decodeImg(l.Stdin)
	}

	ctype, err := utils.DetectContentType(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the image file: %w", err)
	}
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the image file: %w", err)
	}
	defer file.Close()

	return decodeImg(file)
}

// decodeImg decodes an image applying the EXIF orientation, if any.
func decodeImg(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the image file: %w", err)
	}
	return img, nil
}
