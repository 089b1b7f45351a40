// Package content provides the design content behind the placement engine:
// the uploaded image and the printed text. It decides whether content is
// present and valid; where the content sits is the placement package's job.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	// decoders for every format the image slot accepts
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned for files that are not a supported image.
var ErrNotImage = errors.New("please upload a valid image file")

// MaxImageBytes is the largest file LoadImage accepts.
const MaxImageBytes = 5 << 20

// Image is a decoded design image.
type Image struct {
	Name   string
	Size   int64
	Format string
	Img    image.Image
}

// Aspect returns the intrinsic width/height ratio, or 1 for an empty image.
func (i *Image) Aspect() float64 {
	b := i.Img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 1
	}
	return float64(b.Dx()) / float64(b.Dy())
}

// LoadImage reads and decodes the image at path. Files whose content is
// not an image/* type are rejected with ErrNotImage.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.Size() > MaxImageBytes {
		return nil, fmt.Errorf("%s is %d bytes, limit is %d: %w", path, st.Size(), MaxImageBytes, ErrNotImage)
	}

	img, format, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Image{
		Name:   filepath.Base(path),
		Size:   st.Size(),
		Format: format,
		Img:    img,
	}, nil
}

// ReadImage decodes an image already held in memory, such as a file
// dropped on the window. It applies the same checks as LoadImage.
func ReadImage(name string, data []byte) (*Image, error) {
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%s is %d bytes, limit is %d: %w", name, len(data), MaxImageBytes, ErrNotImage)
	}
	img, format, err := DecodeImage(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Image{
		Name:   filepath.Base(name),
		Size:   int64(len(data)),
		Format: format,
		Img:    img,
	}, nil
}

// DecodeImage sniffs the content type of r and decodes it if it is an
// image.
func DecodeImage(r io.ReadSeeker) (image.Image, string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("reading header: %w", err)
	}
	ctype := http.DetectContentType(head[:n])
	if !strings.HasPrefix(ctype, "image/") && !isTIFF(head[:n]) {
		return nil, "", fmt.Errorf("content type %s: %w", ctype, ErrNotImage)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("rewinding: %w", err)
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", ctype, errors.Join(ErrNotImage, err))
	}
	return img, format, nil
}

// isTIFF catches TIFF files, which content sniffing does not know.
func isTIFF(b []byte) bool {
	return len(b) >= 4 && (string(b[:4]) == "II*\x00" || string(b[:4]) == "MM\x00*")
}
