// Package images stores listing photo blobs on disk under generated
// opaque filenames, normalized to a fixed frame size.
package images

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

// Every stored blob is a JPEG letterboxed into this frame. The source
// aspect ratio is preserved; the leftover margin stays black.
const (
	FrameWidth  = 1280
	FrameHeight = 720
)

const jpegQuality = 85

// Store keeps photo blobs in a single directory. Database rows hold
// only the generated filename.
type Store struct {
	dir string
}

// NewStore creates a blob store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save decodes the image at src, letterboxes it into the fixed frame,
// and stores the result under a fresh opaque name, which it returns.
func (s *Store) Save(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening image %s: %w", src, err)
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			slog.Warn("closing image source", "path", src, "error", cerr)
		}
	}()

	decoded, _, err := image.Decode(in)
	if err != nil {
		return "", fmt.Errorf("decoding image %s: %w", src, err)
	}

	framed := letterbox(decoded)

	name := uuid.NewString() + ".jpg"
	dst := filepath.Join(s.dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("creating image %s: %w", dst, err)
	}

	if err := jpeg.Encode(out, framed, &jpeg.Options{Quality: jpegQuality}); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("encoding image %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("closing image %s: %w", dst, err)
	}

	return name, nil
}

// letterbox scales src to fit the frame without changing its aspect
// ratio and centers it on a black background.
func letterbox(src image.Image) image.Image {
	frame := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	xdraw.Draw(frame, frame.Bounds(), image.NewUniform(color.Black), image.Point{}, xdraw.Src)

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return frame
	}

	scale := float64(FrameWidth) / float64(b.Dx())
	if s := float64(FrameHeight) / float64(b.Dy()); s < scale {
		scale = s
	}
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)

	x := (FrameWidth - w) / 2
	y := (FrameHeight - h) / 2
	target := image.Rect(x, y, x+w, y+h)

	xdraw.ApproxBiLinear.Scale(frame, target, src, b, xdraw.Over, nil)
	return frame
}

// Delete removes a stored blob. A missing blob is logged and
// tolerated: the row reference is already gone and there is nothing
// left to clean up.
func (s *Store) Delete(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		slog.Warn("image blob already missing", "name", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting image %s: %w", name, err)
	}
	return nil
}

// DeleteAll removes a set of blobs, logging failures instead of
// stopping early.
func (s *Store) DeleteAll(names []string) {
	for _, name := range names {
		if err := s.Delete(name); err != nil {
			slog.Error("deleting image blob", "name", name, "error", err)
		}
	}
}

// Path returns the on-disk path for a stored blob name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}
