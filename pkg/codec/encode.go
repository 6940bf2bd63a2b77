package codec

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/raster"
)

// Output format names.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// DefaultJPEGQuality is used when EncodeOptions.Quality is zero.
const DefaultJPEGQuality = 95

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatBMP:  true,
	FormatTIFF: true,
}

var extFormats = map[string]string{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
}

// ValidateFormat checks that format is a supported output format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported,
			"invalid format: %s (must be 'png', 'jpeg', 'bmp', or 'tiff')", format)
	}
	return nil
}

// FormatFromPath infers the output format from a file extension.
// Unknown extensions return the empty string.
func FormatFromPath(path string) string {
	return extFormats[strings.ToLower(filepath.Ext(path))]
}

// Extension returns the canonical file extension for format, with the dot.
func Extension(format string) string {
	if format == FormatJPEG {
		return ".jpg"
	}
	return "." + format
}

// EncodeOptions configures encoders that take parameters.
type EncodeOptions struct {
	// Quality is the JPEG quality (1-100). Zero means DefaultJPEGQuality.
	Quality int
}

// Encode writes img to w in the given format.
// Empty images cannot be encoded and fail with INVALID_ARGUMENT.
func Encode(w io.Writer, img *raster.Image, format string, opts EncodeOptions) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if img.Empty() {
		return errors.InvalidArgument("cannot encode empty %dx%d image", img.Width(), img.Height())
	}

	std := raster.ToStd(img)
	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(w, std, &jpeg.Options{Quality: clampQuality(opts.Quality)})
	case FormatBMP:
		err = bmp.Encode(w, std)
	case FormatTIFF:
		err = tiff.Encode(w, std, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		err = encodePNG(w, std)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "encode %s", format)
	}
	return nil
}

func encodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	return enc.Encode(w, img)
}

func clampQuality(q int) int {
	switch {
	case q == 0:
		return DefaultJPEGQuality
	case q < 1:
		return 1
	case q > 100:
		return 100
	}
	return q
}

// Save encodes img to path. The file is written to a temporary name in the
// same directory and renamed on success; on failure no file is left behind
// and an existing file at path is untouched.
func Save(img *raster.Image, path, format string, opts EncodeOptions) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if img.Empty() {
		return errors.InvalidArgument("cannot save empty %dx%d image", img.Width(), img.Height())
	}
	return writeAtomic(path, func(w io.Writer) error {
		return Encode(w, img, format, opts)
	})
}

// WriteFile writes already encoded data to path with the same atomic
// replace as Save.
func WriteFile(path string, data []byte) error {
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func writeAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".concatimg-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "create temporary file in %s", dir)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "chmod %s", tmp.Name())
	}

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeEncode, err, "write %s", path)
		}
		return err
	}
	if err = bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "write %s", path)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "close %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "rename to %s", path)
	}
	return nil
}

// Describe returns a short description like "png 800x600 rgb8".
func Describe(img *raster.Image, format string) string {
	return fmt.Sprintf("%s %dx%d %s", format, img.Width(), img.Height(), img.Format())
}
