// Package metadata pulls camera settings out of image bytes.
package metadata

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/rwcarlsen/goexif/exif"

	"portfolio/internal/domain"
)

// maxHeaderBytes bounds how much of a blob is read looking for EXIF. JPEG
// and TIFF keep their EXIF block near the start of the file.
const maxHeaderBytes = 1 << 20

// Extractor reads camera settings from an image stream.
type Extractor interface {
	Extract(r io.Reader) (*domain.CameraSettings, error)
}

type exifExtractor struct{}

func NewExtractor() Extractor {
	return exifExtractor{}
}

// Extract returns an empty CameraSettings and no error when the image has no
// EXIF data. Only failures reading r are returned.
func (exifExtractor) Extract(r io.Reader) (*domain.CameraSettings, error) {
	head, err := io.ReadAll(io.LimitReader(r, maxHeaderBytes))
	if err != nil {
		return nil, fmt.Errorf("read image header: %w", err)
	}

	settings := &domain.CameraSettings{}

	// png and gif typically carry no exif at all
	x, err := exif.Decode(bytes.NewReader(head))
	if err != nil || x == nil {
		return settings, nil
	}

	if fstop, ok := tagToFloat(exif.FNumber, x); ok && fstop > 0 {
		settings.FStop = &fstop
	}

	if iso, ok := tagToInt(exif.ISOSpeedRatings, x); ok && iso > 0 {
		settings.ISO = &iso
	}

	if exposure, ok := tagToFloat(exif.ExposureTime, x); ok {
		if shutter := FormatShutterSpeed(exposure); shutter != "" {
			settings.ShutterSpeed = &shutter
		}
	}

	return settings, nil
}

// FormatShutterSpeed renders an exposure time in seconds the way cameras
// display it: "2.0s" for long exposures, "1/250" for fractions.
func FormatShutterSpeed(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ""
	}
	if seconds >= 1 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	return fmt.Sprintf("1/%d", int64(math.Round(1/seconds)))
}

func tagToFloat(name exif.FieldName, x *exif.Exif) (float64, bool) {
	t, err := x.Get(name)
	if err != nil || t == nil {
		return 0, false
	}
	if num, den, err := t.Rat2(0); err == nil && den != 0 {
		return float64(num) / float64(den), true
	}
	if f, err := t.Float(0); err == nil {
		return f, true
	}
	if i, err := t.Int(0); err == nil {
		return float64(i), true
	}
	return 0, false
}

func tagToInt(name exif.FieldName, x *exif.Exif) (int, bool) {
	t, err := x.Get(name)
	if err != nil || t == nil {
		return 0, false
	}
	if i, err := t.Int(0); err == nil {
		return i, true
	}
	if num, den, err := t.Rat2(0); err == nil && den != 0 {
		return int(num / den), true
	}
	return 0, false
}
