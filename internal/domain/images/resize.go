package images

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// fitImage returns raw unchanged when it already fits in maxDimension on both
// sides, otherwise a Lanczos-downscaled copy in the same format.
func fitImage(raw []byte, maxDimension int) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= maxDimension && cfg.Height <= maxDimension {
		return raw, nil
	}

	outFormat, err := imaging.FormatFromExtension(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	src, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	dst := imaging.Fit(src, maxDimension, maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, outFormat, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
