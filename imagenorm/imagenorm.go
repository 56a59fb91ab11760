package imagenorm

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	maxDimension = 1200
	maxBytes     = 500 * 1024
	startQuality = 90
	qualityStep  = 10
	minQuality   = 10
)

// ErrDecode is returned when the payload is not a decodable image.
var ErrDecode = errors.New("imagenorm: undecodable image data")

// Result is a normalized image: JPEG bytes embedded as a data URI, plus
// the dimensions and the quality the encoder settled on.
type Result struct {
	DataURI string `json:"dataUri"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Quality int    `json:"quality"`
}

// Normalize decodes an uploaded image, scales it down so the larger
// dimension is at most 1200px, and re-encodes it as JPEG, lowering the
// quality in steps of 10 until the output fits in 500KB or quality
// bottoms out at 10. The last attempt is kept even when it is still over
// budget.
func Normalize(ctx context.Context, r io.Reader) (*Result, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrDecode
	}

	img = scaleDown(img)
	bounds := img.Bounds()

	var buf bytes.Buffer
	quality := startQuality
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		buf.Reset()
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, err
		}
		if buf.Len() <= maxBytes || quality <= minQuality {
			break
		}
		quality -= qualityStep
	}

	return &Result{
		DataURI: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Quality: quality,
	}, nil
}

// scaleDown shrinks the image proportionally so its larger side is
// maxDimension, rounding the other side to the nearest pixel. Images
// already within bounds pass through untouched.
func scaleDown(img image.Image) image.Image {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w <= maxDimension && h <= maxDimension {
		return img
	}
	if w >= h {
		nh := int(math.Round(float64(h) * maxDimension / float64(w)))
		if nh < 1 {
			nh = 1
		}
		return imaging.Resize(img, maxDimension, nh, imaging.Lanczos)
	}
	nw := int(math.Round(float64(w) * maxDimension / float64(h)))
	if nw < 1 {
		nw = 1
	}
	return imaging.Resize(img, nw, maxDimension, imaging.Lanczos)
}
