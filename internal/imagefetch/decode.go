package imagefetch

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SVG sniffing and sizing limits
const (
	svgSniffBytes     = 4096
	svgMaxRenderPixel = 4096
)

// Raster limits checked against the header before decoding pixels
const (
	rasterMaxSide   = 16384
	rasterMaxPixels = 40 * 1024 * 1024
)

// decodeImage decodes raster formats registered above, or rasterises SVG at
// its declared size (fallback when it declares none)
func decodeImage(data []byte, fallbackW, fallbackH int) (image.Image, string, error) {
	if isSVGData(data) {
		img, err := renderSVG(data, fallbackW, fallbackH)
		if err != nil {
			return nil, "svg", fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return img, "svg", nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := checkRasterSize(cfg.Width, cfg.Height); err != nil {
		return nil, format, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, format, nil
}

// checkRasterSize rejects headers whose pixel buffer would be unreasonably large
func checkRasterSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", ErrDecode, w, h)
	}
	if w > rasterMaxSide || h > rasterMaxSide || int64(w)*int64(h) > rasterMaxPixels {
		return fmt.Errorf("%w: declared size %dx%d", ErrTooLarge, w, h)
	}
	return nil
}

// isSVGData checks the first few KB for an <svg> element or the SVG namespace
func isSVGData(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	n := len(data)
	if n > svgSniffBytes {
		n = svgSniffBytes
	}
	header := bytes.ToLower(bytes.TrimSpace(data[:n]))
	return bytes.Contains(header, []byte("<svg")) ||
		bytes.Contains(header, []byte(`xmlns="http://www.w3.org/2000/svg"`))
}

func renderSVG(data []byte, fallbackW, fallbackH int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	w, h, ok := svgExplicitSize(data)
	if !ok {
		w, h = int(icon.ViewBox.W), int(icon.ViewBox.H)
	}
	if w <= 0 || h <= 0 {
		w, h = fallbackW, fallbackH
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg has no usable size")
	}
	if w > svgMaxRenderPixel || h > svgMaxRenderPixel {
		return nil, fmt.Errorf("svg size %dx%d exceeds %d", w, h, svgMaxRenderPixel)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.Transparent}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}

// svgExplicitSize reads numeric width/height attributes of the root element
func svgExplicitSize(data []byte) (int, int, bool) {
	n := len(data)
	if n > svgSniffBytes {
		n = svgSniffBytes
	}
	s := strings.ToLower(string(data[:n]))
	start := strings.Index(s, "<svg")
	if start < 0 {
		return 0, 0, false
	}
	end := strings.Index(s[start:], ">")
	if end < 0 {
		return 0, 0, false
	}
	tag := s[start : start+end]

	w, wOk := numericAttr(tag, "width")
	h, hOk := numericAttr(tag, "height")
	if wOk && hOk && w > 0 && h > 0 {
		return w, h, true
	}
	return 0, 0, false
}

// numericAttr extracts the leading integer of attr="123px"
func numericAttr(tag, attr string) (int, bool) {
	for _, quote := range []string{`"`, `'`} {
		key := " " + attr + "=" + quote
		pos := strings.Index(tag, key)
		if pos < 0 {
			continue
		}
		rest := tag[pos+len(key):]
		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			return 0, false
		}
		v, err := strconv.Atoi(rest[:digits])
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
