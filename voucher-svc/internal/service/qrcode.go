package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrRender = errors.New("qr render failed")

type ECCLevel string

const (
	ECCLow      ECCLevel = "L"
	ECCMedium   ECCLevel = "M"
	ECCQuartile ECCLevel = "Q"
	ECCHigh     ECCLevel = "H"
)

func ParseECCLevel(s string) (ECCLevel, error) {
	switch lvl := ECCLevel(strings.ToUpper(strings.TrimSpace(s))); lvl {
	case ECCLow, ECCMedium, ECCQuartile, ECCHigh:
		return lvl, nil
	}
	return "", fmt.Errorf("unknown ecc level %q", s)
}

func (l ECCLevel) recoveryLevel() qrcode.RecoveryLevel {
	switch l {
	case ECCMedium:
		return qrcode.Medium
	case ECCQuartile:
		return qrcode.High
	case ECCHigh:
		return qrcode.Highest
	default:
		return qrcode.Low
	}
}

type RenderOptions struct {
	// Version forces the symbol version (1-40). Zero picks the smallest version that fits.
	Version      int
	ECCLevel     ECCLevel
	Scale        int // pixels per module
	AddQuietZone bool
}

var (
	VoucherRenderOptions = RenderOptions{Version: 5, ECCLevel: ECCLow, Scale: 10, AddQuietZone: true}
	LogoRenderOptions    = RenderOptions{Version: 7, ECCLevel: ECCHigh, Scale: 10, AddQuietZone: true}
)

// RenderedImage is a PNG rendering of a QR symbol.
type RenderedImage struct {
	PNG []byte
}

func (r *RenderedImage) Base64() string {
	return base64.StdEncoding.EncodeToString(r.PNG)
}

func (r *RenderedImage) DataURI() string {
	return "data:image/png;base64," + r.Base64()
}

type QRRenderer interface {
	Render(payload string, opts RenderOptions) (*RenderedImage, error)
	RenderWithLogo(payload string, logo []byte) (*RenderedImage, error)
}

type QRService struct{}

func NewQRService() *QRService {
	return &QRService{}
}

func (s *QRService) Render(payload string, opts RenderOptions) (*RenderedImage, error) {
	q, err := encode(payload, opts)
	if err != nil {
		return nil, err
	}

	data, err := q.PNG(-scaleOf(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: encode png: %w", ErrRender, err)
	}
	return &RenderedImage{PNG: data}, nil
}

// RenderWithLogo renders payload at the highest error-correction level and stamps logo over the centre.
func (s *QRService) RenderWithLogo(payload string, logo []byte) (*RenderedImage, error) {
	base, err := s.Render(payload, LogoRenderOptions)
	if err != nil {
		return nil, err
	}

	data, err := CompositeLogo(base.PNG, logo)
	if err != nil {
		return nil, err
	}
	return &RenderedImage{PNG: data}, nil
}

// CompositeLogo overlays logo onto the centre of the qr image and re-encodes the result as PNG.
func CompositeLogo(qrImage, logo []byte) ([]byte, error) {
	qrSrc, _, err := image.Decode(bytes.NewReader(qrImage))
	if err != nil {
		return nil, fmt.Errorf("%w: decode qr image: %w", ErrRender, err)
	}
	logoSrc, _, err := image.Decode(bytes.NewReader(logo))
	if err != nil {
		return nil, fmt.Errorf("%w: decode logo: %w", ErrRender, err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, qrSrc.Bounds().Dx(), qrSrc.Bounds().Dy()))
	draw.Draw(canvas, canvas.Bounds(), qrSrc, qrSrc.Bounds().Min, draw.Src)

	target := LogoRect(canvas.Bounds(), logoSrc.Bounds().Dx(), logoSrc.Bounds().Dy())
	if target.Empty() {
		return nil, fmt.Errorf("%w: logo does not fit a %dx%d symbol", ErrRender, canvas.Bounds().Dx(), canvas.Bounds().Dy())
	}

	resized := image.NewRGBA(image.Rect(0, 0, target.Dx(), target.Dy()))
	draw.Draw(resized, resized.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(resized, resized.Bounds(), logoSrc, logoSrc.Bounds(), xdraw.Over, nil)

	draw.Draw(canvas, target, resized, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("%w: encode png: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// LogoRect returns where a logoW x logoH logo lands on a symbol of the given bounds:
// one fifth of the symbol width, aspect ratio kept, centred.
func LogoRect(qr image.Rectangle, logoW, logoH int) image.Rectangle {
	if logoW <= 0 || logoH <= 0 {
		return image.Rectangle{}
	}
	w := qr.Dx() / 5
	h := logoH * w / logoW
	x := (qr.Dx() - w) / 2
	y := (qr.Dy() - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

func encode(payload string, opts RenderOptions) (*qrcode.QRCode, error) {
	level := opts.ECCLevel.recoveryLevel()

	var (
		q   *qrcode.QRCode
		err error
	)
	if opts.Version > 0 {
		q, err = qrcode.NewWithForcedVersion(payload, opts.Version, level)
	} else {
		q, err = qrcode.New(payload, level)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: encode payload: %w", ErrRender, err)
	}

	q.DisableBorder = !opts.AddQuietZone
	return q, nil
}

func scaleOf(opts RenderOptions) int {
	if opts.Scale <= 0 {
		return VoucherRenderOptions.Scale
	}
	return opts.Scale
}

var _ QRRenderer = (*QRService)(nil)
