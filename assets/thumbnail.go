package assets

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// maxImageBytes bounds how much of an image body is read.
const maxImageBytes = 32 << 20

// Thumbnail is a screenshot rendered for the terminal. When Err is set, Art
// holds the placeholder instead.
type Thumbnail struct {
	Filename string
	Art      string
	Err      error
}

// Placeholder reports whether the thumbnail fell back to the placeholder.
func (t Thumbnail) Placeholder() bool { return t.Err != nil }

// Thumbnailer turns screenshots into half-block terminal art.
type Thumbnailer struct {
	source Source
	width  int
	height int
}

// NewThumbnailer renders thumbnails width cells wide and height cells tall.
// Each cell shows two vertically stacked pixels.
func NewThumbnailer(source Source, width, height int) *Thumbnailer {
	if width <= 0 {
		width = 16
	}
	if height <= 0 {
		height = 8
	}
	return &Thumbnailer{source: source, width: width, height: height}
}

// Size returns the thumbnail size in cells
func (t *Thumbnailer) Size() (int, int) { return t.width, t.height }

// Load fetches and renders one screenshot. It never fails: errors are
// reported on the Thumbnail with the placeholder art.
func (t *Thumbnailer) Load(ctx context.Context, filename string) Thumbnail {
	img, err := t.fetch(ctx, filename)
	if err != nil {
		return Thumbnail{
			Filename: filename,
			Art:      Placeholder(t.width, t.height),
			Err:      err,
		}
	}
	return Thumbnail{Filename: filename, Art: t.Render(img)}
}

func (t *Thumbnailer) fetch(ctx context.Context, filename string) (image.Image, error) {
	body, _, err := t.source.Open(ctx, filename)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	img, _, err := image.Decode(io.LimitReader(body, maxImageBytes))
	if err != nil {
		return nil, &AssetLoadError{Filename: filename, Err: fmt.Errorf("decode: %w", err)}
	}
	return img, nil
}

var backdrop = color.RGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}

// Render scales img to fit the thumbnail box, keeping its aspect ratio, and
// draws it with upper half blocks.
func (t *Thumbnailer) Render(img image.Image) string {
	pxW, pxH := t.width, t.height*2
	canvas := image.NewRGBA(image.Rect(0, 0, pxW, pxH))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: backdrop}, image.Point{}, draw.Src)

	draw.ApproxBiLinear.Scale(canvas, fitRect(img.Bounds(), pxW, pxH), img, img.Bounds(), draw.Over, nil)

	var b strings.Builder
	for y := 0; y < pxH; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < pxW; x++ {
			top := canvas.RGBAAt(x, y)
			bottom := canvas.RGBAAt(x, y+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bottom))).
				Render("▀"))
		}
	}
	return b.String()
}

// fitRect returns the largest rectangle with src's aspect ratio centered in w x h.
func fitRect(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 {
		return image.Rect(0, 0, w, h)
	}
	dw, dh := w, sh*w/sw
	if dh > h {
		dw, dh = sw*h/sh, h
	}
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	x0, y0 := (w-dw)/2, (h-dh)/2
	return image.Rect(x0, y0, x0+dw, y0+dh)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
