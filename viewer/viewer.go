// Package viewer opens desktop windows displaying rendered images.
//
// It is a thin wrapper around ebiten's game loop: the window shows one
// static image and closes on Escape, the letter q, or the window close
// button. Show blocks until then.
package viewer

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ErrNoImage reports a Show call without a displayable image.
var ErrNoImage = errors.New("viewer: no image to display")

// Show opens a window displaying img and blocks until the user closes
// it with Escape, q, or the window close button.
//
// Ebiten requires its event loop to run on the main goroutine; so does
// Show.
func Show(img image.Image, title string) error {
	if img == nil {
		return ErrNoImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ErrNoImage
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	return ebiten.RunGame(&imageGame{src: img})
}

type imageGame struct {
	src image.Image
	tex *ebiten.Image
}

func (g *imageGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *imageGame) Draw(screen *ebiten.Image) {
	if g.tex == nil {
		g.tex = ebiten.NewImageFromImage(g.src)
	}
	screen.DrawImage(g.tex, nil)
}

func (g *imageGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.src.Bounds()
	return b.Dx(), b.Dy()
}
