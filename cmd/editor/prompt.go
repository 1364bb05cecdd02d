package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Prompt is a one-line text input drawn over the editor. Enter calls the
// callback with the typed text; Escape closes it without calling back.
type Prompt struct {
	open    bool
	label   string
	input   []rune
	onEnter func(string)
	back    *ebiten.Image
}

func NewPrompt() *Prompt { return &Prompt{} }

func (p *Prompt) IsOpen() bool { return p.open }

func (p *Prompt) Open(label, initial string, onEnter func(string)) {
	p.label = label
	p.input = []rune(initial)
	p.onEnter = onEnter
	p.open = true
}

func (p *Prompt) Close() {
	p.open = false
	p.label = ""
	p.input = nil
	p.onEnter = nil
}

// Update consumes keyboard input while the prompt is open and reports
// whether it did.
func (p *Prompt) Update() bool {
	if !p.open {
		return false
	}
	p.input = ebiten.AppendInputChars(p.input)
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(p.input) > 0 {
		p.input = p.input[:len(p.input)-1]
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		cur, cb := string(p.input), p.onEnter
		p.Close()
		if cb != nil {
			cb(cur)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		p.Close()
	}
	return true
}

func (p *Prompt) Draw(screen *ebiten.Image) {
	if !p.open {
		return
	}
	sw := screen.Bounds().Dx()
	sh := screen.Bounds().Dy()
	if p.back == nil || p.back.Bounds().Dx() != sw {
		p.back = ebiten.NewImage(sw, 48)
		p.back.Fill(color.RGBA{A: 0xcc})
	}
	o := &ebiten.DrawImageOptions{}
	o.GeoM.Translate(0, float64(sh/2-24))
	screen.DrawImage(p.back, o)
	ebitenutil.DebugPrintAt(screen, p.label+" "+string(p.input)+"_", 16, sh/2-8)
}
