package demo

import (
	"strings"

	"github.com/MakeNowJust/heredoc"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
)

var heart = heredoc.Doc(`
    ▄▄▄▄▄▄▄▄    ▄▄▄▄▄▄▄▄
  ███████████  ███████████
████████████████████████████
████████████████████████████
██████████▀██████▀██████████
██████████ ██████ ██████████
▀▀██████▄████▄▄████▄██████▀▀
  ████████████████████████
    ████████████████████
       ▀▀██████████▀▀
           ▀▀▀▀▀▀
`)

// Heartbit is the picture shown while the list has no records.
type Heartbit struct {
	face string
}

func NewHeartbit() *Heartbit {
	return &Heartbit{face: strings.TrimRight(heart, "\n")}
}

// Size returns the width and height of the picture.
func (h *Heartbit) Size() (int, int) {
	lines := strings.Split(h.face, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, ansi.StringWidth(line))
	}
	return width, len(lines)
}

// Draw implements uv.Drawable.
func (h *Heartbit) Draw(scr uv.Screen, area uv.Rectangle) {
	for y, line := range strings.Split(h.face, "\n") {
		if area.Min.Y+y >= area.Max.Y {
			return
		}
		x := 0
		gr := uniseg.NewGraphemes(line)
		for gr.Next() {
			w := max(1, gr.Width())
			if area.Min.X+x+w > area.Max.X {
				break
			}
			if content := gr.Str(); strings.TrimSpace(content) != "" {
				scr.SetCell(area.Min.X+x, area.Min.Y+y, &uv.Cell{
					Content: content,
					Width:   w,
				})
			}
			x += w
		}
	}
}

// Render draws the picture into a buffer of its own size.
func (h *Heartbit) Render() string {
	w, ht := h.Size()
	buf := uv.NewScreenBuffer(w, ht)
	h.Draw(buf, buf.Bounds())
	lines := strings.Split(buf.Render(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
