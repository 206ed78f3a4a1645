package demo

import (
	"image/color"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
	"github.com/zeebo/xxh3"
)

// Styles of the demo program.
type Styles struct {
	Title    lipgloss.Style
	Meta     lipgloss.Style
	Body     lipgloss.Style
	Item     lipgloss.Style
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Heart    lipgloss.Style
	Subtle   lipgloss.Style
	Selected lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Foreground(charmtone.Charple).Bold(true),
		Meta:  lipgloss.NewStyle().Foreground(charmtone.Squid),
		Body:  lipgloss.NewStyle().Foreground(charmtone.Smoke),
		Item: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(charmtone.Squid).
			PaddingLeft(1),
		Header:   lipgloss.NewStyle().Foreground(charmtone.Dolly).Bold(true),
		Footer:   lipgloss.NewStyle().Foreground(charmtone.Squid).Italic(true),
		Status:   lipgloss.NewStyle().Foreground(charmtone.Smoke),
		Error:    lipgloss.NewStyle().Foreground(charmtone.Sriracha),
		Heart:    lipgloss.NewStyle().Foreground(charmtone.Charple),
		Subtle:   lipgloss.NewStyle().Foreground(charmtone.Squid),
		Selected: lipgloss.NewStyle().Foreground(charmtone.Guac),
	}
}

// Renderer draws demo records for the list.
type Renderer struct {
	styles    Styles
	chroma    *chroma.Style
	formatter chroma.Formatter
	// highlighted caches snippets by the hash of their language and code.
	highlighted map[uint64]string
}

func NewRenderer(s Styles) *Renderer {
	style := styles.Get("charm")
	if style == nil || style == styles.Fallback {
		style = styles.Get("monokai")
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &Renderer{
		styles:      s,
		chroma:      style,
		formatter:   formatter,
		highlighted: make(map[uint64]string),
	}
}

// Render draws a record at the given width. Collapsed records show the
// title and body; expanded ones add the highlighted snippet.
func (r *Renderer) Render(record *Record, key string, index, width int) string {
	inner := max(1, width-2)
	parts := []string{
		r.styles.Title.Render(record.Title),
		r.styles.Meta.Render(key[:min(8, len(key))]),
	}
	if record.Body != "" {
		parts = append(parts, r.styles.Body.Width(inner).Render(record.Body))
	}
	if record.Snippet != "" {
		if record.Expanded {
			parts = append(parts, r.Highlight(record.Snippet, record.Lang))
		} else {
			parts = append(parts, r.styles.Subtle.Render("▸ "+record.Lang+" snippet"))
		}
	}
	return r.styles.Item.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Highlight returns code with terminal syntax highlighting. Unknown
// languages are returned unchanged.
func (r *Renderer) Highlight(code, lang string) string {
	h := xxh3.HashString(lang + "\x00" + code)
	if out, ok := r.highlighted[h]; ok {
		return out
	}
	out := r.highlight(code, lang)
	r.highlighted[h] = out
	return out
}

func (r *Renderer) highlight(code, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	// Lexers may terminate the input with a newline.
	tokens := it.Tokens()
	if n := len(tokens); n > 0 && !strings.HasSuffix(code, "\n") {
		tokens[n-1].Value = strings.TrimSuffix(tokens[n-1].Value, "\n")
	}
	var b strings.Builder
	if err := r.formatter.Format(&b, r.chroma, chroma.Literator(tokens...)); err != nil {
		return code
	}
	return b.String()
}

// Gradient colors each grapheme of s on a blend from one color to another.
func Gradient(s string, base lipgloss.Style, from, to color.Color) string {
	n := uniseg.GraphemeClusterCount(s)
	if n == 0 {
		return ""
	}
	a, _ := colorful.MakeColor(from)
	b, _ := colorful.MakeColor(to)

	var out strings.Builder
	gr := uniseg.NewGraphemes(s)
	for i := 0; gr.Next(); i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c := a.BlendHcl(b, t).Clamped()
		out.WriteString(base.Foreground(lipgloss.Color(c.Hex())).Render(gr.Str()))
	}
	return out.String()
}
