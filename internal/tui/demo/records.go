package demo

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Record is one entry of the demo data set.
type Record struct {
	ID    string
	Title string
	Body  string
	// Lang and Snippet hold an optional code sample shown when the record
	// is expanded.
	Lang     string
	Snippet  string
	Expanded bool
}

// Key returns the record ID. It is the list's key function.
func Key(r *Record, _ int) string {
	return r.ID
}

var words = strings.Fields(`
	window buffer ledger offset height padding viewport scroll frame
	range record surface measure mount evict prepend append anchor
	origin header footer render reconcile settle idle delta target
	terminal row column cell glyph style layout content index key`)

var snippets = []struct {
	lang, code string
}{
	{"go", "func sum(xs []int) int {\n\tn := 0\n\tfor _, x := range xs {\n\t\tn += x\n\t}\n\treturn n\n}"},
	{"python", "def window(items, first, last):\n    return items[first:last + 1]"},
	{"json", "{\n  \"item_height\": 1,\n  \"leading_buffer\": 30,\n  \"trailing_buffer\": 30\n}"},
	{"bash", "for i in $(seq 1 3); do\n  vlist simulate --count 100000 --jump $((i * 1000))\ndone"},
	{"sql", "SELECT id, height\nFROM items\nWHERE top < 800\nORDER BY id;"},
}

// Generate returns n records. The same seed always yields the same
// records, IDs included.
func Generate(n int, seed int64) []*Record {
	rng := rand.New(rand.NewSource(seed))
	title := cases.Title(language.English)
	records := make([]*Record, n)
	for i := range records {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			// The reader never fails; keep the index as a unique key.
			id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprint(i)))
		}
		r := &Record{
			ID:    id.String(),
			Title: fmt.Sprintf("#%d %s", i, title.String(sentence(rng, 2+rng.Intn(4)))),
		}
		paragraphs := make([]string, rng.Intn(4))
		for p := range paragraphs {
			paragraphs[p] = sentence(rng, 6+rng.Intn(18))
		}
		r.Body = strings.Join(paragraphs, "\n")
		if rng.Intn(3) == 0 {
			s := snippets[rng.Intn(len(snippets))]
			r.Lang, r.Snippet = s.lang, s.code
		}
		records[i] = r
	}
	return records
}

func sentence(rng *rand.Rand, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[rng.Intn(len(words))]
	}
	parts[0] = strings.ToUpper(parts[0][:1]) + parts[0][1:]
	return strings.Join(parts, " ")
}
