package list

import "strings"

// surface is the rendered form of a mounted record.
type surface[T any] struct {
	record T
	key    string
	index  int
	lines  []string
}

func (s *surface[T]) Height() int {
	return len(s.lines)
}

// slot is a header, footer or empty state rendered from a callback.
type slot struct {
	render func() string
	lines  []string
}

func (s *slot) Height() int {
	return len(s.lines)
}

func (s *slot) refresh() {
	if s.render == nil {
		s.lines = nil
		return
	}
	s.lines = splitLines(s.render())
}

func splitLines(view string) []string {
	if view == "" {
		return nil
	}
	return strings.Split(view, "\n")
}
