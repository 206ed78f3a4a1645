package list

// viewport is the scroll container of the list. Its content is the header,
// the padded window and the footer.
type viewport struct {
	top    int
	width  int
	height int

	content func() int
}

func (v *viewport) ScrollTop() int {
	return v.top
}

func (v *viewport) Height() int {
	return v.height
}

func (v *viewport) ClientHeight() int {
	return v.height
}

func (v *viewport) ScrollHeight() int {
	if v.content == nil {
		return 0
	}
	return v.content()
}

// SetScrollTop moves the viewport, clamped to the scrollable extent.
func (v *viewport) SetScrollTop(top int) {
	v.top = v.clampTop(top)
}

func (v *viewport) maxScrollTop() int {
	return max(0, v.ScrollHeight()-v.height)
}

func (v *viewport) clampTop(top int) int {
	return min(max(top, 0), v.maxScrollTop())
}

// clamp keeps the position valid after the content shrank. It reports
// whether the position moved.
func (v *viewport) clamp() bool {
	top := v.clampTop(v.top)
	if top == v.top {
		return false
	}
	v.top = top
	return true
}
