package state

// Viewport is the vertical scroll window over the rendered grid rows.
type Viewport struct {
	Offset int
}

// Home scrolls to the top.
func (v *Viewport) Home() bool {
	old := v.Offset
	v.Offset = 0
	return old != v.Offset
}

// End scrolls so the last row is visible.
func (v *Viewport) End(total, visible int) bool {
	old := v.Offset
	v.Offset = maxOffset(total, visible)
	return old != v.Offset
}

// ScrollBy moves the window by delta rows, clamped to the content.
func (v *Viewport) ScrollBy(delta, total, visible int) bool {
	old := v.Offset
	v.Offset += delta
	v.Clamp(total, visible)
	return old != v.Offset
}

// Clamp keeps the offset inside the content.
func (v *Viewport) Clamp(total, visible int) {
	if v.Offset < 0 {
		v.Offset = 0
	}
	if max := maxOffset(total, visible); v.Offset > max {
		v.Offset = max
	}
}

// Window returns the half-open range of visible rows.
func (v Viewport) Window(total, visible int) (start, end int) {
	if visible <= 0 || total <= visible {
		return 0, total
	}
	v.Clamp(total, visible)
	return v.Offset, v.Offset + visible
}

func maxOffset(total, visible int) int {
	if visible <= 0 {
		return 0
	}
	max := total - visible
	if max < 0 {
		return 0
	}
	return max
}
