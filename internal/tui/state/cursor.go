package state

// Down moves the selection to the next row, wrapping from the last row to the first.
// With no rows the selection is returned unchanged.
func Down(sel, k int) int {
	if k <= 0 {
		return sel
	}
	return (Clamp(sel, k) + 1) % k
}

// Up moves the selection to the previous row, wrapping from the first row to the last.
func Up(sel, k int) int {
	if k <= 0 {
		return sel
	}
	return (Clamp(sel, k) + k - 1) % k
}

// Clamp keeps sel inside [0, k). With no rows it returns 0.
func Clamp(sel, k int) int {
	if k <= 0 || sel < 0 {
		return 0
	}
	if sel >= k {
		return k - 1
	}
	return sel
}
