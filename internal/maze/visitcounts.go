package maze

// visitCounts is a saturating per-cell visit counter, reset whenever the
// Navigator's map dimensions are (re)assigned.
type visitCounts struct {
	width, height int
	counts        []uint8
}

func newVisitCounts(width, height int) visitCounts {
	return visitCounts{width: width, height: height, counts: make([]uint8, width*height)}
}

func (v *visitCounts) index(x, y int) int {
	return y*v.width + x
}

func (v *visitCounts) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < v.width && y < v.height
}

// bump increments the visit count at (x,y), saturating at 255. It is a
// no-op out of bounds.
func (v *visitCounts) bump(x, y int) {
	if !v.inBounds(x, y) {
		return
	}
	i := v.index(x, y)
	if v.counts[i] < 255 {
		v.counts[i]++
	}
}

// seenAt returns the visit count at (x,y), or 255 (treated as "never
// seen less novel than anything actually seen") when out of bounds.
func (v *visitCounts) seenAt(x, y int) int {
	if !v.inBounds(x, y) {
		return 255
	}
	return int(v.counts[v.index(x, y)])
}
