package roomextract

// dilate grows foreground by one structuring-element pass: a cell becomes
// foreground if any cell in its kxk neighborhood is foreground.
func dilate(g *grid, k int) *grid {
	out := newGrid(g.width, g.height)
	radius := k / 2
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			found := false
			for dy := -radius; dy <= radius && !found; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					if g.at(x+dx, y+dy) {
						found = true
						break
					}
				}
			}
			out.set(x, y, found)
		}
	}
	return out
}

// erode shrinks foreground by one structuring-element pass: a cell stays
// foreground only if every cell in its kxk neighborhood is foreground.
// Cells outside the canvas count as background, so foreground touching the
// border erodes away there -- this matches a square structuring element
// applied to a finite canvas.
func erode(g *grid, k int) *grid {
	out := newGrid(g.width, g.height)
	radius := k / 2
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			all := true
			for dy := -radius; dy <= radius && all; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					if !g.at(x+dx, y+dy) {
						all = false
						break
					}
				}
			}
			out.set(x, y, all)
		}
	}
	return out
}

// closeThenOpen applies a morphological closing (dilate, erode) followed by
// an opening (erode, dilate) with a kxk square structuring element, per
// §4.2 step 4. Closing fills pinhole gaps where wall segments nearly meet;
// opening strips isolated interior pixels the closing produced. Order
// matters: close before open.
func closeThenOpen(g *grid, k int) *grid {
	closed := erode(dilate(g, k), k)
	opened := dilate(erode(closed, k), k)
	return opened
}
