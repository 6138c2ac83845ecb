package visualize

import "golang.org/x/image/math/fixed"

// fixedPoint converts integer pixel coordinates into the fixed-point
// coordinates golang.org/x/image/font.Drawer expects.
func fixedPoint(x, y int) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.I(x),
		Y: fixed.I(y),
	}
}
