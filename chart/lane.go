package chart

import "image"

// LaneLayout returns the position of each lane on the line starting at left
// using the default template.
func LaneLayout(left image.Point) []image.Point {
	return DefaultTemplate.Lanes(left)
}

// Lanes returns the position of each of the Lanes lanes on the line starting
// at left. All points share the row of left.
func (t Template) Lanes(left image.Point) []image.Point {
	lanes := make([]image.Point, Lanes)
	x := left.X + t.FirstLane
	for i := range lanes {
		lanes[i] = image.Pt(x, left.Y)
		x += t.LanePitch
	}
	return lanes
}
