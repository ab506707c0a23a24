package transcript

// ActiveSegmentIndex returns the index of the segment covering playback time
// t, or -1 when no segment is active. Segments are ordered, so the first hit
// wins.
func ActiveSegmentIndex(segments []Segment, t float64) int {
	for i, s := range segments {
		if t >= s.Start && t <= s.End {
			return i
		}
	}
	return -1
}
