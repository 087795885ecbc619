package ui

import "sort"

type point struct {
	X, Y float64
}

// sparklinePoints maps values onto a w×h box anchored at the origin, oldest
// sample on the left. All series sharing a plot should pass the same peak.
func sparklinePoints(values []int, peak int, w, h float64) []point {
	if len(values) < 2 || w <= 0 || h <= 0 {
		return nil
	}
	if peak < 1 {
		peak = 1
	}
	dx := w / float64(len(values)-1)
	pts := make([]point, len(values))
	for i, v := range values {
		frac := float64(v) / float64(peak)
		frac = min(max(frac, 0), 1)
		pts[i] = point{X: float64(i) * dx, Y: h - frac*h}
	}
	return pts
}

func seriesPeak(history map[string][]int) int {
	peak := 0
	for _, values := range history {
		for _, v := range values {
			peak = max(peak, v)
		}
	}
	return peak
}

func seriesNames(history map[string][]int) []string {
	names := make([]string, 0, len(history))
	for name := range history {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
