package layout

import "sort"

// span is a half-open run [start, end) of profile indices.
type span struct {
	start int
	end   int
}

func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// highPass returns a copy of values with everything below cutoff zeroed.
func highPass(values []int, cutoff float64) []int {
	out := make([]int, len(values))
	for i, v := range values {
		if float64(v) >= cutoff {
			out[i] = v
		}
	}
	return out
}

// highPassMedian zeroes values below scale times the median.
func highPassMedian(values []int, scale float64) []int {
	return highPass(values, median(values)*scale)
}

// highPassMax zeroes values below scale times the maximum.
func highPassMax(values []int, scale float64) []int {
	m := 0
	for _, v := range values {
		m = max(m, v)
	}
	return highPass(values, float64(m)*scale)
}

// runs returns the maximal runs of non-zero values. A run still open at
// the end of the profile is closed there.
func runs(values []int) []span {
	var out []span
	start := -1
	for i, v := range values {
		switch {
		case v != 0 && start < 0:
			start = i
		case v == 0 && start >= 0:
			out = append(out, span{start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, span{start: start, end: len(values)})
	}
	return out
}
