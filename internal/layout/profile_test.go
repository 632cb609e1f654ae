package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 3.0, median([]int{5, 1, 3}))
	assert.Equal(t, 2.5, median([]int{4, 1, 3, 2}))

	values := []int{3, 1, 2}
	median(values)
	assert.Equal(t, []int{3, 1, 2}, values, "input must not be reordered")
}

func TestHighPassMedian(t *testing.T) {
	// Median is 10, so anything below 2 goes.
	got := highPassMedian([]int{0, 10, 10, 10, 1, 10, 10, 10, 0}, 0.20)
	assert.Equal(t, []int{0, 10, 10, 10, 0, 10, 10, 10, 0}, got)
}

func TestHighPassMax(t *testing.T) {
	got := highPassMax([]int{1, 50, 4, 100, 5}, 0.05)
	assert.Equal(t, []int{0, 50, 0, 100, 5}, got)

	assert.Equal(t, []int{0, 0}, highPassMax([]int{0, 0}, 0.5))
}

func TestRuns(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   []span
	}{
		{"empty", nil, nil},
		{"all zero", []int{0, 0, 0}, nil},
		{"inner", []int{0, 1, 1, 0, 2, 0}, []span{{1, 3}, {4, 5}}},
		{"open at end", []int{0, 3, 3}, []span{{1, 3}}},
		{"whole", []int{4, 4}, []span{{0, 2}}},
		{"single last", []int{0, 0, 7}, []span{{2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runs(tt.values))
		})
	}
}
