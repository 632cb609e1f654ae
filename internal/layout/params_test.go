package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 0, p.HeaderLines)
	assert.Equal(t, 1, p.TargetColumns)
	assert.Equal(t, 0.001, p.LineHighpass)
	assert.NoError(t, p.Validate())
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		valid  bool
	}{
		{"defaults", DefaultParams(), true},
		{"header lines", Params{HeaderLines: 3, TargetColumns: 2, LineHighpass: 0.5}, true},
		{"highpass one", Params{TargetColumns: 1, LineHighpass: 1}, true},
		{"negative header lines", Params{HeaderLines: -1, TargetColumns: 1, LineHighpass: 0.1}, false},
		{"zero columns", Params{TargetColumns: 0, LineHighpass: 0.1}, false},
		{"zero highpass", Params{TargetColumns: 1, LineHighpass: 0}, false},
		{"highpass above one", Params{TargetColumns: 1, LineHighpass: 1.5}, false},
		{"highpass NaN", Params{TargetColumns: 1, LineHighpass: math.NaN()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidParams), "got %v", err)
		})
	}
}
