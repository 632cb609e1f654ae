package layout

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidParams is returned by Params.Validate and by Segment.
var ErrInvalidParams = errors.New("invalid segmentation parameters")

// Params tunes automatic segmentation.
type Params struct {
	// HeaderLines is how many title lines to peel off the top of the page
	// before looking for columns.
	HeaderLines int `json:"header_lines"`

	// TargetColumns caps the number of columns. Fewer may be found.
	TargetColumns int `json:"columns"`

	// LineHighpass is the fraction of a column's densest row below which a
	// row counts as blank when looking for line bands.
	LineHighpass float64 `json:"highpass"`
}

// DefaultParams returns no header lines, a single column and a high-pass
// of 0.001.
func DefaultParams() Params {
	return Params{
		HeaderLines:   0,
		TargetColumns: 1,
		LineHighpass:  0.001,
	}
}

// Validate reports the first out-of-range field, wrapping ErrInvalidParams.
func (p Params) Validate() error {
	if p.HeaderLines < 0 {
		return errors.Wrapf(ErrInvalidParams, "header lines must not be negative, got %d", p.HeaderLines)
	}
	if p.TargetColumns < 1 {
		return errors.Wrapf(ErrInvalidParams, "target columns must be at least 1, got %d", p.TargetColumns)
	}
	if math.IsNaN(p.LineHighpass) || p.LineHighpass <= 0 || p.LineHighpass > 1 {
		return errors.Wrapf(ErrInvalidParams, "line highpass must be in (0,1], got %g", p.LineHighpass)
	}
	return nil
}
