package sensitivity

import (
	"fmt"
	"math"
	"math/rand"
)

// Triangular is a {min, mode, max} triangular distribution.
type Triangular struct {
	Min  float64 `yaml:"min"`
	Mode float64 `yaml:"mode"`
	Max  float64 `yaml:"max"`
}

// Validate checks min <= mode <= max with a non-degenerate span.
func (t Triangular) Validate() error {
	if t.Min > t.Mode || t.Mode > t.Max {
		return fmt.Errorf("triangular {%g, %g, %g} must satisfy min <= mode <= max", t.Min, t.Mode, t.Max)
	}
	if t.Min >= t.Max {
		return fmt.Errorf("triangular {%g, %g, %g} has an empty range", t.Min, t.Mode, t.Max)
	}
	return nil
}

// Quantile maps a uniform u in [0, 1) onto the distribution by the inverse
// CDF.
func (t Triangular) Quantile(u float64) float64 {
	span := t.Max - t.Min
	if span <= 0 {
		return t.Min
	}
	cut := (t.Mode - t.Min) / span
	if u < cut {
		return t.Min + math.Sqrt(u*span*(t.Mode-t.Min))
	}
	return t.Max - math.Sqrt((1-u)*span*(t.Max-t.Mode))
}

// Sample draws one value using the provided generator.
func (t Triangular) Sample(rng *rand.Rand) float64 {
	return t.Quantile(rng.Float64())
}
