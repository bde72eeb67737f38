// Package shared holds value types used by more than one aggregate.
package shared

import (
	"encoding/json"
	"fmt"
	"math"
)

// Hundredths is a fixed-point number with two decimal places, used for
// prices, transaction amounts and commission rates. 1999 means 19.99.
type Hundredths int64

// HundredthsFromFloat rounds f to the nearest hundredth.
func HundredthsFromFloat(f float64) Hundredths {
	return Hundredths(math.Round(f * 100))
}

func (h Hundredths) Float64() float64 {
	return float64(h) / 100
}

func (h Hundredths) String() string {
	sign := ""
	v := int64(h)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON renders the value as a JSON number with two decimals.
func (h Hundredths) MarshalJSON() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hundredths) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decimal value expected: %w", err)
	}
	*h = HundredthsFromFloat(f)
	return nil
}
