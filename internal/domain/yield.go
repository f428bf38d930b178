package domain

import (
	"math"
	"strconv"
)

// Yield is a yield percentage that may be absent. The zero value is absent.
type Yield struct {
	value   float64
	present bool
}

// SomeYield returns a present yield.
func SomeYield(v float64) Yield {
	return Yield{value: v, present: true}
}

// AbsentYield returns the absent yield.
func AbsentYield() Yield {
	return Yield{}
}

// Value returns the yield and whether it is present.
func (y Yield) Value() (float64, bool) {
	return y.value, y.present
}

// Present reports whether a value was obtained, even a non-finite one.
func (y Yield) Present() bool {
	return y.present
}

// Usable reports whether the yield is present and finite.
func (y Yield) Usable() bool {
	return y.present && !math.IsNaN(y.value) && !math.IsInf(y.value, 0)
}

func (y Yield) String() string {
	if !y.present {
		return "n/a"
	}
	return strconv.FormatFloat(y.value, 'f', -1, 64)
}

// Ptr returns the value as a pointer, nil when not usable.
func (y Yield) Ptr() *float64 {
	if !y.Usable() {
		return nil
	}
	v := y.value
	return &v
}
