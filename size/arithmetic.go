/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2025 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package size

import (
	"fmt"
	"math"
)

const maxSize = Size(math.MaxUint64)

// Mul multiplies the Size in place by m, rounding up fractional results and
// saturating at the maximum representable Size instead of wrapping.
func (s *Size) Mul(m float64) {
	_ = s.MulErr(m)
}

// MulErr is Mul, reporting an overflow instead of silently saturating.
func (s *Size) MulErr(m float64) error {
	if m <= 0 {
		*s = SizeNul
		return nil
	}

	r := math.Ceil(float64(*s) * m)
	if r > float64(maxSize) {
		*s = maxSize
		return fmt.Errorf("size overflow: result exceeds maximum representable size")
	}

	*s = Size(r)
	return nil
}

// Div divides the Size in place by d, rounding up fractional results.
func (s *Size) Div(d float64) {
	_ = s.DivErr(d)
}

// DivErr is Div, reporting an error on a zero or negative divisor instead of
// leaving the Size unchanged.
func (s *Size) DivErr(d float64) error {
	if d <= 0 {
		return fmt.Errorf("invalid diviser %v: must be strictly positive", d)
	}

	*s = Size(math.Ceil(float64(*s) / d))
	return nil
}

// Add increases the Size in place by v, saturating at the maximum
// representable Size on overflow.
func (s *Size) Add(v uint64) {
	_ = s.AddErr(v)
}

// AddErr is Add, reporting the overflow instead of silently saturating.
func (s *Size) AddErr(v uint64) error {
	r := uint64(*s) + v
	if r < uint64(*s) {
		*s = maxSize
		return fmt.Errorf("size overflow: addition exceeds maximum representable size")
	}

	*s = Size(r)
	return nil
}

// Sub decreases the Size in place by v, saturating at zero on underflow.
func (s *Size) Sub(v uint64) {
	_ = s.SubErr(v)
}

// SubErr is Sub, reporting the underflow instead of silently saturating.
func (s *Size) SubErr(v uint64) error {
	if v > uint64(*s) {
		*s = SizeNul
		return fmt.Errorf("size underflow: subtraction below zero")
	}

	*s = Size(uint64(*s) - v)
	return nil
}
