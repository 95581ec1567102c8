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
	"sync/atomic"
)

// Size is a number of bytes, with power-of-1024 constants and human-readable
// formatting. It is used throughout the transport and storage layers to
// express buffer sizes, page sizes and file lengths without losing the
// original magnitude the caller meant (KB, MB, ...).
type Size uint64

const (
	SizeNul  Size = 0
	SizeUnit Size = 1
	SizeKilo Size = SizeUnit << 10
	SizeMega Size = SizeKilo << 10
	SizeGiga Size = SizeMega << 10
	SizeTera Size = SizeGiga << 10
	SizePeta Size = SizeTera << 10
	SizeExa  Size = SizePeta << 10
)

// Format layout constants, compatible with fmt's %f verb.
const (
	FormatRound0 = "%.0f"
	FormatRound1 = "%.1f"
	FormatRound2 = "%.2f"
	FormatRound3 = "%.3f"
)

var defaultUnit atomic.Int32

func init() {
	defaultUnit.Store('B')
}

// SetDefaultUnit changes the rune appended to the unit Code when none is
// given explicitly (a rune of 0). Standard usage is 'B' for the SI-like
// "KB/MB/GB" suffixes this package produces; a rune of 0 restores 'B'.
func SetDefaultUnit(r rune) {
	if r == 0 {
		r = 'B'
	}
	defaultUnit.Store(int32(r))
}

type unitStep struct {
	size Size
	code string
}

var steps = []unitStep{
	{SizeExa, "E"},
	{SizePeta, "P"},
	{SizeTera, "T"},
	{SizeGiga, "G"},
	{SizeMega, "M"},
	{SizeKilo, "K"},
}

// Unit returns the scale letter ("", "K", "M", "G", "T", "P", "E") matching
// the magnitude of the Size, followed by the given suffix rune (or the
// package default when r is 0).
func (s Size) Unit(r rune) string {
	if r == 0 {
		r = rune(defaultUnit.Load())
	}

	for _, st := range steps {
		if s >= st.size {
			return st.code + string(r)
		}
	}

	return string(r)
}

// Code behaves like Unit but reads more naturally on a constant: SizeKilo.Code(0) == "KB".
func (s Size) Code(r rune) string {
	return s.Unit(r)
}

func (s Size) scale() (value float64, unit string) {
	for _, st := range steps {
		if s >= st.size {
			return float64(s) / float64(st.size), st.code + string(rune(defaultUnit.Load()))
		}
	}

	return float64(s), string(rune(defaultUnit.Load()))
}

// Format renders the scaled numeric value using the given fmt verb
// (e.g. FormatRound2), without any unit suffix.
func (s Size) Format(layout string) string {
	v, _ := s.scale()
	return fmt.Sprintf(layout, v)
}

// String implements fmt.Stringer, rendering with two decimals and the
// matching unit suffix (e.g. "5.50 MB").
func (s Size) String() string {
	_, u := s.scale()
	return fmt.Sprintf("%s %s", s.Format(FormatRound2), u)
}

func (s Size) KiloBytes() uint64 { return uint64(s / SizeKilo) }
func (s Size) MegaBytes() uint64 { return uint64(s / SizeMega) }
func (s Size) GigaBytes() uint64 { return uint64(s / SizeGiga) }
func (s Size) TeraBytes() uint64 { return uint64(s / SizeTera) }
func (s Size) PetaBytes() uint64 { return uint64(s / SizePeta) }
func (s Size) ExaBytes() uint64  { return uint64(s / SizeExa) }

func (s Size) Uint64() uint64   { return uint64(s) }
func (s Size) Uint32() uint32   { return uint32(s) }
func (s Size) Uint() uint       { return uint(s) }
func (s Size) Int64() int64     { return int64(min(s, math.MaxInt64)) }
func (s Size) Int32() int32     { return int32(min(s, math.MaxInt32)) }
func (s Size) Int() int         { return int(s) }
func (s Size) Float64() float64 { return float64(s) }
func (s Size) Float32() float32 { return float32(s) }

// ParseInt64 converts a signed count of bytes into a Size, taking the
// absolute value since a Size cannot be negative.
func ParseInt64(v int64) Size {
	if v < 0 {
		return Size(uint64(-v))
	}
	return Size(uint64(v))
}

// ParseUint64 converts an unsigned count of bytes into a Size.
func ParseUint64(v uint64) Size { return Size(v) }

// ParseFloat64 converts a floating-point count of bytes into a Size,
// flooring fractional values, taking the absolute value, and saturating at
// the maximum representable Size instead of wrapping.
func ParseFloat64(v float64) Size {
	if v < 0 {
		v = -math.Floor(v)
	} else {
		v = math.Floor(v)
	}

	if v >= float64(maxSize) {
		return maxSize
	}

	return Size(v)
}

// SizeFromInt64 is an alias of ParseInt64.
func SizeFromInt64(v int64) Size { return ParseInt64(v) }

// SizeFromUint64 is an alias of ParseUint64.
func SizeFromUint64(v uint64) Size { return ParseUint64(v) }

// SizeFromFloat64 is an alias of ParseFloat64.
func SizeFromFloat64(v float64) Size { return ParseFloat64(v) }
