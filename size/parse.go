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
	"strconv"
	"strings"
)

var unitMultiplier = map[string]Size{
	"B":  SizeUnit,
	"K":  SizeKilo,
	"KB": SizeKilo,
	"M":  SizeMega,
	"MB": SizeMega,
	"G":  SizeGiga,
	"GB": SizeGiga,
	"T":  SizeTera,
	"TB": SizeTera,
	"P":  SizePeta,
	"PB": SizePeta,
	"E":  SizeExa,
	"EB": SizeExa,
}

// Parse decodes a human-written size such as "10MB", "1.5GB" or "512" + unit
// into a Size. Spaces between a number and its unit are skipped, so the
// String() form ("5.00 MB") parses back. Leading/trailing whitespace and a single pair of matching
// quotes are trimmed first; a leading '+' is accepted, a leading '-' is
// rejected since a Size cannot be negative.
func Parse(in string) (Size, error) {
	raw := strings.TrimSpace(in)
	if len(raw) >= 2 {
		if (raw[0] == '"' && raw[len(raw)-1] == '"') || (raw[0] == '\'' && raw[len(raw)-1] == '\'') {
			raw = strings.TrimSpace(raw[1 : len(raw)-1])
		}
	}

	if raw == "" {
		return SizeNul, fmt.Errorf("invalid size: empty value")
	}

	if strings.HasPrefix(raw, "-") {
		return SizeNul, fmt.Errorf("invalid size %q: negative values are not allowed", in)
	}

	raw = strings.TrimPrefix(raw, "+")

	var total float64
	rest := raw
	matched := false

	for len(rest) > 0 {
		numEnd := 0
		dots := 0

		for numEnd < len(rest) && (isDigit(rest[numEnd]) || rest[numEnd] == '.') {
			if rest[numEnd] == '.' {
				dots++
				if dots > 1 {
					return SizeNul, fmt.Errorf("invalid size %q: malformed number", in)
				}
			}
			numEnd++
		}

		if numEnd == 0 {
			return SizeNul, fmt.Errorf("invalid size %q: missing numeric value", in)
		}

		numPart := rest[:numEnd]
		rest = strings.TrimLeft(rest[numEnd:], " ")

		unitEnd := 0
		for unitEnd < len(rest) && isAlpha(rest[unitEnd]) {
			unitEnd++
		}

		if unitEnd == 0 {
			return SizeNul, fmt.Errorf("invalid size %q: missing unit", in)
		}

		unitPart := strings.ToUpper(rest[:unitEnd])
		rest = rest[unitEnd:]

		mul, ok := unitMultiplier[unitPart]
		if !ok {
			return SizeNul, fmt.Errorf("invalid size %q: unknown unit %q", in, unitPart)
		}

		val, err := strconv.ParseFloat(numPart, 64)
		if err != nil {
			return SizeNul, fmt.Errorf("invalid size %q: %w", in, err)
		}

		total += val * float64(mul)
		matched = true
	}

	if !matched {
		return SizeNul, fmt.Errorf("invalid size %q: missing unit", in)
	}

	if total > float64(^uint64(0)) {
		return SizeNul, fmt.Errorf("invalid size %q: value overflows", in)
	}

	return Size(total), nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ParseByte is Parse over a byte slice, avoiding an allocation when the
// caller already holds one (e.g. a config file line).
func ParseByte(in []byte) (Size, error) {
	return Parse(string(in))
}

// ParseSize is a deprecated alias of Parse, kept for call sites migrated
// from the previous generic config decoder.
func ParseSize(in string) (Size, error) {
	return Parse(in)
}

// ParseByteAsSize is a deprecated alias of ParseByte.
func ParseByteAsSize(in []byte) (Size, error) {
	return ParseByte(in)
}

// GetSize is a deprecated, error-swallowing variant of Parse.
func GetSize(in string) (Size, bool) {
	s, err := Parse(in)
	if err != nil {
		return SizeNul, false
	}
	return s, true
}
