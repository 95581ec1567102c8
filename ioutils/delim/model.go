/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package delim

import (
	"io"
	"sync"

	libsiz "github.com/nabbar/cryptfiled/size"
)

// defaultMaxPartSize bounds a part's size when the caller did not request one,
// keeping a single unterminated stream from growing the internal buffer without limit.
const defaultMaxPartSize = 32 * 1024

// dlm is the internal implementation of the BufferDelim interface.
//
// It accumulates bytes read from i into b until the delimiter is found,
// growing b up to the configured maximum part size s (or defaultMaxPartSize
// when s is zero). Past that point, d decides whether the part is truncated
// (discarding everything read beyond the limit, up to and including the next
// delimiter) or whether ErrBufferFull is returned.
//
// Fields:
//   - i: the underlying input stream
//   - b: bytes buffered but not yet returned to a caller
//   - s: maximum size of a single part, 0 meaning defaultMaxPartSize
//   - d: discard overflow instead of returning ErrBufferFull
//   - rn: the delimiter, as given by the caller
//   - rd: the delimiter, UTF-8 encoded, used for buffer scanning
type dlm struct {
	m sync.Mutex

	i io.ReadCloser
	b []byte
	s libsiz.Size
	d bool

	rn rune
	rd []byte

	closed bool
}

// Delim returns the delimiter rune configured for this BufferDelim instance.
// This value is set during construction via New() and remains constant for the lifetime of the instance.
func (o *dlm) Delim() rune {
	return o.rn
}

func (o *dlm) maxPartSize() int {
	if o.s > 0 {
		return o.s.Int()
	}

	return defaultMaxPartSize
}
