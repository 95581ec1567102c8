/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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
	"bytes"
	"io"
)

// Reader returns the BufferDelim itself as an io.ReadCloser.
func (o *dlm) Reader() io.ReadCloser {
	return o
}

// Copy reads from the BufferDelim and writes to w until EOF or an error occurs.
// It is equivalent to calling WriteTo(w).
func (o *dlm) Copy(w io.Writer) (n int64, err error) {
	return o.WriteTo(w)
}

// Read reads the next delimited part into p, expanding the local slice when p
// is too small to hold it. Callers that need the data back in their own
// buffer should prefer ReadBytes.
func (o *dlm) Read(p []byte) (n int, err error) {
	return o.readBuf(p)
}

func (o *dlm) readBuf(p []byte) (int, error) {
	o.m.Lock()
	defer o.m.Unlock()

	if o.closed {
		return 0, ErrInstance
	}

	part, err := o.nextPart()
	if len(part) > cap(p) {
		p = append(p[:0], part...) // nolint
	} else {
		copy(p, part)
	}

	return len(part), err
}

// UnRead returns the data currently buffered but not yet returned by Read or
// ReadBytes, clearing the internal buffer in the process.
func (o *dlm) UnRead() ([]byte, error) {
	o.m.Lock()
	defer o.m.Unlock()

	if o.closed {
		return nil, ErrInstance
	}

	if len(o.b) == 0 {
		return nil, nil
	}

	b := o.b
	o.b = nil

	return b, nil
}

// ReadBytes reads until the first occurrence of the delimiter in the input,
// returning a slice containing the data up to and including the delimiter.
//
//   - If the delimiter is found, returns all data up to and including it.
//   - If EOF is reached before finding a delimiter, returns the remaining data with io.EOF.
//   - If the part exceeds the configured maximum size and overflow discarding
//     was not requested, returns ErrBufferFull along with the buffered data.
//   - If overflow discarding was requested, the part is truncated to the
//     maximum size, with its last byte replaced by the delimiter once one is
//     eventually found in the discarded tail.
func (o *dlm) ReadBytes() ([]byte, error) {
	o.m.Lock()
	defer o.m.Unlock()

	if o.closed {
		return nil, ErrInstance
	}

	return o.nextPart()
}

// Close closes the BufferDelim and releases the underlying reader. After
// Close, every other operation returns ErrInstance. Closing twice panics,
// matching the nil-pointer behavior of closing an already-released resource.
func (o *dlm) Close() error {
	o.m.Lock()
	defer o.m.Unlock()

	err := o.i.Close()

	o.closed = true
	o.i = nil
	o.b = nil

	return err
}

// WriteTo reads the input in delimiter-separated parts and writes each one
// (including the delimiter) to w, until EOF, a read error (such as
// ErrBufferFull for a part over the size limit) or a write error occurs.
func (o *dlm) WriteTo(w io.Writer) (n int64, err error) {
	var (
		b []byte
		e error
		i int
	)

	for err == nil {
		b, err = o.ReadBytes()

		if len(b) > 0 {
			i, e = w.Write(b)
			n += int64(i)
		}

		if err == nil && e != nil {
			err = e
		}
	}

	return n, err
}

// nextPart implements the delimiter scanning and overflow handling. The
// caller must hold o.m.
func (o *dlm) nextPart() ([]byte, error) {
	for {
		if idx := o.indexDelim(); idx >= 0 {
			return o.takeBuf(idx + len(o.rd)), nil
		}

		max := o.maxPartSize()
		if len(o.b) >= max {
			return o.overflow()
		}

		before := len(o.b)
		err := o.fill()

		if idx := o.indexDelim(); idx >= 0 {
			return o.takeBuf(idx + len(o.rd)), nil
		}

		if err != nil {
			if len(o.b) == 0 {
				return nil, err
			}

			return o.takeBuf(len(o.b)), err
		}

		if len(o.b) == before {
			continue
		}
	}
}

func (o *dlm) indexDelim() int {
	if len(o.rd) == 0 {
		return -1
	}

	return bytes.Index(o.b, o.rd)
}

// overflow handles a part that reached the maximum size without finding a
// delimiter. The caller must hold o.m.
func (o *dlm) overflow() ([]byte, error) {
	if !o.d {
		return o.takeBuf(len(o.b)), ErrBufferFull
	}

	found, err := o.discardUntilDelim()
	out := o.takeBuf(len(o.b))

	if found && len(out) > 0 {
		out = out[:len(out)-len(o.rd)]
		out = append(out, o.rd...)
		return out, nil
	}

	return out, err
}

// discardUntilDelim reads from the underlying stream one byte at a time,
// without growing the buffer, until the delimiter is found or the stream
// ends. It bounds memory use for oversized parts at the cost of throughput.
func (o *dlm) discardUntilDelim() (bool, error) {
	tail := make([]byte, 0, len(o.rd))
	tmp := make([]byte, 1)

	for {
		n, err := o.i.Read(tmp)

		if n > 0 {
			if len(tail) == cap(tail) && cap(tail) > 0 {
				copy(tail, tail[1:])
				tail = tail[:len(tail)-1]
			}
			tail = append(tail, tmp[0])

			if bytes.Equal(tail, o.rd) {
				return true, nil
			}
		}

		if err != nil {
			return false, err
		}
	}
}

// fill reads up to the remaining capacity of the part into the buffer. The
// caller must hold o.m.
func (o *dlm) fill() error {
	max := o.maxPartSize()
	if len(o.b) >= max {
		return nil
	}

	need := max - len(o.b)
	tmp := make([]byte, need)

	n, err := o.i.Read(tmp)
	if n > 0 {
		o.b = append(o.b, tmp[:n]...)
	}

	return err
}

// takeBuf removes and returns the first n bytes of the buffer, sliding any
// remainder to the front. The caller must hold o.m.
func (o *dlm) takeBuf(n int) []byte {
	if n > len(o.b) {
		n = len(o.b)
	}

	out := make([]byte, n)
	copy(out, o.b[:n])

	rem := len(o.b) - n
	if rem > 0 {
		copy(o.b, o.b[n:])
	}
	o.b = o.b[:rem]

	return out
}
