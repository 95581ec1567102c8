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
	"io"
	"unicode/utf8"

	libsiz "github.com/nabbar/cryptfiled/size"
)

// BufferDelim is an interface that extends io.ReadCloser and io.WriterTo with additional
// methods for reading delimited data from an input stream.
//
// It provides functionality to:
//   - Read data until a delimiter is encountered (Read, ReadBytes)
//   - Access buffered but unread data (UnRead)
//   - Copy data to a writer while respecting delimiters (WriteTo, Copy)
//   - Retrieve the current delimiter character (Delim)
//   - Obtain the reader as an io.ReadCloser (Reader)
//
// All read operations will include the delimiter character in the returned data.
// When EOF is reached, the methods return io.EOF error along with any remaining data.
//
// After Close() is called, all subsequent operations will return ErrInstance.
type BufferDelim interface {
	io.ReadCloser
	io.WriterTo

	// Delim returns the delimiter rune used to separate data chunks.
	Delim() rune

	// Reader returns the BufferDelim itself as an io.ReadCloser.
	// This is useful when you need to pass the delimited reader to functions
	// expecting a standard io.ReadCloser interface.
	Reader() io.ReadCloser

	// Copy reads from the BufferDelim and writes to w until EOF or an error occurs.
	// It returns the number of bytes written and any error encountered.
	// This is equivalent to calling WriteTo(w).
	//
	// The data is read in chunks delimited by the delimiter character,
	// and each chunk (including the delimiter) is written to w.
	Copy(w io.Writer) (n int64, err error)

	// ReadBytes reads until the first occurrence of the delimiter in the input,
	// returning a slice containing the data up to and including the delimiter.
	// If ReadBytes encounters an error before finding a delimiter, it returns
	// the data read before the error and the error itself (often io.EOF).
	//
	// Returns ErrInstance if the BufferDelim has been closed.
	ReadBytes() ([]byte, error)

	// UnRead returns the data currently buffered internally
	// that has not yet been read by any Read operation.
	//
	// The buffer is cleared: the returned data is not returned again by later reads.
	// Returns nil if no data is buffered, or ErrInstance if the BufferDelim has been closed.
	UnRead() ([]byte, error)
}

// New creates a new BufferDelim that reads from r, splitting the stream on delim.
//
// Parameters:
//   - r: the io.ReadCloser to read data from.
//   - delim: the rune used as delimiter. Common delimiters include '\n' for
//     newlines, ',' for CSV, '|' for pipes, '\t' for tabs, or any custom character.
//   - maxPartSize: the largest a single part (the bytes up to and including
//     the delimiter) is allowed to grow. If 0, defaultMaxPartSize is used.
//   - discardOnOverflow: optional, defaults to false. When a part exceeds
//     maxPartSize and this is true, the part is truncated to maxPartSize bytes
//     (its last byte replaced by the delimiter once one turns up) instead of
//     ReadBytes/Read returning ErrBufferFull.
//
// The returned BufferDelim must be closed when done to release the underlying reader.
//
// Example:
//
//	// Using default buffer size
//	bd := delim.New(file, '\n', 0, false)
//	defer bd.Close()
//
//	// Using a custom buffer size and discarding oversized parts
//	bd := delim.New(file, ',', 64*libsiz.SizeKilo, true)
//	defer bd.Close()
//
// See also: github.com/nabbar/cryptfiled/size package for convenient size constants.
func New(r io.ReadCloser, delim rune, maxPartSize libsiz.Size, discardOnOverflow ...bool) BufferDelim {
	var discard bool
	if len(discardOnOverflow) > 0 {
		discard = discardOnOverflow[0]
	}

	rd := make([]byte, utf8.RuneLen(delim))
	utf8.EncodeRune(rd, delim)

	return &dlm{
		i:  r,
		s:  maxPartSize,
		d:  discard,
		rn: delim,
		rd: rd,
	}
}
