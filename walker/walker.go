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

package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	liberr "github.com/nabbar/cryptfiled/errors"
)

// writeEntry appends one formatted listing line to b.
func writeEntry(b *strings.Builder, size int64, path string) {
	_, _ = fmt.Fprintf(b, "%-*d %s\r\n", sizeFieldWidth, size, path)
}

// sizeOf resolves the size lstat would report for the entry (symlinks are
// not followed), matching the symlink-not-followed classification used for
// Walk*'s own recursion decision (IsDir). Directories report their own
// stat size; an entry that cannot be stat'ed reports 0.
func sizeOf(e fs.DirEntry) int64 {
	info, err := e.Info()
	if err != nil {
		return 0
	}
	return info.Size()
}

// WalkOne lists the immediate children of root, one line per entry, and
// appends the "." terminator. Entries are ordered lexically by name,
// since Go's directory read does not preserve on-disk order the way the
// source's raw readdir() does.
func WalkOne(root string) (string, liberr.Error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", liberr.ErrInvalidArgument(err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return "", liberr.ErrNotFound(err)
	}

	var b strings.Builder
	for _, e := range entries {
		writeEntry(&b, sizeOf(e), filepath.Join(abs, e.Name()))
	}
	b.WriteString(terminator)

	return b.String(), nil
}

// WalkRecursive lists root's entire subtree in depth-first preorder: a
// directory's own line precedes the lines produced by descending into
// it. The "." terminator is appended exactly once, for the outermost
// call only.
func WalkRecursive(root string) (string, liberr.Error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", liberr.ErrInvalidArgument(err)
	}

	var b strings.Builder
	if werr := walkInto(&b, abs); werr != nil {
		return "", werr
	}
	b.WriteString(terminator)

	return b.String(), nil
}

// walkInto appends dir's children, recursing preorder into any
// subdirectory, without a terminator of its own.
func walkInto(b *strings.Builder, dir string) liberr.Error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return liberr.ErrNotFound(err)
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		writeEntry(b, sizeOf(e), path)

		if e.IsDir() {
			if werr := walkInto(b, path); werr != nil {
				return werr
			}
		}
	}

	return nil
}
