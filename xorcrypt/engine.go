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

package xorcrypt

import (
	"os"
	"strings"

	liberr "github.com/nabbar/cryptfiled/errors"
	libwkp "github.com/nabbar/cryptfiled/workerpool"
	"golang.org/x/sys/unix"
)

// targetPath derives the destination path for mode, validating the
// _enc suffix on decrypt.
func targetPath(source string, mode Mode) (string, liberr.Error) {
	switch mode {
	case Encrypt:
		return source + EncSuffix, nil
	case Decrypt:
		if !strings.HasSuffix(source, EncSuffix) {
			return "", liberr.ErrInvalidArgument()
		}
		return strings.TrimSuffix(source, EncSuffix), nil
	default:
		return "", liberr.ErrInvalidArgument()
	}
}

// Endec runs one encrypt or decrypt pass over sourcePath with the given
// seed, per the twelve-step contract: derive the target path, validate
// and open the source, create the truncated target, lock both, generate
// one mask per page on this goroutine, dispatch one XOR task per page to
// an ephemeral pool, join, sync, unlock, close, and on full success
// delete the source.
func Endec(sourcePath string, seed uint32, mode Mode) (Result, liberr.Error) {
	var res Result

	dst, verr := targetPath(sourcePath, mode)
	if verr != nil {
		return res, verr
	}
	res.SourcePath = sourcePath
	res.TargetPath = dst

	info, err := os.Stat(sourcePath)
	if err != nil {
		return res, liberr.ErrNotFound(err)
	}
	if !info.Mode().IsRegular() {
		return res, liberr.ErrNotRegular()
	}
	if info.Size() == 0 {
		return res, liberr.ErrInvalidArgument()
	}

	size := info.Size()
	res.FileSize = size

	srcFile, err := os.OpenFile(sourcePath, os.O_RDONLY, 0)
	if err != nil {
		return res, liberr.ErrNotFound(err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return res, liberr.New(liberr.CodeFailure.Uint16(), "could not create target file", err)
	}
	defer func() { _ = dstFile.Close() }()

	if err = dstFile.Truncate(size); err != nil {
		return res, liberr.New(liberr.CodeFailure.Uint16(), "could not size target file", err)
	}

	srcFd, dstFd := int(srcFile.Fd()), int(dstFile.Fd())

	if err = unix.Flock(srcFd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return res, liberr.ErrLocked(err)
	}
	defer func() { _ = unix.Flock(srcFd, unix.LOCK_UN) }()

	if err = unix.Flock(dstFd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return res, liberr.ErrLocked(err)
	}
	defer func() { _ = unix.Flock(dstFd, unix.LOCK_UN) }()

	pageCount := int((size + Page - 1) / Page)
	res.PageCount = pageCount

	gen := newPRNG(seed)
	pool := libwkp.Create("xorcrypt", PoolSize)

	errs := make([]error, pageCount)

	for page := 0; page < pageCount; page++ {
		offset := int64(page) * Page
		actual := int(Page)
		if page == pageCount-1 {
			if rem := int(size % Page); rem != 0 {
				actual = rem
			}
		}

		mask := gen.mask(actual)
		idx := page

		submitErr := pool.Submit(func(arg interface{}) int {
			if e := xorPage(srcFd, dstFd, offset, actual, mask); e != nil {
				errs[idx] = e
				return 1
			}
			return 0
		}, nil, true)

		if submitErr != nil {
			errs[idx] = submitErr
		}
	}

	_ = pool.Destroy(true)

	for _, e := range errs {
		if e != nil {
			res.Partial = true
			break
		}
	}

	if err = dstFile.Sync(); err != nil && !res.Partial {
		return res, liberr.New(liberr.CodeFailure.Uint16(), "could not sync target file", err)
	}

	if res.Partial {
		return res, liberr.ErrPartialFailure()
	}

	if err = os.Remove(sourcePath); err != nil {
		return res, liberr.New(liberr.CodeFailure.Uint16(), "could not remove source file", err)
	}

	return res, nil
}

// xorPage maps the source and target pages at offset, XORs actual bytes
// of source against mask into target, and unmaps both.
func xorPage(srcFd, dstFd int, offset int64, actual int, mask []byte) error {
	src, err := unix.Mmap(srcFd, offset, actual, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	defer func() { _ = unix.Munmap(src) }()

	dst, err := unix.Mmap(dstFd, offset, actual, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	defer func() { _ = unix.Munmap(dst) }()

	for i := 0; i < actual; i++ {
		dst[i] = src[i] ^ mask[i]
	}

	return unix.Msync(dst, unix.MS_SYNC)
}
