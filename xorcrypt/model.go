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

// Package xorcrypt implements the page-partitioned, pool-parallelized
// XOR transform: given a seed, a deterministic pseudorandom mask is
// generated per page on the calling goroutine, then one task per page
// XORs a memory-mapped source page into a memory-mapped target page.
//
// This is explicitly not a cryptographically secure cipher; it exists
// to demonstrate the page-parallel mmap pipeline, not to provide
// confidentiality.
package xorcrypt

const (
	// Page is the fixed transform unit, 256 KiB.
	Page = 256 * 1024

	// PoolSize is the fixed size of the ephemeral worker pool spun up
	// for the duration of one encrypt/decrypt job.
	PoolSize = 8

	// EncSuffix is appended on encrypt and stripped (after verification)
	// on decrypt.
	EncSuffix = "_enc"
)

// Mode selects the direction of the transform. The transform itself
// (XOR against a PRNG-derived mask) is its own inverse; Mode only
// affects target-path derivation and suffix validation.
type Mode int

const (
	Encrypt Mode = iota
	Decrypt
)

// Result reports the outcome of one Endec call.
type Result struct {
	SourcePath string
	TargetPath string
	FileSize   int64
	PageCount  int

	// Partial is true if one or more pages failed; the overall error
	// returned by Endec is then the partial_failure kind.
	Partial bool
}
