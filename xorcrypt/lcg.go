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

import "encoding/binary"

// prng is a platform-agnostic linear congruential generator seeded with
// an unsigned 32-bit value. It is not cryptographically secure and is
// not meant to be: the only requirement on it is that drawing the same
// seed through the same sequence of calls always reproduces the same
// byte stream, so that encrypt followed by decrypt with the same seed
// recovers the original file bit-for-bit.
//
// A prng is owned by exactly one goroutine for the lifetime of a job:
// mask generation is inherently sequential and must happen on the
// submitting goroutine, before any page task is dispatched, because the
// generator's state is not safe for concurrent draws.
type prng struct {
	state uint32
}

func newPRNG(seed uint32) *prng {
	return &prng{state: seed}
}

// next draws the next 32-bit word and advances the generator state.
func (g *prng) next() uint32 {
	// Numerical Recipes constants: full period over all 2^32 seeds.
	g.state = g.state*1664525 + 1013904223
	return g.state
}

// mask fills a buffer of n bytes by drawing consecutive 32-bit words and
// packing them little-endian, matching the size of the page it masks.
func (g *prng) mask(n int) []byte {
	b := make([]byte, n)

	var i int
	for i+4 <= n {
		binary.LittleEndian.PutUint32(b[i:], g.next())
		i += 4
	}

	if i < n {
		var tail [4]byte
		binary.LittleEndian.PutUint32(tail[:], g.next())
		copy(b[i:], tail[:n-i])
	}

	return b
}
