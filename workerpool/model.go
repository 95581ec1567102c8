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

// Package workerpool implements a fixed-then-resizable pool of goroutine
// workers, each parked on its own private binary semaphore, dispatched
// through an intrusive LIFO idle list guarded by one mutex and condition
// variable. It is used both as the long-lived dispatcher for accepted
// connections and, ephemerally, as the page-parallel executor inside an
// encrypt/decrypt job.
package workerpool

import (
	"sync"

	libcfg "github.com/nabbar/cryptfiled/config"
	"golang.org/x/sync/semaphore"
)

// ErrWouldBlock is returned by Submit, Resize (shrink), and Destroy when
// the non-blocking form cannot make progress immediately.
var ErrWouldBlock = libcfg.ErrWouldBlock

// Task is the unit of work a worker executes. A non-zero return is
// logged but never faults the pool.
type Task func(arg interface{}) int

type worker struct {
	id  int
	sem *semaphore.Weighted

	task Task
	arg  interface{}

	done chan struct{}
}

// Pool is a named, resizable set of workers dispatched LIFO from an
// idle stack. The zero value is not usable; build one with Create.
type Pool struct {
	mu   sync.Mutex
	cond *sync.Cond

	name string

	workers []*worker // indexed by current id
	idle    []*worker // LIFO: last element is the most recently idled

	idleCount int
}
