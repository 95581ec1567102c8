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

// Package listener owns the server's listening socket and dispatches
// each accepted connection to a worker pool as a protocol task. Rebinds
// are driven by a message a supervisor sends in; the listener's own
// goroutine performs the reopen, never the caller's.
package listener

import (
	"net"
	"sync"
)

// rebindRequest is one "switch to this address" message popped by the
// listener's own Serve loop.
type rebindRequest struct {
	address string
	port    uint16
	result  chan error
}

// Submitter is the subset of workerpool.Pool the listener depends on.
type Submitter interface {
	Submit(task func(arg interface{}) int, arg interface{}, blocking bool) error
}

// Listener owns the current listening socket and the channels used to
// hand off accepted connections and rebind requests to its Serve loop.
type Listener struct {
	mu sync.Mutex

	ln      net.Listener
	address string
	port    uint16

	pool Submitter

	connCh   chan net.Conn
	rebindCh chan rebindRequest
	stopCh   chan struct{}
}
