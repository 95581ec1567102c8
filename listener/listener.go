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

package listener

import (
	"errors"
	"net"
	"strconv"

	liblog "github.com/sirupsen/logrus"

	libprt "github.com/nabbar/cryptfiled/protocol"
	libtrs "github.com/nabbar/cryptfiled/transport"
)

// ErrClosed is returned by Rebind once the listener has stopped serving.
var ErrClosed = errors.New("listener: closed")

// New binds address:port and starts accepting in the background. Call
// Serve to run the dispatch loop on the calling goroutine.
func New(address string, port uint16, pool Submitter) (*Listener, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort(address, strconv.Itoa(int(port))))
	if err != nil {
		return nil, err
	}

	l := &Listener{
		ln:       ln,
		address:  address,
		port:     port,
		pool:     pool,
		connCh:   make(chan net.Conn),
		rebindCh: make(chan rebindRequest),
		stopCh:   make(chan struct{}),
	}

	go l.acceptLoop(ln)

	return l, nil
}

// acceptLoop feeds accepted connections to connCh until ln is closed,
// either by Close or because Rebind replaced it with a new listener.
func (l *Listener) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}

		select {
		case l.connCh <- conn:
		case <-l.stopCh:
			_ = conn.Close()
			return
		}
	}
}

// Serve runs the dispatch loop: every accepted connection is handed to
// the pool as a protocol task, and every rebind request is applied on
// this same goroutine, as its own listener thread. It returns once
// Close is called.
func (l *Listener) Serve() {
	for {
		select {
		case conn := <-l.connCh:
			l.dispatch(conn)
		case req := <-l.rebindCh:
			l.doRebind(req)
		case <-l.stopCh:
			return
		}
	}
}

// dispatch submits conn as a protocol task. Pool saturation is answered
// with 503 and the connection is closed without a greeting, matching
// the listener pseudocode: the greeting is the task's job, not the
// listener's.
func (l *Listener) dispatch(conn net.Conn) {
	task := libprt.New(libtrs.New(conn))

	if err := l.pool.Submit(task.Run, nil, false); err != nil {
		busy := libtrs.New(conn)
		_ = busy.Send("503")
		_ = busy.Close()
	}
}

// Rebind asks the listener's own goroutine to reopen on address:port.
// It blocks until the reopen succeeds or fails; the caller never
// touches listener state directly.
func (l *Listener) Rebind(address string, port uint16) error {
	result := make(chan error, 1)

	select {
	case l.rebindCh <- rebindRequest{address: address, port: port, result: result}:
	case <-l.stopCh:
		return ErrClosed
	}

	return <-result
}

func (l *Listener) doRebind(req rebindRequest) {
	newLn, err := net.Listen("tcp", net.JoinHostPort(req.address, strconv.Itoa(int(req.port))))
	if err != nil {
		req.result <- err
		return
	}

	l.mu.Lock()
	old := l.ln
	l.ln = newLn
	l.address, l.port = req.address, req.port
	l.mu.Unlock()

	_ = old.Close()
	go l.acceptLoop(newLn)

	liblog.WithField("address", req.address).WithField("port", req.port).Info("listener: rebound")
	req.result <- nil
}

// Addr returns the currently bound address.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ln.Addr()
}

// Close stops the dispatch loop and closes the current listening socket.
func (l *Listener) Close() error {
	close(l.stopCh)

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ln.Close()
}
