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

package listener_test

import (
	"bufio"
	"net"
	"strconv"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liblsn "github.com/nabbar/cryptfiled/listener"
)

// fakePool is a minimal Submitter double: accept controls whether
// Submit accepts or reports would_block, and each accepted task is run
// on its own goroutine, as a real pool worker would run it.
type fakePool struct {
	mu     sync.Mutex
	accept bool
}

func (p *fakePool) Submit(task func(arg interface{}) int, arg interface{}, _ bool) error {
	p.mu.Lock()
	ok := p.accept
	p.mu.Unlock()

	if !ok {
		return errWouldBlock
	}

	go task(arg)
	return nil
}

var errWouldBlock = &wouldBlockErr{}

type wouldBlockErr struct{}

func (e *wouldBlockErr) Error() string { return "would block" }

func freePort() int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).ToNot(HaveOccurred())
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port
}

var _ = Describe("Listener", func() {
	It("greets an accepted connection via the dispatched protocol task", func() {
		port := freePort()
		pool := &fakePool{accept: true}

		lsn, err := liblsn.New("127.0.0.1", uint16(port), pool)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = lsn.Close() }()
		go lsn.Serve()

		conn, derr := net.DialTimeout("tcp", "127.0.0.1:"+strconv.Itoa(port), time.Second)
		Expect(derr).ToNot(HaveOccurred())
		defer func() { _ = conn.Close() }()

		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		r := bufio.NewReader(conn)
		b, rerr := r.ReadString('\x04')
		Expect(rerr).ToNot(HaveOccurred())
		Expect(b).To(Equal("100\x04"))
	})

	It("answers 503 and closes when the pool is saturated", func() {
		port := freePort()
		pool := &fakePool{accept: false}

		lsn, err := liblsn.New("127.0.0.1", uint16(port), pool)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = lsn.Close() }()
		go lsn.Serve()

		conn, derr := net.DialTimeout("tcp", "127.0.0.1:"+strconv.Itoa(port), time.Second)
		Expect(derr).ToNot(HaveOccurred())
		defer func() { _ = conn.Close() }()

		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		r := bufio.NewReader(conn)
		b, rerr := r.ReadString('\x04')
		Expect(rerr).ToNot(HaveOccurred())
		Expect(b).To(Equal("503\x04"))
	})

	It("rebinds to a new port while serving, without disrupting the dispatch loop", func() {
		port1 := freePort()
		pool := &fakePool{accept: true}

		lsn, err := liblsn.New("127.0.0.1", uint16(port1), pool)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = lsn.Close() }()
		go lsn.Serve()

		port2 := freePort()
		Expect(lsn.Rebind("127.0.0.1", uint16(port2))).To(Succeed())

		conn, derr := net.DialTimeout("tcp", "127.0.0.1:"+strconv.Itoa(port2), time.Second)
		Expect(derr).ToNot(HaveOccurred())
		defer func() { _ = conn.Close() }()

		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		r := bufio.NewReader(conn)
		b, rerr := r.ReadString('\x04')
		Expect(rerr).ToNot(HaveOccurred())
		Expect(b).To(Equal("100\x04"))
	})
})
