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

package transport_test

import (
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libtrs "github.com/nabbar/cryptfiled/transport"
)

var _ = Describe("Connection", func() {
	var client, server net.Conn

	BeforeEach(func() {
		client, server = net.Pipe()
	})

	AfterEach(func() {
		_ = client.Close()
		_ = server.Close()
	})

	It("rejects a message containing an embedded EOT byte", func() {
		c := libtrs.New(client)
		defer func() { _ = c.Close() }()

		err := c.Send("hello\x04world")
		Expect(err).ToNot(BeNil())
	})

	It("round-trips a message across the pipe, framed on EOT", func() {
		cConn := libtrs.New(client)
		sConn := libtrs.New(server)
		defer func() { _ = cConn.Close() }()
		defer func() { _ = sConn.Close() }()

		done := make(chan struct{})
		var got string
		var gerr error

		go func() {
			defer close(done)
			s, rerr := sConn.Receive()
			got = s
			if rerr != nil {
				gerr = rerr
			}
		}()

		Expect(cConn.Send("LSTF")).To(BeNil())

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			Fail("timed out waiting for receive")
		}

		Expect(gerr).ToNot(HaveOccurred())
		Expect(got).To(Equal("LSTF"))
	})

	It("surfaces connection closure as an error from Receive", func() {
		sConn := libtrs.New(server)
		defer func() { _ = sConn.Close() }()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = sConn.Receive()
		}()

		_ = client.Close()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			Fail("timed out waiting for receive to unblock on close")
		}
	})
})
