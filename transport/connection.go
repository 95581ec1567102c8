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

// Package transport carries UTF-8-compatible text messages over TCP,
// each terminated on the wire by the single byte 0x04 (EOT). It builds
// directly on the ioutils/delim buffered delimiter scanner, configured
// with EOT as the delimiter, so framing logic is not duplicated here.
package transport

import (
	"net"
	"strings"
	"sync"

	liberr "github.com/nabbar/cryptfiled/errors"
	libdlm "github.com/nabbar/cryptfiled/ioutils/delim"
	"github.com/nabbar/cryptfiled/size"
)

// EOT is the single-byte message terminator used on the wire.
const EOT = '\x04'

// maxMessageSize bounds a single framed message; directory listings are
// the only message expected to approach it.
const maxMessageSize = 8 * size.SizeMega

// Connection is one accepted peer socket: a send lock serializing
// concurrent writers, and a receive side that is not concurrent-safe and
// must be driven by exactly one goroutine (the owning ConnectionTask).
type Connection struct {
	conn net.Conn
	recv libdlm.BufferDelim

	sendMu sync.Mutex
}

// New wraps conn for EOT-framed send/receive.
func New(conn net.Conn) *Connection {
	return &Connection{
		conn: conn,
		recv: libdlm.New(conn, EOT, maxMessageSize, true),
	}
}

// RemoteAddr returns the peer's address.
func (c *Connection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Send writes msg followed by one EOT byte. It fails with
// invalid_argument, writing nothing, if msg already contains an EOT
// byte.
func (c *Connection) Send(msg string) liberr.Error {
	if strings.ContainsRune(msg, EOT) {
		return liberr.ErrInvalidArgument()
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if _, err := c.conn.Write([]byte(msg)); err != nil {
		return liberr.New(liberr.CodeFailure.Uint16(), "connection closed", err)
	}
	if _, err := c.conn.Write([]byte{EOT}); err != nil {
		return liberr.New(liberr.CodeFailure.Uint16(), "connection closed", err)
	}

	return nil
}

// Receive returns the next full message, with the trailing EOT removed.
// A orderly peer shutdown or any read error is surfaced as a transport
// error; callers should treat it as "connection closed".
func (c *Connection) Receive() (string, liberr.Error) {
	b, err := c.recv.ReadBytes()
	if len(b) > 0 && b[len(b)-1] == EOT {
		b = b[:len(b)-1]
	}

	if err != nil {
		if len(b) > 0 {
			return string(b), liberr.New(liberr.CodeFailure.Uint16(), "connection closed", err)
		}
		return "", liberr.New(liberr.CodeFailure.Uint16(), "connection closed", err)
	}

	return string(b), nil
}

// Close releases the underlying socket.
func (c *Connection) Close() error {
	return c.recv.Close()
}
