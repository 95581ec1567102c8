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

// Package protocol drives the request/response state machine over one
// accepted Connection: greeting, command dispatch, and the streaming
// three-message sequence used by directory listings.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	liberr "github.com/nabbar/cryptfiled/errors"
	liblog "github.com/sirupsen/logrus"
	libtrs "github.com/nabbar/cryptfiled/transport"
	libwlk "github.com/nabbar/cryptfiled/walker"
	libxor "github.com/nabbar/cryptfiled/xorcrypt"
)

const (
	tokListFlat = "LSTF\n"
	tokListRec  = "LSTR\n"
	tokEncrypt  = "ENCR "
	tokDecrypt  = "DECR "

	tokenLen = 5
)

// Task runs one ConnectionTask: the protocol state machine end-to-end
// over a single accepted Connection, until the peer closes or fails.
type Task struct {
	conn *libtrs.Connection
}

// New builds a Task over an already-accepted Connection.
func New(conn *libtrs.Connection) *Task {
	return &Task{conn: conn}
}

// Run is the Task function submitted to the worker pool: it implements
// the Greeting/Ready/Streaming/Closed state machine and returns once the
// connection is closed, for any reason. The returned code is always 0;
// failures are logged, not faulted, matching the pool's "tasks don't
// fault the pool" contract.
func (t *Task) Run(_ interface{}) int {
	defer func() { _ = t.conn.Close() }()

	if err := t.conn.Send("100"); err != nil {
		liblog.WithError(err).WithField("remote", t.conn.RemoteAddr()).Debug("protocol: greeting failed")
		return 0
	}

	for {
		msg, rerr := t.conn.Receive()

		if msg != "" {
			if err := t.dispatch(msg); err != nil {
				liblog.WithError(err).WithField("remote", t.conn.RemoteAddr()).Debug("protocol: connection closing")
				return 0
			}
		}

		if rerr != nil {
			return 0
		}
	}
}

// dispatch interprets one request message and emits the matching
// response(s). A non-nil return means the connection should close.
func (t *Task) dispatch(msg string) liberr.Error {
	switch {
	case strings.HasPrefix(msg, tokListFlat):
		return t.handleList(false)
	case strings.HasPrefix(msg, tokListRec):
		return t.handleList(true)
	case strings.HasPrefix(msg, tokEncrypt):
		return t.handleEndec(msg[tokenLen:], libxor.Encrypt)
	case strings.HasPrefix(msg, tokDecrypt):
		return t.handleEndec(msg[tokenLen:], libxor.Decrypt)
	default:
		return t.conn.Send("400")
	}
}

// handleList runs a directory walk and emits the 300/payload/301
// streaming sequence. A walk failure is reported as a plain failure
// response instead, without entering the streaming state.
func (t *Task) handleList(recursive bool) liberr.Error {
	var (
		out string
		err liberr.Error
	)

	if recursive {
		out, err = libwlk.WalkRecursive(".")
	} else {
		out, err = libwlk.WalkOne(".")
	}

	if err != nil {
		return t.conn.Send("500 directory listing failed")
	}

	if serr := t.conn.Send("300"); serr != nil {
		return serr
	}
	if serr := t.conn.Send(out); serr != nil {
		return serr
	}
	return t.conn.Send("301")
}

// handleEndec parses "<path> <seed>" (seed is the last whitespace-
// separated token, so the path itself may contain spaces) and dispatches
// to the encryption engine, translating its error kind into the
// matching response code.
func (t *Task) handleEndec(rest string, mode libxor.Mode) liberr.Error {
	rest = strings.TrimRight(rest, "\r\n")

	sep := strings.LastIndexByte(rest, ' ')
	if sep <= 0 || sep == len(rest)-1 {
		return t.conn.Send("400 malformed request")
	}

	path := rest[:sep]
	seed64, perr := strconv.ParseUint(rest[sep+1:], 10, 32)
	if perr != nil {
		return t.conn.Send("400 seed is malformed")
	}

	if mode == libxor.Decrypt && !strings.HasSuffix(path, libxor.EncSuffix) {
		return t.conn.Send("400 path must end with " + libxor.EncSuffix)
	}

	recordCommand(commandName(mode) + " " + rest)

	_, eerr := libxor.Endec(path, uint32(seed64), mode)
	if eerr != nil {
		return t.conn.Send(responseFor(eerr))
	}

	return t.conn.Send("200 OK")
}

// responseFor renders an engine failure as a wire response line, using
// the error's own code (400/500/...) and message.
func responseFor(err liberr.Error) string {
	return fmt.Sprintf("%d %s", err.Code(), err.StringError())
}

func commandName(mode libxor.Mode) string {
	if mode == libxor.Decrypt {
		return "DECR"
	}
	return "ENCR"
}
