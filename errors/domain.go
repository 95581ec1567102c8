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

package errors

// Wire protocol response codes. These are the three-digit codes a
// ConnectionTask writes back to a client, each paired with a default
// explanatory message that callers may override by wrapping the code's
// Error with a more specific parent.
const (
	// CodeAccepted opens a connection: sent once, right after accept.
	CodeAccepted CodeError = 100

	// CodeSuccess reports a command completed without error.
	CodeSuccess CodeError = 200

	// CodeStreamBegin opens a streaming (multi-message) response, used by
	// directory listings ahead of the payload message.
	CodeStreamBegin CodeError = 300

	// CodeStreamEnd closes a streaming response, after the payload message.
	CodeStreamEnd CodeError = 301

	// CodeInvalidRequest covers malformed commands, bad arguments, missing
	// suffixes, unknown source paths, and other client-side mistakes.
	CodeInvalidRequest CodeError = 400

	// CodeFailure covers server-side failures processing an otherwise
	// well-formed request: locked files, partial encryption, and other
	// resource errors encountered while a task runs.
	CodeFailure CodeError = 500

	// CodeBusy is returned to a newly accepted connection when the worker
	// pool has no room to take it; the connection is then closed.
	CodeBusy CodeError = 503

	// CodeNotImplemented marks a recognized but unsupported command token.
	CodeNotImplemented CodeError = 542
)

func domainMessage(code CodeError) string {
	switch code {
	case CodeAccepted:
		return "accepted"
	case CodeSuccess:
		return "OK"
	case CodeStreamBegin:
		return "listing begin"
	case CodeStreamEnd:
		return "listing end"
	case CodeInvalidRequest:
		return "invalid request"
	case CodeFailure:
		return "internal failure"
	case CodeBusy:
		return "server busy"
	case CodeNotImplemented:
		return "not implemented"
	default:
		return UnknownMessage
	}
}

// Error-kind constructors. Each wraps a response code with the default
// explanatory text the wire protocol uses for that kind; callers may
// override the text by building the Error directly with New(code, msg).

// ErrInvalidArgument reports a malformed request: bad command shape, bad
// seed, or a DECR target missing its encrypted-file suffix.
func ErrInvalidArgument(parent ...error) Error {
	return New(CodeInvalidRequest.Uint16(), "invalid argument", parent...)
}

// ErrNotFound reports that the source path named in a command does not exist.
func ErrNotFound(parent ...error) Error {
	return New(CodeInvalidRequest.Uint16(), "file not found", parent...)
}

// ErrNotRegular reports that the source path names a directory, device, or
// other non-regular file.
func ErrNotRegular(parent ...error) Error {
	return New(CodeInvalidRequest.Uint16(), "path does not denote a regular file", parent...)
}

// ErrLocked reports that the OS denied concurrent access to the target file.
func ErrLocked(parent ...error) Error {
	return New(CodeFailure.Uint16(), "file locked, try again later", parent...)
}

// ErrTransientTask reports that no worker or task slot was available to run
// a request against an already-accepted connection.
func ErrTransientTask(parent ...error) Error {
	return New(CodeFailure.Uint16(), "server busy", parent...)
}

// ErrTransientConnect reports that the pool had no room for a new
// connection; the caller must close the connection after sending this.
func ErrTransientConnect(parent ...error) Error {
	return New(CodeBusy.Uint16(), "server busy", parent...)
}

// ErrPartialFailure reports that one or more pages failed during an
// encrypt or decrypt pass.
func ErrPartialFailure(parent ...error) Error {
	return New(CodeFailure.Uint16(), "partially encrypted", parent...)
}

func init() {
	RegisterIdFctMessage(CodeAccepted, domainMessage)
}
