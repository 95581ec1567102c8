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

package protocol

import (
	"os"
	"sync"
	"time"

	liblog "github.com/sirupsen/logrus"
)

// DefaultAuditLogPath is the append-only command log named by the
// persisted-state contract: one "<ctime>\n<command>" record per
// encrypt/decrypt request, independent of the general application log.
const DefaultAuditLogPath = "cryptfiled-commands.log"

var (
	auditOnce sync.Once
	auditLog  *liblog.Logger
	auditPath = DefaultAuditLogPath
)

// SetAuditLogPath overrides the audit log's destination file. It must be
// called, if at all, before the first ENCR/DECR request is handled.
func SetAuditLogPath(path string) {
	auditPath = path
}

func audit() *liblog.Logger {
	auditOnce.Do(func() {
		auditLog = liblog.New()
		auditLog.SetFormatter(&liblog.TextFormatter{DisableTimestamp: true, DisableQuote: true})

		f, err := os.OpenFile(auditPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			liblog.WithError(err).WithField("path", auditPath).Warn("protocol: could not open audit log, falling back to stderr")
			auditLog.SetOutput(os.Stderr)
			return
		}
		auditLog.SetOutput(f)
	})
	return auditLog
}

// recordCommand appends one ctime/command record for an encrypt or
// decrypt request, successful or not.
func recordCommand(cmd string) {
	_, _ = audit().Out.Write([]byte(time.Now().Format(time.ANSIC) + "\n" + cmd + "\n"))
}
