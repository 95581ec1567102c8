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

package config

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	liberr "github.com/nabbar/cryptfiled/errors"
	liblog "github.com/sirupsen/logrus"
)

// fileValues holds the fields recognized in the on-disk key=value file.
// A zero value on any field means "not present in the file".
type fileValues struct {
	address    string
	port       uint16
	rootDir    string
	maxClients int
}

const (
	keyServerAddr   = "server_addr"
	keyServerPort   = "server_port"
	keyRootDir      = "current_root_dir"
	keyMaxClients   = "max_client_connect"
	keyMaxTasks     = "max_tasks" // deprecated, accepted and ignored
)

// Load reads c's backing file, applying recognized keys to c. A missing
// file is created with the package defaults and is not treated as an
// error. Malformed or unrecognized lines are discarded with a warning.
func (c *Config) Load() liberr.Error {
	f, err := os.Open(c.path)
	if os.IsNotExist(err) {
		return c.Save()
	} else if err != nil {
		return liberr.ErrInvalidArgument(err)
	}
	defer func() { _ = f.Close() }()

	fv, e := parseFileValues(f)
	if e != nil {
		return liberr.ErrInvalidArgument(e)
	}

	c.setFromFile(fv)
	return nil
}

// Save writes the current snapshot back to the backing file in
// key=value form, overwriting any existing content.
func (c *Config) Save() liberr.Error {
	s := c.Take()

	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "%s=%s\n", keyServerAddr, s.Address)
	_, _ = fmt.Fprintf(&b, "%s=%d\n", keyServerPort, s.Port)
	_, _ = fmt.Fprintf(&b, "%s=%s\n", keyRootDir, s.RootDir)
	_, _ = fmt.Fprintf(&b, "%s=%d\n", keyMaxClients, s.MaxClients)

	if err := os.WriteFile(c.path, []byte(b.String()), 0o644); err != nil {
		return liberr.ErrInvalidArgument(err)
	}

	return nil
}

func parseFileValues(f *os.File) (fileValues, error) {
	var fv fileValues

	scn := bufio.NewScanner(f)
	for scn.Scan() {
		line := strings.TrimSpace(scn.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		k, v, ok := strings.Cut(line, "=")
		if !ok {
			liblog.WithField("line", line).Warn("config: malformed line, discarded")
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)

		switch k {
		case keyServerAddr:
			if net.ParseIP(v) == nil {
				liblog.WithField("value", v).Warn("config: invalid server_addr, discarded")
				continue
			}
			fv.address = v
		case keyServerPort:
			p, err := strconv.Atoi(v)
			if err != nil || p < 1 || p > 65535 {
				liblog.WithField("value", v).Warn("config: invalid server_port, discarded")
				continue
			}
			fv.port = uint16(p)
		case keyRootDir:
			fv.rootDir = v
		case keyMaxClients:
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				liblog.WithField("value", v).Warn("config: invalid max_client_connect, discarded")
				continue
			}
			fv.maxClients = n
		case keyMaxTasks:
			liblog.Debug("config: max_tasks is deprecated and has no effect")
		default:
			liblog.WithField("key", k).Warn("config: unrecognized key, discarded")
		}
	}

	return fv, scn.Err()
}
