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

// Package config owns the process-wide configuration store: the
// key=value file format, the default values, and the ReconfigSupervisor
// that re-reads the file on trigger and applies changes to the listener
// address, worker pool size, and root directory.
//
// Only the ReconfigSupervisor goroutine mutates a Config. Every other
// reader (a ConnectionTask, an EncryptJob) takes an immutable Snapshot
// at the start of its work and never touches the Config directly.
package config

import (
	"sync"

	libatm "github.com/nabbar/cryptfiled/atomic"
)

const (
	DefaultAddress    = "127.0.0.1"
	DefaultPort       = 9420
	DefaultRootDir    = "."
	DefaultMaxClients = 16
)

// Snapshot is an immutable copy of a Config's fields taken under a short
// lock. It is safe to read and pass around without further
// synchronization.
type Snapshot struct {
	Address     string
	Port        uint16
	RootDir     string
	MaxClients  int
	Interactive bool
}

// Config is the process-wide, mutable configuration store described by
// the on-disk key=value file. It is safe for concurrent use: writes
// happen only on the ReconfigSupervisor goroutine, under m, and Take
// loads the last published Snapshot without taking the lock.
type Config struct {
	m sync.Mutex

	path string

	address     string
	port        uint16
	rootDir     string
	maxClients  int
	interactive bool

	// snap caches the last-published Snapshot so every ConnectionTask and
	// EncryptJob can Take one without ever contending on m: writers swap
	// it in after each mutation, readers load it lock-free.
	snap libatm.Value[Snapshot]
}

// New builds a Config backed by the file at path, populated with the
// package defaults. Call Load to populate it from disk.
func New(path string) *Config {
	c := &Config{
		path:       path,
		address:    DefaultAddress,
		port:       DefaultPort,
		rootDir:    DefaultRootDir,
		maxClients: DefaultMaxClients,
		snap:       libatm.NewValue[Snapshot](),
	}
	c.publish()
	return c
}

// Take returns a Snapshot of the current configuration values. It reads
// the cached snapshot published by the last mutation, so it never blocks
// on the ReconfigSupervisor's write lock.
func (c *Config) Take() Snapshot {
	return c.snap.Load()
}

// publish refreshes the cached Snapshot. Callers must hold c.m.
func (c *Config) publish() {
	c.snap.Store(Snapshot{
		Address:     c.address,
		Port:        c.port,
		RootDir:     c.rootDir,
		MaxClients:  c.maxClients,
		Interactive: c.interactive,
	})
}

// Path returns the backing file path this Config was constructed with.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) setFromFile(f fileValues) {
	c.m.Lock()
	defer c.m.Unlock()

	if f.address != "" {
		c.address = f.address
	}
	if f.port != 0 {
		c.port = f.port
	}
	if f.rootDir != "" {
		c.rootDir = f.rootDir
	}
	if f.maxClients != 0 {
		c.maxClients = f.maxClients
	}

	c.publish()
}

// ApplyFlags overrides whichever fields were actually set on the command
// line; zero values mean "not given" and are left untouched, except for
// forceLocalhost and interactive which are plain booleans.
func (c *Config) ApplyFlags(address string, port uint16, rootDir string, maxClients int, forceLocalhost bool, interactive bool) {
	c.m.Lock()
	defer c.m.Unlock()

	if forceLocalhost {
		c.address = "127.0.0.1"
	} else if address != "" {
		c.address = address
	}
	if port != 0 {
		c.port = port
	}
	if rootDir != "" {
		c.rootDir = rootDir
	}
	if maxClients != 0 {
		c.maxClients = maxClients
	}

	c.interactive = interactive

	c.publish()
}
