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
	"context"
	"errors"
	"net"
	"os"

	liblog "github.com/sirupsen/logrus"
)

// PoolResizer is the slice of WorkerPool that the supervisor needs:
// enough to apply a max_client_connect change and to read back the
// actual size after a failed shrink.
type PoolResizer interface {
	Resize(n int) error
	Size() int
}

// ListenerRebinder is the slice of Listener the supervisor needs to
// apply an address/port change without reaching into listener internals.
type ListenerRebinder interface {
	Rebind(addr string, port uint16) error
}

// ReconfigSupervisor is the main goroutine after startup: it waits for a
// trigger, re-reads the configuration file, and applies whichever
// fields changed to the pool and the listener. Only this goroutine ever
// calls Config's mutating methods.
type ReconfigSupervisor struct {
	cfg  *Config
	pool PoolResizer
	lsn  ListenerRebinder

	trigger chan struct{}
	done    chan struct{}
}

// NewReconfigSupervisor builds a supervisor bound to cfg, pool, and lsn.
// pool and lsn may be nil in tests that only exercise the diff/validate
// logic.
func NewReconfigSupervisor(cfg *Config, pool PoolResizer, lsn ListenerRebinder) *ReconfigSupervisor {
	return &ReconfigSupervisor{
		cfg:     cfg,
		pool:    pool,
		lsn:     lsn,
		trigger: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Trigger schedules one reconfiguration pass. It never blocks: a trigger
// already pending is enough to cause a fresh re-read.
func (s *ReconfigSupervisor) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run blocks, applying one reconfiguration pass per Trigger call, until
// ctx is canceled.
func (s *ReconfigSupervisor) Run(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.trigger:
			if err := s.Reload(); err != nil {
				liblog.WithError(err).Warn("config: reconfiguration pass failed")
			}
		}
	}
}

// Done returns a channel closed once Run has returned.
func (s *ReconfigSupervisor) Done() <-chan struct{} {
	return s.done
}

// Reload performs one synchronous "re-read, diff, apply" pass. It is
// exposed directly so tests and a SIGHUP-style CLI trigger can drive it
// without going through Run.
func (s *ReconfigSupervisor) Reload() error {
	before := s.cfg.Take()

	f, err := os.Open(s.cfg.path)
	if err != nil {
		return err
	}
	fv, err := parseFileValues(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	s.cfg.setFromFile(fv)
	after := s.cfg.Take()

	if after.Address != before.Address || after.Port != before.Port {
		s.applyAddress(before, after)
	}

	if after.MaxClients != before.MaxClients {
		s.applyMaxClients(before, after)
	}

	if after.RootDir != before.RootDir {
		s.applyRootDir(before, after)
	}

	return nil
}

func (s *ReconfigSupervisor) applyAddress(before, after Snapshot) {
	if net.ParseIP(after.Address) == nil {
		liblog.WithField("address", after.Address).Warn("config: invalid address, reverting")
		s.revertAddress(before)
		return
	}

	if s.lsn == nil {
		return
	}

	if err := s.lsn.Rebind(after.Address, after.Port); err != nil {
		liblog.WithError(err).Warn("config: rebind failed, reverting")
		s.revertAddress(before)
	}
}

func (s *ReconfigSupervisor) revertAddress(before Snapshot) {
	s.cfg.m.Lock()
	s.cfg.address = before.Address
	s.cfg.port = before.Port
	s.cfg.publish()
	s.cfg.m.Unlock()
}

func (s *ReconfigSupervisor) applyMaxClients(before, after Snapshot) {
	if s.pool == nil {
		return
	}

	if err := s.pool.Resize(after.MaxClients); err != nil {
		if errors.Is(err, ErrWouldBlock) {
			liblog.WithField("requested", after.MaxClients).Warn("config: pool shrink would block, reverting")
		} else {
			liblog.WithError(err).Warn("config: pool resize failed, reverting")
		}

		s.cfg.m.Lock()
		s.cfg.maxClients = s.pool.Size()
		s.cfg.publish()
		s.cfg.m.Unlock()
	}
}

func (s *ReconfigSupervisor) applyRootDir(before, after Snapshot) {
	if err := os.Chdir(after.RootDir); err != nil {
		liblog.WithError(err).WithField("root_dir", after.RootDir).Warn("config: chdir failed, reverting")

		s.cfg.m.Lock()
		s.cfg.rootDir = before.RootDir
		s.cfg.publish()
		s.cfg.m.Unlock()
	}
}
