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

// Command cryptfiled is the networked file-encryption server: it binds
// the listening socket, starts the worker pool, and runs the
// reconfiguration supervisor until terminated.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	liblog "github.com/sirupsen/logrus"
	spfcbr "github.com/spf13/cobra"

	libcfg "github.com/nabbar/cryptfiled/config"
	liblsn "github.com/nabbar/cryptfiled/listener"
	libprt "github.com/nabbar/cryptfiled/protocol"
	libwkp "github.com/nabbar/cryptfiled/workerpool"
)

func main() {
	cmd := &spfcbr.Command{
		Use:   "cryptfiled",
		Short: "Crypto-Sithis, server application",
	}

	flags := libcfg.BindServerFlags(cmd)

	cmd.RunE = func(c *spfcbr.Command, args []string) error {
		return run(c, args, flags)
	}

	if err := cmd.Execute(); err != nil {
		liblog.WithError(err).Fatal("cryptfiled: fatal startup error")
	}
}

func run(_ *spfcbr.Command, _ []string, flags *libcfg.ServerFlags) error {
	cfg := libcfg.New(flags.ConfigPath)
	if err := cfg.Load(); err != nil {
		liblog.WithError(err).Fatal("cryptfiled: could not load configuration")
	}
	flags.Apply(cfg)

	snap := cfg.Take()

	if auditPath, aerr := filepath.Abs(libprt.DefaultAuditLogPath); aerr == nil {
		libprt.SetAuditLogPath(auditPath)
	}

	if snap.RootDir != "" && snap.RootDir != "." {
		if err := os.Chdir(snap.RootDir); err != nil {
			liblog.WithError(err).WithField("root", snap.RootDir).Fatal("cryptfiled: could not set root directory")
		}
	}

	pool := libwkp.Create("cryptfiled-clients", snap.MaxClients)

	lsn, err := liblsn.New(snap.Address, snap.Port, pool)
	if err != nil {
		liblog.WithError(err).Fatal("cryptfiled: failed to create server socket")
	}

	liblog.WithField("address", snap.Address).WithField("port", snap.Port).
		WithField("max_clients", snap.MaxClients).WithField("root", snap.RootDir).
		Info("cryptfiled: server listening")

	go lsn.Serve()

	sup := libcfg.NewReconfigSupervisor(cfg, pool, lsn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sup.Run(ctx)

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			sup.Trigger()
		}
	}()

	term := make(chan os.Signal, 1)
	signal.Notify(term, syscall.SIGINT, syscall.SIGTERM)
	<-term

	liblog.Info("cryptfiled: shutting down")
	cancel()
	_ = lsn.Close()
	_ = pool.Destroy(true)

	return nil
}
