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
	spfcbr "github.com/spf13/cobra"
)

// ServerFlags mirrors the server CLI surface: -a/-p/-L address and port,
// -c root directory, -u max clients, -I no-daemonize. -n/max_tasks is
// accepted for compatibility and otherwise ignored.
type ServerFlags struct {
	Address        string
	Port           uint16
	ForceLocalhost bool
	RootDir        string
	MaxClients     int
	NoDaemonize    bool
	MaxTasks       int
	ConfigPath     string
}

// BindServerFlags registers the server's flag set on cmd.
func BindServerFlags(cmd *spfcbr.Command) *ServerFlags {
	f := &ServerFlags{}

	cmd.Flags().StringVarP(&f.Address, "address", "a", "", "listen address (IPv4)")
	cmd.Flags().Uint16VarP(&f.Port, "port", "p", 0, "listen port")
	cmd.Flags().BoolVarP(&f.ForceLocalhost, "localhost", "L", false, "force localhost, overrides config file")
	cmd.Flags().StringVarP(&f.RootDir, "root", "c", "", "root directory to serve")
	cmd.Flags().IntVarP(&f.MaxClients, "max-clients", "u", 0, "maximum concurrent clients")
	cmd.Flags().BoolVarP(&f.NoDaemonize, "no-daemon", "I", false, "do not daemonize (no effect on Windows)")
	cmd.Flags().IntVarP(&f.MaxTasks, "max-tasks", "n", 0, "deprecated, has no effect")
	cmd.Flags().StringVar(&f.ConfigPath, "config", "cryptfiled.conf", "configuration file path")
	_ = cmd.Flags().MarkDeprecated("max-tasks", "has no effect, accepted for compatibility")

	return f
}

// Apply pushes the parsed flags onto cfg, overriding whatever the config
// file set for any flag actually given on the command line.
func (f *ServerFlags) Apply(cfg *Config) {
	cfg.ApplyFlags(f.Address, f.Port, f.RootDir, f.MaxClients, f.ForceLocalhost, f.NoDaemonize)
}

// ClientFlags mirrors the client CLI surface: connection flags shared
// with the server, plus the four single-shot command modes.
type ClientFlags struct {
	Address        string
	Port           uint16
	ForceLocalhost bool

	List          bool
	ListRecursive bool
	Encrypt       bool
	Decrypt       bool

	// EncryptPath/EncryptSeed and DecryptPath/DecryptSeed are not set by
	// BindClientFlags, and cryptfiled-client leaves them zero: it reads
	// PATH and SEED straight from the positional arguments after -e/-d.
	EncryptPath string
	EncryptSeed uint32
	DecryptPath string
	DecryptSeed uint32
}

// BindClientFlags registers the client's flag set on cmd.
func BindClientFlags(cmd *spfcbr.Command) *ClientFlags {
	f := &ClientFlags{}

	cmd.Flags().StringVarP(&f.Address, "address", "a", DefaultAddress, "server address")
	cmd.Flags().Uint16VarP(&f.Port, "port", "p", DefaultPort, "server port")
	cmd.Flags().BoolVarP(&f.ForceLocalhost, "localhost", "L", false, "force localhost")
	cmd.Flags().BoolVarP(&f.List, "list", "l", false, "single-shot non-recursive listing")
	cmd.Flags().BoolVarP(&f.ListRecursive, "recursive", "r", false, "single-shot recursive listing")
	cmd.Flags().BoolVarP(&f.Encrypt, "encrypt", "e", false, "single-shot encrypt, takes PATH SEED as positional args")
	cmd.Flags().BoolVarP(&f.Decrypt, "decrypt", "d", false, "single-shot decrypt, takes PATH SEED as positional args")

	return f
}
