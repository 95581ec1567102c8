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

// Command cryptfiled-client dials a cryptfiled server and either runs one
// single-shot command (-l/-r/-e/-d) or drops into an interactive REPL.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	liblog "github.com/sirupsen/logrus"
	spfcbr "github.com/spf13/cobra"

	libcfg "github.com/nabbar/cryptfiled/config"
	libtrs "github.com/nabbar/cryptfiled/transport"
)

func main() {
	cmd := &spfcbr.Command{
		Use:   "cryptfiled-client",
		Short: "Crypto-Sithis, client application",
		Args:  spfcbr.ArbitraryArgs,
	}

	flags := libcfg.BindClientFlags(cmd)

	cmd.RunE = func(c *spfcbr.Command, args []string) error {
		return run(flags, args)
	}

	if err := cmd.Execute(); err != nil {
		liblog.WithError(err).Fatal("cryptfiled-client: fatal error")
	}
}

func run(flags *libcfg.ClientFlags, args []string) error {
	address := flags.Address
	if flags.ForceLocalhost {
		fmt.Println("Ignoring configuration file address. Defaulting to localhost")
		address = "127.0.0.1"
	}

	fmt.Printf("\n--Crypto Sithis Client--\n")
	fmt.Printf("Connecting to %s:%d... ", address, flags.Port)

	conn, err := net.Dial("tcp", net.JoinHostPort(address, strconv.Itoa(int(flags.Port))))
	if err != nil {
		fmt.Println("failed.")
		return err
	}

	c := libtrs.New(conn)
	defer func() { _ = c.Close() }()

	greeting, rerr := c.Receive()
	if rerr != nil {
		fmt.Println("failed.")
		return rerr
	}
	switch greeting {
	case "503":
		fmt.Println("failed")
		return fmt.Errorf("connection closed by server: busy")
	case "100":
		fmt.Println("OK.")
	default:
		fmt.Println("failed")
		return fmt.Errorf("could not interpret server response, exiting: %s", greeting)
	}

	switch {
	case flags.List:
		return singleShot(c, "LSTF\n")
	case flags.ListRecursive:
		return singleShot(c, "LSTR\n")
	case flags.Encrypt:
		path, seed, perr := pathSeed(args)
		if perr != nil {
			return perr
		}
		return singleShot(c, "ENCR "+path+" "+seed)
	case flags.Decrypt:
		path, seed, perr := pathSeed(args)
		if perr != nil {
			return perr
		}
		return singleShot(c, "DECR "+path+" "+seed)
	default:
		return repl(c)
	}
}

func pathSeed(args []string) (string, string, error) {
	if len(args) < 2 {
		return "", "", fmt.Errorf("expected a PATH and a SEED argument")
	}
	return args[0], args[1], nil
}

func singleShot(c *libtrs.Connection, cmd string) error {
	if err := c.Send(cmd); err != nil {
		return err
	}
	return printResponse(c)
}

// printResponse drains one logical server response, following the
// 300/.../301 long-message framing used for directory listings: every
// line received while in long-message mode is printed as-is until 301
// closes it.
func printResponse(c *libtrs.Connection) error {
	longMessage := false

	for {
		resp, rerr := c.Receive()
		if rerr != nil {
			return rerr
		}

		if longMessage {
			if resp == "301" {
				return nil
			}
			fmt.Println(resp)
			continue
		}

		code, text := splitResponse(resp)
		switch code {
		case "200":
			fmt.Printf("Operation successful: %s\n", text)
			return nil
		case "400":
			fmt.Printf("Bad request issued: %s\n", text)
			return nil
		case "500":
			fmt.Printf("Operation failed: %s\n", text)
			return nil
		case "503":
			fmt.Printf("Server is too busy: %s\n", text)
			return nil
		case "300":
			longMessage = true
			continue
		default:
			fmt.Printf("Could not interpret server response: %s\n", resp)
			return nil
		}
	}
}

func splitResponse(resp string) (string, string) {
	if len(resp) < 3 {
		return resp, ""
	}
	return resp[:3], strings.TrimPrefix(resp[3:], " ")
}

// repl runs the interactive command loop. queue and clear are reported
// as local no-ops: this client sends one command at a time and waits
// for its response, so no background command queue ever builds up.
func repl(c *libtrs.Connection) error {
	fmt.Println("Type 'help' for the list of commands.")
	in := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !in.Scan() {
			return nil
		}

		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, " ", 2)
		switch fields[0] {
		case "help":
			printHelp()
		case "exit", "quit":
			return nil
		case "queue":
			fmt.Println("Command queue is empty.")
		case "clear":
			fmt.Println("Nothing to clear.")
		case "list":
			if err := singleShot(c, "LSTF\n"); err != nil {
				return err
			}
		case "listrec":
			if err := singleShot(c, "LSTR\n"); err != nil {
				return err
			}
		case "encrypt":
			if err := runEndec(c, "ENCR ", fields); err != nil {
				fmt.Println(err)
			}
		case "decrypt":
			if err := runEndec(c, "DECR ", fields); err != nil {
				fmt.Println(err)
			}
		default:
			fmt.Printf("Unrecognized command: %s\n", fields[0])
		}
	}
}

func runEndec(c *libtrs.Connection, token string, fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("usage: %spath seed", token)
	}

	rest := strings.TrimSpace(fields[1])
	sep := strings.LastIndexByte(rest, ' ')
	if sep < 0 {
		return fmt.Errorf("usage: %spath seed", token)
	}

	return singleShot(c, token+rest)
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  help             show this text")
	fmt.Println("  list             non-recursive directory listing")
	fmt.Println("  listrec          recursive directory listing")
	fmt.Println("  encrypt PATH SEED   encrypt PATH with SEED")
	fmt.Println("  decrypt PATH SEED   decrypt PATH with SEED")
	fmt.Println("  queue            show the pending command queue")
	fmt.Println("  clear            clear the pending command queue")
	fmt.Println("  exit, quit       close the connection and exit")
}
