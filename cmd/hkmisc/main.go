// Copyright (c) 2026 hkopenai and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command hkmisc serves the auction lists of the Hong Kong Government
// Logistics Department to AI agents over MCP, and fetches them from the
// command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/apiconfig"
	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/cfg"
	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/fetch"
	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/golang/base"
	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/mcp"
	"github.com/hkopenai/hkmisc/internal/network"
)

// secrets defines the names of the supported files that we load the
// environment from.  Windows users might have a hard time creating a .env
// file with the notepad as it insists on the "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

func init() {
	base.Hkmisc.Commands = []*base.Command{
		mcp.CmdServe,
		fetch.CmdFetch,
		apiconfig.CmdConfig,
		CmdVersion,
	}
	setBaseFlags(base.Hkmisc)
}

// setBaseFlags adds the global flags to every runnable command in the tree.
func setBaseFlags(cmd *base.Command) {
	for _, sub := range cmd.Commands {
		if sub.Runnable() {
			cfg.SetBaseFlags(&sub.Flag, sub.FlagMask)
			sub.PrintFlags = true
		}
		setBaseFlags(sub)
	}
}

func main() {
	loadSecrets(secrets)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if err := invoke(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "hkmisc: %s\n", err)
		base.SetExitStatus(base.SGenericError)
	}
	stop()
	base.Exit()
}

// loadSecrets loads the environment from the files in the secrets slice.
// Variables already set in the environment take precedence.
func loadSecrets(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// findCommand walks the command tree as far as args allow and returns the
// command and the remaining arguments.
func findCommand(root *base.Command, args []string) (*base.Command, []string) {
	cmd := root
	for len(args) > 0 {
		sub := cmd.Lookup(args[0])
		if sub == nil {
			break
		}
		cmd, args = sub, args[1:]
	}
	return cmd, args
}

// invoke runs the command selected by args.
func invoke(ctx context.Context, args []string) error {
	if len(args) == 0 {
		base.Hkmisc.PrintHelp(os.Stdout)
		base.SetExitStatus(base.SHelpRequested)
		return nil
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "-help" || args[0] == "--help" {
		return help(os.Stdout, args[1:])
	}

	cmd, rest := findCommand(base.Hkmisc, args)
	if cmd == base.Hkmisc {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("unknown command %q, run 'hkmisc help' for usage", args[0])
	}
	if !cmd.Runnable() {
		cmd.PrintHelp(os.Stdout)
		base.SetExitStatus(base.SHelpRequested)
		return nil
	}

	cmd.Flag.Usage = func() {}
	cmd.Flag.SetOutput(io.Discard)
	if err := cmd.Flag.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cmd.PrintHelp(os.Stdout)
			base.SetExitStatus(base.SHelpRequested)
			return nil
		}
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("%s: %w", cmd.LongName(), err)
	}

	closeLog, err := cfg.InitLog()
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	defer closeLog()
	network.SetLogger(cfg.Log)

	if cmd.FlagMask&cfg.OmitConfigFlag == 0 {
		if err := cfg.Load(); err != nil {
			base.SetExitStatus(base.SInitializationError)
			return err
		}
	}
	return cmd.Run(ctx, cmd, cmd.Flag.Args())
}

// help prints the help for the command named by args.
func help(w io.Writer, args []string) error {
	cmd, rest := findCommand(base.Hkmisc, args)
	if len(rest) > 0 {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("hkmisc help %s: unknown help topic, run 'hkmisc help'", rest[0])
	}
	cmd.PrintHelp(w)
	return nil
}
