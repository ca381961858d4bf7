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

// Package mcp contains the CLI command for starting the MCP server.
package mcp

import (
	"cmp"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/bootstrap"
	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/cfg"
	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/golang/base"
	internalmcp "github.com/hkopenai/hkmisc/internal/mcp"
	"github.com/hkopenai/hkmisc/internal/osext"
)

//go:embed assets/serve.md
var mdServe string

//go:embed all:assets/layouts/*
var projectsFS embed.FS

// CmdServe is the "hkmisc serve" command.
var CmdServe = &base.Command{
	UsageLine:  "hkmisc serve [flags]",
	Short:      "start the MCP server",
	Long:       mdServe,
	PrintFlags: true,
	Run:        runServe,
}

var (
	listenAddr       string
	transport        string
	newProjectLayout string
)

const (
	layoutOpencode = "opencode"
)

var projectLayouts = []string{
	layoutOpencode,
}

func init() {
	CmdServe.Flag.StringVar(&transport, "transport", "", "MCP transport: \"stdio\" or \"http\" (default from config: stdio)")
	CmdServe.Flag.StringVar(&listenAddr, "listen", "", "address to listen on when -transport=http (default from config: 127.0.0.1:8483)")
	CmdServe.Flag.StringVar(&newProjectLayout, "new", "", fmt.Sprintf("creates new project layout for AI. Type may be one of: %v", projectLayouts))
}

func runServe(ctx context.Context, cmd *base.Command, args []string) error {
	if newProjectLayout != "" {
		if len(args) == 0 {
			base.SetExitStatus(base.SInvalidParameters)
			return errors.New("target directory must be provided (will be created)")
		}
		return runNewProject(ctx, newProjectLayout, args[0])
	}
	return runServer(ctx)
}

func runServer(ctx context.Context) error {
	lg := cfg.Log

	t := internalmcp.Transport(strings.ToLower(cmp.Or(transport, cfg.Config.Transport)))
	addr := cmp.Or(listenAddr, cfg.Config.Listen)
	if t != internalmcp.TransportStdio && t != internalmcp.TransportHTTP {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("serve: unknown transport %q (use \"stdio\" or \"http\")", t)
	}

	srv := internalmcp.New(
		internalmcp.WithLogger(lg),
		internalmcp.WithService(bootstrap.Service(nil)),
	)
	// command_help needs the command tree, which internal/mcp cannot see.
	srv.AddTool(toolCommandHelp())

	lg.InfoContext(ctx, "serve: starting", "transport", t, "addr", addr, "base_url", cfg.Config.BaseURL)
	if err := srv.Serve(ctx, t, addr); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	return nil
}

func runNewProject(ctx context.Context, layout string, tgtDir string) error {
	// ensure we know the project type before accessing the FS
	if !slices.Contains(projectLayouts, layout) {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("unknown project layout %q. Use one of %v", layout, projectLayouts)
	}
	subfs, err := fs.Sub(projectsFS, path.Join("assets", "layouts", layout))
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("fs chdir: %w", err)
	}
	if err := initNewProject(tgtDir, subfs); err != nil {
		return err
	}
	cfg.Log.InfoContext(ctx, "new project created", "in", tgtDir, "layout", layout)
	return nil
}

func initNewProject(tgtDir string, fsys fs.FS) error {
	if err := osext.DirExists(tgtDir); err != nil {
		if errors.Is(err, osext.ErrNotADir) {
			base.SetExitStatus(base.SUserError)
			return fmt.Errorf("%s: %w", tgtDir, err)
		}
		if err := os.MkdirAll(tgtDir, 0o777); err != nil {
			base.SetExitStatus(base.SApplicationError)
			return fmt.Errorf("unable to initialise new project in %q: %w", tgtDir, err)
		}
	}
	if err := os.CopyFS(tgtDir, fsys); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("copy project files: %w", err)
	}
	return nil
}
