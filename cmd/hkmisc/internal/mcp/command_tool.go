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

package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/golang/base"
)

// toolCommandHelp returns an MCP tool that provides CLI flag help for any
// hkmisc subcommand.
func toolCommandHelp() mcpsrv.ServerTool {
	tool := mcplib.NewTool("command_help",
		mcplib.WithDescription(`Return command-line help for a hkmisc subcommand.

Providing no command name (or an empty string) returns the list of all
available commands.  Use it to construct a "hkmisc fetch" invocation that
saves the auction data to a file.`),
		mcplib.WithString("command",
			mcplib.Description(`Subcommand name, e.g. "fetch" or "serve".  Nested subcommands are space-separated, e.g. "config new".`),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithIdempotentHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: handleCommandHelp}
}

// flagMu guards the output of the shared command flag sets.
var flagMu sync.Mutex

func handleCommandHelp(_ context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	cmdName := strings.TrimSpace(req.GetString("command", ""))

	var buf bytes.Buffer
	if cmdName == "" {
		fmt.Fprintln(&buf, "hkmisc, available commands:")
		for _, c := range base.Hkmisc.Commands {
			if c.Short == "" {
				continue
			}
			fmt.Fprintf(&buf, "  %-10s %s\n", c.Name(), c.Short)
		}
		return mcplib.NewToolResultText(buf.String()), nil
	}

	cur := base.Hkmisc
	for part := range strings.FieldsSeq(cmdName) {
		sub := cur.Lookup(part)
		if sub == nil {
			return mcplib.NewToolResultText(fmt.Sprintf(
				"Unknown command %q. Run command_help with an empty command name to list all commands.",
				cmdName,
			)), nil
		}
		cur = sub
	}

	fmt.Fprintf(&buf, "Command: hkmisc %s\n", cur.LongName())
	if cur.Short != "" {
		fmt.Fprintf(&buf, "Summary: %s\n", cur.Short)
	}
	if cur.Long != "" {
		fmt.Fprintf(&buf, "\nDescription:\n%s\n", strings.TrimSpace(cur.Long))
	}
	if cur.PrintFlags {
		fmt.Fprintln(&buf, "\nFlags:")
		flagMu.Lock()
		cur.Flag.SetOutput(&buf)
		cur.Flag.PrintDefaults()
		cur.Flag.SetOutput(nil)
		flagMu.Unlock()
	}
	if len(cur.Commands) > 0 {
		fmt.Fprintln(&buf, "\nSubcommands:")
		for _, sub := range cur.Commands {
			if sub.Short != "" {
				fmt.Fprintf(&buf, "  %-10s %s\n", sub.Name(), sub.Short)
			}
		}
	}
	return mcplib.NewToolResultText(buf.String()), nil
}
