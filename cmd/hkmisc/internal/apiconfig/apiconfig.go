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

// Package apiconfig implements the "hkmisc config" command and its
// subcommands.
package apiconfig

import (
	"io"

	"github.com/fatih/color"

	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/golang/base"
	"github.com/hkopenai/hkmisc/internal/config"
)

var CmdConfig = &base.Command{
	UsageLine: "hkmisc config",
	Short:     "configuration file operations",
	Long: `
# Config Command

Config command allows to perform different operations on the configuration
file: create a new one with the default values, or check an existing one.
`,
	Commands: []*base.Command{
		CmdConfigNew,
		CmdConfigCheck,
	},
}

// Load reads, parses and validates the config file.  Problems are printed
// to w.
func Load(w io.Writer, filename string) (config.Config, error) {
	c, err := config.Load(filename)
	if err != nil {
		printErrors(w, err)
		return config.Config{}, err
	}
	return c, nil
}

func printErrors(w io.Writer, err error) {
	if err == nil {
		return
	}
	red := color.New(color.FgRed)
	red.Fprintln(w, "Detected problems:")
	red.Fprintf(w, "\t%s\n", err)
}
