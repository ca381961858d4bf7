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

// Package cfg holds the global flags and the state shared by the commands.
package cfg

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rusq/osenv/v2"

	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/golang/base"
	"github.com/hkopenai/hkmisc/internal/config"
)

var (
	LogFile    string
	Verbose    bool
	ConfigFile string

	// Log is the logger.  It writes to STDERR unless LogFile is set; STDOUT
	// is reserved for the stdio MCP transport and command output.
	Log = slog.Default()
	// Config is the configuration loaded by Load.
	Config = config.Default()
)

const (
	DefaultFlags   base.FlagMask = 0
	OmitConfigFlag base.FlagMask = 1 << iota

	OmitAll = OmitConfigFlag
)

// SetBaseFlags sets base flags.
func SetBaseFlags(fs *flag.FlagSet, mask base.FlagMask) {
	fs.StringVar(&LogFile, "log", osenv.Value("LOG_FILE", ""), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&Verbose, "v", osenv.Value("DEBUG", false), "verbose messages")
	if mask&OmitConfigFlag == 0 {
		fs.StringVar(&ConfigFile, "config", osenv.Value("HKMISC_CONFIG", ""), "configuration `file` (TOML).\nYou can generate one with default values with 'hkmisc config new'")
	}
}

// InitLog initialises Log according to the flags.  The returned function
// closes the log file, if any.
func InitLog() (func() error, error) {
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)
	if LogFile != "" {
		f, err := os.OpenFile(LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}
	Log = newLogger(w, Verbose)
	slog.SetDefault(Log)
	return closeFn, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Load loads the configuration from ConfigFile and the environment.
func Load() error {
	c, err := config.Load(ConfigFile)
	if err != nil {
		return err
	}
	Config = c
	return nil
}
