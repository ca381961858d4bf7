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

// Package fetch implements the "hkmisc fetch" command, which runs a single
// auction query from the command line.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/bootstrap"
	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/cfg"
	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/golang/base"
	"github.com/hkopenai/hkmisc/internal/auction"
	"github.com/hkopenai/hkmisc/internal/osext"
)

// CmdFetch is the "hkmisc fetch" command.
var CmdFetch = &base.Command{
	UsageLine: "hkmisc fetch [flags]",
	Short:     "fetch the auction lots for a range of months",
	Long: `
# Fetch Command

Downloads the auction lists and prints the lots auctioned between the first
day of the -from month and the 28th day of the -to month, newest list first.

Example:

    hkmisc fetch -from 2023-01 -to 2023-03 -lang TC -format csv -o lots.csv

Dates the publisher did not format as DD/MM/YYYY are printed unchanged.  If
any list cannot be downloaded, the error object is printed instead of the
lots and the command exits with a non-zero status.
`,
	PrintFlags: true,
	Run:        runFetch,
}

const (
	formatJSON  = "json"
	formatCSV   = "csv"
	formatTable = "table"

	monthLayout = "2006-01"
)

var formats = []string{formatJSON, formatCSV, formatTable}

var (
	fromMonth string
	toMonth   string
	language  string
	output    string
	format    string
)

func init() {
	CmdFetch.Flag.StringVar(&fromMonth, "from", "", "first `month` of the range, YYYY-MM (required)")
	CmdFetch.Flag.StringVar(&toMonth, "to", "", "last `month` of the range, YYYY-MM (default: same as -from)")
	CmdFetch.Flag.StringVar(&language, "lang", string(auction.LangEN), "list `language`: EN, TC or SC")
	CmdFetch.Flag.StringVar(&output, "o", osext.Stdout, "output `file`, \"-\" is the standard output")
	CmdFetch.Flag.StringVar(&format, "format", formatJSON, fmt.Sprintf("output `format`, one of %v", formats))
}

func runFetch(ctx context.Context, cmd *base.Command, args []string) error {
	q, err := parseQuery(fromMonth, toMonth, language)
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}
	fmtName := strings.ToLower(format)
	if !slices.Contains(formats, fmtName) {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("unknown format %q, use one of %v", format, formats)
	}

	var f auction.Fetcher = bootstrap.Fetcher(cfg.Config, cfg.Log)
	if osext.IsInteractive() {
		pb := bootstrap.ProgressBar(ctx, cfg.Log,
			auction.NumProbes(q.StartYear, q.EndYear, cfg.Config.MaxListNo),
			progressbar.OptionSetWriter(os.Stderr),
		)
		defer pb.Finish()
		f = bootstrap.WithProgress(f, pb)
	}

	res, err := bootstrap.Service(f).Get(ctx, q)
	if err != nil {
		if errors.Is(err, auction.ErrInvalidArgument) {
			base.SetExitStatus(base.SInvalidParameters)
		} else {
			base.SetExitStatus(base.SApplicationError)
		}
		return err
	}

	if err := save(output, fmtName, res); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	if res.IsError() {
		base.SetExitStatus(base.SFetchError)
		return errors.New(res.Err.Error)
	}
	cfg.Log.InfoContext(ctx, "fetch: done", "records", len(res.Records), "output", output, "format", fmtName)
	return nil
}

// save writes the result to the named output.
func save(name, format string, res auction.Result) error {
	w, err := osext.Create(name)
	if err != nil {
		return err
	}
	if err := write(w, format, res, osext.IsTerminal(os.Stdout) && (name == "" || name == osext.Stdout)); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// parseQuery builds the query from the month flags.  An empty "to" means the
// same month as "from".
func parseQuery(from, to, lang string) (auction.Query, error) {
	if from == "" {
		return auction.Query{}, errors.New("-from must be specified")
	}
	if to == "" {
		to = from
	}
	start, err := parseMonth("-from", from)
	if err != nil {
		return auction.Query{}, err
	}
	end, err := parseMonth("-to", to)
	if err != nil {
		return auction.Query{}, err
	}
	return auction.Query{
		StartYear:  start.Year(),
		StartMonth: int(start.Month()),
		EndYear:    end.Year(),
		EndMonth:   int(end.Month()),
		Language:   lang,
	}, nil
}

func parseMonth(flagName, s string) (time.Time, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s value %q, want YYYY-MM", flagName, s)
	}
	return t, nil
}
