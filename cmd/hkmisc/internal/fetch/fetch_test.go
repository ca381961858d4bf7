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

package fetch

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/cfg"
	"github.com/hkopenai/hkmisc/internal/auction"
	"github.com/hkopenai/hkmisc/internal/config"
)

func TestParseQuery(t *testing.T) {
	type args struct {
		from string
		to   string
		lang string
	}
	tests := []struct {
		name    string
		args    args
		want    auction.Query
		wantErr bool
	}{
		{
			name: "range",
			args: args{"2023-01", "2023-03", "EN"},
			want: auction.Query{StartYear: 2023, StartMonth: 1, EndYear: 2023, EndMonth: 3, Language: "EN"},
		},
		{
			name: "to defaults to from",
			args: args{"2024-07", "", "tc"},
			want: auction.Query{StartYear: 2024, StartMonth: 7, EndYear: 2024, EndMonth: 7, Language: "tc"},
		},
		{
			name: "inverted range is passed through",
			args: args{"2024-05", "2023-01", "SC"},
			want: auction.Query{StartYear: 2024, StartMonth: 5, EndYear: 2023, EndMonth: 1, Language: "SC"},
		},
		{name: "missing from", args: args{"", "2023-01", "EN"}, wantErr: true},
		{name: "bad from", args: args{"2023/01", "", "EN"}, wantErr: true},
		{name: "bad month", args: args{"2023-13", "", "EN"}, wantErr: true},
		{name: "bad to", args: args{"2023-01", "March", "EN"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuery(tt.args.from, tt.args.to, tt.args.lang)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

var testRecords = []auction.Record{
	{DateOfAuction: "2023-01-15", AuctionListNo: "1/2023", LotNo: "A1", Description: "Chairs", Quantity: "10", Unit: "pcs"},
	{DateOfAuction: "Invalid Date", AuctionListNo: "1/2023", LotNo: "A2", Description: "Desks, oak", Quantity: "2", Unit: "pcs"},
}

func TestWrite(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, write(&buf, formatJSON, auction.Result{Records: testRecords}, false))
		assert.Contains(t, buf.String(), `"Date of Auction":"2023-01-15"`)
		assert.Contains(t, buf.String(), `"Date of Auction":"Invalid Date"`)
	})
	t.Run("json empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, write(&buf, formatJSON, auction.Result{}, false))
		assert.Equal(t, "[]\n", buf.String())
	})
	t.Run("json indented", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, write(&buf, formatJSON, auction.Result{Records: testRecords[:1]}, true))
		assert.Contains(t, buf.String(), "\n    \"Description\": \"Chairs\"")
	})
	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, write(&buf, formatCSV, auction.Result{Records: testRecords}, false))
		want := "Date of Auction,Auction List No.,Lot No.,Description,Quantity,Unit\n" +
			"2023-01-15,1/2023,A1,Chairs,10,pcs\n" +
			"Invalid Date,1/2023,A2,\"Desks, oak\",2,pcs\n"
		assert.Equal(t, want, buf.String())
	})
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, write(&buf, formatTable, auction.Result{Records: testRecords}, false))
		assert.Contains(t, buf.String(), "Chairs")
		assert.Contains(t, buf.String(), "Invalid Date")
	})
	t.Run("error result is always json", func(t *testing.T) {
		res := auction.Result{Err: &auction.ErrorValue{Type: "Error", Error: "CSV fetch failed"}}
		for _, f := range formats {
			var buf bytes.Buffer
			require.NoError(t, write(&buf, f, res, false))
			assert.JSONEq(t, `{"type":"Error","error":"CSV fetch failed"}`, buf.String(), f)
		}
	})
	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, write(&bytes.Buffer{}, "xml", auction.Result{}, false))
	})
}

const testCSV = "Date of Auction,Auction List No.,Lot No.,Description,Quantity,Unit\n" +
	"15/01/2023,1/2023,A1,Chairs,10,pcs\n" +
	"15/06/2023,1/2023,A2,Desks,2,pcs\n"

func setFlags(t *testing.T, from, to, out, f string) {
	t.Helper()
	saved := []string{fromMonth, toMonth, language, output, format}
	t.Cleanup(func() {
		fromMonth, toMonth, language, output, format = saved[0], saved[1], saved[2], saved[3], saved[4]
		cfg.Config = config.Default()
	})
	fromMonth, toMonth, language, output, format = from, to, "EN", out, f
}

func TestRunFetch(t *testing.T) {
	t.Run("writes records", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/auctionList_1-2023_EN.csv") {
				w.Write([]byte(testCSV))
				return
			}
			http.NotFound(w, r)
		}))
		defer srv.Close()

		out := filepath.Join(t.TempDir(), "lots.csv")
		setFlags(t, "2023-01", "2023-02", out, formatCSV)
		cfg.Config.BaseURL = srv.URL
		cfg.Config.MaxListNo = 2
		cfg.Config.RequestsPerMinute = 0

		require.NoError(t, runFetch(t.Context(), CmdFetch, nil))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t,
			"Date of Auction,Auction List No.,Lot No.,Description,Quantity,Unit\n"+
				"2023-01-15,1/2023,A1,Chairs,10,pcs\n",
			string(data))
	})
	t.Run("fetch failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		out := filepath.Join(t.TempDir(), "lots.json")
		setFlags(t, "2023-01", "", out, formatJSON)
		cfg.Config.BaseURL = srv.URL
		cfg.Config.RequestsPerMinute = 0

		err := runFetch(t.Context(), CmdFetch, nil)
		require.Error(t, err)

		data, rerr := os.ReadFile(out)
		require.NoError(t, rerr)
		assert.Contains(t, string(data), `"type":"Error"`)
	})
	t.Run("invalid language", func(t *testing.T) {
		setFlags(t, "2023-01", "", filepath.Join(t.TempDir(), "x.json"), formatJSON)
		language = "FR"
		err := runFetch(t.Context(), CmdFetch, nil)
		assert.True(t, errors.Is(err, auction.ErrInvalidArgument))
	})
	t.Run("unknown format", func(t *testing.T) {
		setFlags(t, "2023-01", "", "", "xml")
		err := runFetch(t.Context(), CmdFetch, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})
	t.Run("bad month", func(t *testing.T) {
		setFlags(t, "January", "", "", formatJSON)
		assert.Error(t, runFetch(t.Context(), CmdFetch, nil))
	})
}
