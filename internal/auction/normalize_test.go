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

package auction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func present(s string) Field {
	return Field{Value: s, Present: true}
}

func TestNormalize(t *testing.T) {
	jan2023, err := NewDateRange(2023, 1, 2023, 1)
	require.NoError(t, err)

	full := Row{
		Date:        present("15/01/2023"),
		ListNo:      present("24"),
		LotNo:       present("2"),
		Description: present("Item B"),
		Quantity:    present("20"),
		Unit:        present("pcs"),
	}

	tests := []struct {
		name   string
		row    Row
		want   Record
		wantOK bool
	}{
		{
			name: "in range is rewritten to ISO",
			row:  full,
			want: Record{
				DateOfAuction: "2023-01-15",
				AuctionListNo: "24",
				LotNo:         "2",
				Description:   "Item B",
				Quantity:      "20",
				Unit:          "pcs",
			},
			wantOK: true,
		},
		{
			name:   "start bound is inclusive",
			row:    Row{Date: present("01/01/2023"), Description: present("A"), Quantity: present("1")},
			want:   Record{DateOfAuction: "2023-01-01", Description: "A", Quantity: "1"},
			wantOK: true,
		},
		{
			name:   "end bound is the 28th",
			row:    Row{Date: present("28/01/2023"), Description: present("A"), Quantity: present("1")},
			want:   Record{DateOfAuction: "2023-01-28", Description: "A", Quantity: "1"},
			wantOK: true,
		},
		{
			name: "after the 28th is out of range",
			row:  Row{Date: present("29/01/2023"), Description: present("A"), Quantity: present("1")},
		},
		{
			name: "out of range is dropped",
			row:  Row{Date: present("01/02/2023"), Description: present("Item C"), Quantity: present("30")},
		},
		{
			name:   "unparseable date is kept verbatim",
			row:    Row{Date: present("Invalid Date"), Description: present("X"), Quantity: present("1")},
			want:   Record{DateOfAuction: "Invalid Date", Description: "X", Quantity: "1"},
			wantOK: true,
		},
		{
			name:   "single digit day is not DD/MM/YYYY",
			row:    Row{Date: present("1/01/2023"), Description: present("X"), Quantity: present("1")},
			want:   Record{DateOfAuction: "1/01/2023", Description: "X", Quantity: "1"},
			wantOK: true,
		},
		{
			name:   "impossible calendar date is kept verbatim",
			row:    Row{Date: present("31/02/2023"), Description: present("X"), Quantity: present("1")},
			want:   Record{DateOfAuction: "31/02/2023", Description: "X", Quantity: "1"},
			wantOK: true,
		},
		{
			name:   "missing date column is kept as empty string",
			row:    Row{Description: present("X"), Quantity: present("1")},
			want:   Record{Description: "X", Quantity: "1"},
			wantOK: true,
		},
		{
			name: "missing description is dropped",
			row:  Row{Date: present("Invalid Date"), Quantity: present("1")},
		},
		{
			name: "missing quantity is dropped",
			row:  Row{Date: present("15/01/2023"), Description: present("X")},
		},
		{
			name:   "empty but present description is kept",
			row:    Row{Date: present("15/01/2023"), Description: present(""), Quantity: present("")},
			want:   Record{DateOfAuction: "2023-01-15"},
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.row, jan2023)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_invertedRange(t *testing.T) {
	dr, err := NewDateRange(2024, 1, 2023, 1)
	require.NoError(t, err)
	_, ok := Normalize(Row{Date: present("15/01/2023"), Description: present("X"), Quantity: present("1")}, dr)
	assert.False(t, ok, "nothing parses into an inverted range")
	rec, ok := Normalize(Row{Date: present("TBC"), Description: present("X"), Quantity: present("1")}, dr)
	assert.True(t, ok)
	assert.Equal(t, "TBC", rec.DateOfAuction)
}
