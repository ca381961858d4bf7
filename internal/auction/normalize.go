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

import "time"

const (
	upstreamDateLayout = "02/01/2006" // DD/MM/YYYY
	isoDateLayout      = time.DateOnly
)

// Normalize converts a row into a record.  It returns false if the row must
// be dropped: the row lacks Description or Quantity, or its auction date
// parses and falls outside dr.  A date that does not parse is kept as is and
// the row is always returned.
func Normalize(row Row, dr DateRange) (Record, bool) {
	if !row.Description.Present || !row.Quantity.Present {
		return Record{}, false
	}
	rec := Record{
		DateOfAuction: row.Date.Or(""),
		AuctionListNo: row.ListNo.Or(""),
		LotNo:         row.LotNo.Or(""),
		Description:   row.Description.Value,
		Quantity:      row.Quantity.Value,
		Unit:          row.Unit.Or(""),
	}
	date, err := time.Parse(upstreamDateLayout, rec.DateOfAuction)
	if err != nil {
		return rec, true
	}
	if !dr.Contains(date) {
		return Record{}, false
	}
	rec.DateOfAuction = date.Format(isoDateLayout)
	return rec, true
}
