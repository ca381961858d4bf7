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

// Package auction retrieves the Government Logistics Department auction
// lists and turns them into date-filtered records.
//
// The publisher has no index of the lists it has released.  Lists are
// numbered 1 to 24 within a year and published as
//
//	auctionList_{list}-{year}_{LANG}.csv
//
// so [Service.Get] probes every candidate from the newest (end year, list 24)
// to the oldest (start year, list 1), one request at a time, and treats a
// missing file as an empty list.  Any other failure aborts the whole call and
// is returned as an [ErrorValue] instead of partial data.
package auction
