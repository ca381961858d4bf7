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

import "iter"

// DefaultMaxListNo is the highest list number the publisher uses within a
// year.  The newest list of a year is not known in advance, so traversal
// starts here and relies on missing lists being reported as not found.
const DefaultMaxListNo = 24

// Traverse yields the identifiers to probe, newest first: list maxListNo down
// to 1 of endYear, then of endYear-1, and so on down to startYear.  Nothing is
// yielded if endYear < startYear.
func Traverse(startYear, endYear, maxListNo int, lang Language) iter.Seq[Identifier] {
	if maxListNo < 1 {
		maxListNo = DefaultMaxListNo
	}
	return func(yield func(Identifier) bool) {
		year, listNo := endYear, maxListNo
		for year >= startYear {
			if !yield(Identifier{Year: year, ListNo: listNo, Lang: lang}) {
				return
			}
			listNo--
			if listNo < 1 {
				listNo = maxListNo
				year--
			}
		}
	}
}

// NumProbes returns the number of identifiers Traverse yields.
func NumProbes(startYear, endYear, maxListNo int) int {
	if endYear < startYear {
		return 0
	}
	if maxListNo < 1 {
		maxListNo = DefaultMaxListNo
	}
	return (endYear - startYear + 1) * maxListNo
}
