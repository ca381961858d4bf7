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
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when the language code or the requested
	// date range is not acceptable.  It is raised before any network I/O.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFetch is wrapped by errors that abort the traversal: transport
	// failures, unexpected HTTP statuses and malformed CSV payloads.
	ErrFetch = errors.New("fetch failed")
)

// Language is the language variant of an auction list.
type Language string

const (
	LangEN Language = "EN" // English
	LangTC Language = "TC" // Traditional Chinese
	LangSC Language = "SC" // Simplified Chinese
)

var languages = []Language{LangEN, LangTC, LangSC}

// Identifier addresses one published auction list.
type Identifier struct {
	Year   int
	ListNo int
	Lang   Language
}

func (id Identifier) String() string {
	return fmt.Sprintf("%d-%d_%s", id.ListNo, id.Year, id.Lang)
}

// Column names in the upstream CSV header.
const (
	ColDate        = "Date of Auction"
	ColListNo      = "Auction List No."
	ColLotNo       = "Lot No."
	ColDescription = "Description"
	ColQuantity    = "Quantity"
	ColUnit        = "Unit"
)

// Columns lists the known columns in the order they are published.
var Columns = []string{ColDate, ColListNo, ColLotNo, ColDescription, ColQuantity, ColUnit}

// Field is a single cell.  Present is false when the column is missing from
// the header or the row is shorter than the header.
type Field struct {
	Value   string
	Present bool
}

// Or returns the value, or def if the field is absent.
func (f Field) Or(def string) string {
	if !f.Present {
		return def
	}
	return f.Value
}

// Row is one data row of an auction list.  Columns other than the six known
// ones are ignored.
type Row struct {
	Date        Field
	ListNo      Field
	LotNo       Field
	Description Field
	Quantity    Field
	Unit        Field
}

// set assigns the value of the named column.  Unknown columns are ignored.
func (r *Row) set(column, value string) {
	f := Field{Value: value, Present: true}
	switch column {
	case ColDate:
		r.Date = f
	case ColListNo:
		r.ListNo = f
	case ColLotNo:
		r.LotNo = f
	case ColDescription:
		r.Description = f
	case ColQuantity:
		r.Quantity = f
	case ColUnit:
		r.Unit = f
	}
}

// Record is a normalised auction lot.  JSON keys match the upstream column
// names.
type Record struct {
	DateOfAuction string `json:"Date of Auction"`
	AuctionListNo string `json:"Auction List No."`
	LotNo         string `json:"Lot No."`
	Description   string `json:"Description"`
	Quantity      string `json:"Quantity"`
	Unit          string `json:"Unit"`
}

// Values returns the record fields in the order of Columns.
func (r Record) Values() []string {
	return []string{r.DateOfAuction, r.AuctionListNo, r.LotNo, r.Description, r.Quantity, r.Unit}
}

// ErrorValue is the error shape relayed to the tool caller.
type ErrorValue struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

const errorType = "Error"

// Result is either a list of records or an error value, never both.
type Result struct {
	Records []Record
	Err     *ErrorValue
}

func resultError(err error) Result {
	return Result{Err: &ErrorValue{Type: errorType, Error: err.Error()}}
}

// IsError reports whether the result carries an error value.
func (r Result) IsError() bool {
	return r.Err != nil
}

// MarshalJSON encodes the error value as an object, and the records as an
// array.  An empty successful result encodes as [].
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(r.Err)
	}
	if r.Records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Records)
}
