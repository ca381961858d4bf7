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
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

const (
	minYear = 1
	maxYear = 9999
	// endDay is the day of the end month the range ends on.
	endDay = 28
)

var (
	validate     = validator.New(validator.WithRequiredStructEnabled())
	translations ut.Translator
)

func init() {
	enLocale := en.New()
	translations, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	if err := entrans.RegisterDefaultTranslations(validate, translations); err != nil {
		panic(err)
	}
	// report argument names as the tool caller knows them.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidateLanguage returns the canonical language code.  The comparison is
// case-insensitive.
func ValidateLanguage(code string) (Language, error) {
	lang := Language(strings.ToUpper(code))
	for _, l := range languages {
		if lang == l {
			return lang, nil
		}
	}
	return "", fmt.Errorf("%w: language must be one of 'EN', 'TC', 'SC', got %q", ErrInvalidArgument, code)
}

// DateRange is the inclusive range of auction dates to return.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange returns the range from the 1st of the start month to the 28th
// of the end month.  The range is not reordered if start is after end.
func NewDateRange(startYear, startMonth, endYear, endMonth int) (DateRange, error) {
	start, err := calendarDate(startYear, startMonth, 1)
	if err != nil {
		return DateRange{}, fmt.Errorf("start: %w", err)
	}
	end, err := calendarDate(endYear, endMonth, endDay)
	if err != nil {
		return DateRange{}, fmt.Errorf("end: %w", err)
	}
	return DateRange{Start: start, End: end}, nil
}

func calendarDate(year, month, day int) (time.Time, error) {
	if year < minYear || maxYear < year {
		return time.Time{}, fmt.Errorf("%w: year %d is out of range %d..%d", ErrInvalidArgument, year, minYear, maxYear)
	}
	if month < 1 || 12 < month {
		return time.Time{}, fmt.Errorf("%w: month must be in 1..12, got %d", ErrInvalidArgument, month)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// Contains reports whether t falls within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Query holds the tool inputs.
type Query struct {
	StartYear  int    `json:"start_year" validate:"min=1,max=9999"`
	StartMonth int    `json:"start_month" validate:"min=1,max=12"`
	EndYear    int    `json:"end_year" validate:"min=1,max=9999"`
	EndMonth   int    `json:"end_month" validate:"min=1,max=12"`
	Language   string `json:"language" validate:"required"`
}

// Validate checks the query and returns the canonical language and date
// range.  All returned errors wrap ErrInvalidArgument.
func (q Query) Validate() (Language, DateRange, error) {
	if err := validate.Struct(q); err != nil {
		var vErr validator.ValidationErrors
		if errors.As(err, &vErr) {
			msgs := make([]string, 0, len(vErr))
			for _, fe := range vErr {
				msgs = append(msgs, fe.Translate(translations))
			}
			return "", DateRange{}, fmt.Errorf("%w: %s", ErrInvalidArgument, strings.Join(msgs, "; "))
		}
		return "", DateRange{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	lang, err := ValidateLanguage(q.Language)
	if err != nil {
		return "", DateRange{}, err
	}
	dr, err := NewDateRange(q.StartYear, q.StartMonth, q.EndYear, q.EndMonth)
	if err != nil {
		return "", DateRange{}, err
	}
	return lang, dr, nil
}
