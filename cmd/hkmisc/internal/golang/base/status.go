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

package base

import "strconv"

// StatusCode is the code returned to the OS.
type StatusCode uint8

// Status codes returned by the main executable.
const (
	SNoError StatusCode = iota
	SGenericError
	SHelpRequested
	SInvalidParameters
	SInitializationError
	SApplicationError
	SFetchError
	SUserError
)

var statusNames = [...]string{
	SNoError:             "NoError",
	SGenericError:        "GenericError",
	SHelpRequested:       "HelpRequested",
	SInvalidParameters:   "InvalidParameters",
	SInitializationError: "InitializationError",
	SApplicationError:    "ApplicationError",
	SFetchError:          "FetchError",
	SUserError:           "UserError",
}

func (s StatusCode) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "StatusCode(" + strconv.Itoa(int(s)) + ")"
}
