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

// Package osext provides some helpful os functions.
package osext

import (
	"io"
	"os"
)

// Stdout is the name that selects the standard output in Create.
const Stdout = "-"

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Create creates the named file for writing.  If name is empty or "-", it
// returns the standard output, and closing it is a no-op.
func Create(name string) (io.WriteCloser, error) {
	if name == "" || name == Stdout {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(name)
}
