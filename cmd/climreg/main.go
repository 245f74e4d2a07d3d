/*
Copyright © 2018 the ClimReg authors.
This file is part of ClimReg.

ClimReg is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ClimReg is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ClimReg.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command climreg inspects and manages the golden records used by
// component regression tests.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/climreg/climregutil"
)

func main() {
	if err := climregutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
