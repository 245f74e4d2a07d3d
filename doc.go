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

// Package climreg is an invariance-regression harness for physical
// simulation components that transform named, labeled,
// multi-dimensional fields. For each component under test it verifies
// that the output matches a previously recorded golden record exactly,
// that the output is invariant under rank reduction of the input grid
// to a single column and under reordering of the labeled axes, that
// the component's declared inputs are sufficient to reproduce the
// output, and that dimension lengths are consistent across all fields
// the component touches.
//
// Golden records live in a Cache directory, one NetCDF file per output
// state. The first run of a subject with no record stores the current
// output and fails with a *MissingCacheError; subsequent runs compare
// against the stored record and never overwrite it. A stale record must
// be removed manually (Cache.Remove or the climreg command) before it
// can be re-recorded.
package climreg

// Version is the version of this module.
const Version = "0.1.0"
