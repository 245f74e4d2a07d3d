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

// Package physics provides deterministic reference components for the
// climreg regression harness: a Held-Suarez forcing, a gray-gas
// longwave radiation scheme with its Frierson optical-depth
// diagnostic, and a grid-scale condensation scheme. The components
// locate axes by dimension name rather than by position, so they
// satisfy the harness's rank-reduction and transposition invariance
// laws by construction.
package physics
