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

package physics

import (
	"fmt"

	"github.com/spatialmodel/climreg"
)

const (
	gravity          = 9.80665    // m s-2
	heatCapacity     = 1004.64    // J kg-1 K-1, dry air at constant pressure
	gasConstantVapor = 461.5      // J kg-1 K-1
	latentHeat       = 2.5e6      // J kg-1, vaporization
	stefanBoltzmann  = 5.670367e-8 // W m-2 K-4
	waterDensity     = 1000.0     // kg m-3
)

// get returns the named field from state, or a
// *climreg.MissingFieldError when it is absent. Components use it for
// every state read so that an undeclared input surfaces as a typed
// error instead of a panic.
func get(state climreg.State, name string) (*climreg.Field, error) {
	f, ok := state[name]
	if !ok {
		return nil, &climreg.MissingFieldError{Field: name}
	}
	return f, nil
}

// at reads f at the grid position named by dims and index, matching
// f's own axes to dims by name. Dimensions f does not have are
// ignored, so lower-rank fields broadcast across the missing axes.
func at(f *climreg.Field, dims []string, index []int) float64 {
	pos := make([]int, len(f.Dims))
	for i, d := range f.Dims {
		for j, dd := range dims {
			if d == dd {
				pos[i] = index[j]
			}
		}
	}
	return f.Data.Get(pos...)
}

// axis returns the position of dim within dims, or an error naming
// the field when the dimension is absent.
func axis(dims []string, dim, field string) (int, error) {
	for i, d := range dims {
		if d == dim {
			return i, nil
		}
	}
	return 0, fmt.Errorf("climreg/physics: field %s has no %s dimension", field, dim)
}

// increment advances index as an odometer over shape, holding the
// axis at skip fixed. It returns false once all positions have been
// visited. A negative skip advances every axis.
func increment(index, shape []int, skip int) bool {
	for i := len(index) - 1; i >= 0; i-- {
		if i == skip {
			continue
		}
		index[i]++
		if index[i] < shape[i] {
			return true
		}
		index[i] = 0
	}
	return false
}
