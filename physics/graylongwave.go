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
	"math"

	"github.com/ctessum/sparse"

	"github.com/spatialmodel/climreg"
)

// GrayLongwaveRadiation is a stateless two-stream gray-gas longwave
// scheme. Fluxes are integrated along each column from an optical
// depth profile on interface levels; interface index 0 is the surface.
// The scheme produces the temperature tendency and the up- and
// downwelling flux diagnostics.
type GrayLongwaveRadiation struct{}

func (c *GrayLongwaveRadiation) Inputs() []string {
	return []string{
		"longwave_optical_depth_on_interface_levels",
		"air_temperature",
		"air_pressure_on_interface_levels",
		"surface_temperature",
	}
}

// Run returns two states: the temperature tendency on mid levels, and
// the upwelling and downwelling fluxes on interface levels. Horizontal
// axes follow the air temperature field; the vertical axis is located
// by name, so any storage order works.
func (c *GrayLongwaveRadiation) Run(state climreg.State) (climreg.Output, error) {
	tau, err := get(state, "longwave_optical_depth_on_interface_levels")
	if err != nil {
		return climreg.Output{}, err
	}
	temperature, err := get(state, "air_temperature")
	if err != nil {
		return climreg.Output{}, err
	}
	pInterface, err := get(state, "air_pressure_on_interface_levels")
	if err != nil {
		return climreg.Output{}, err
	}
	tSurface, err := get(state, "surface_temperature")
	if err != nil {
		return climreg.Output{}, err
	}
	kAxis, err := axis(temperature.Dims, "mid_levels", "air_temperature")
	if err != nil {
		return climreg.Output{}, err
	}
	nz := temperature.Data.Shape[kAxis]

	fluxDims := append([]string{}, temperature.Dims...)
	fluxDims[kAxis] = "interface_levels"
	fluxShape := append([]int{}, temperature.Data.Shape...)
	fluxShape[kAxis] = nz + 1

	up := sparse.ZerosDense(fluxShape...)
	down := sparse.ZerosDense(fluxShape...)
	tend := sparse.ZerosDense(temperature.Data.Shape...)

	emission := make([]float64, nz)
	transmit := make([]float64, nz)
	upCol := make([]float64, nz+1)
	downCol := make([]float64, nz+1)
	idx := make([]int, len(fluxDims))
	for {
		for k := 0; k < nz; k++ {
			idx[kAxis] = k
			t := at(temperature, temperature.Dims, idx)
			emission[k] = stefanBoltzmann * t * t * t * t
			dTau := at(tau, fluxDims, setAxis(idx, kAxis, k+1)) -
				at(tau, fluxDims, setAxis(idx, kAxis, k))
			transmit[k] = math.Exp(-math.Abs(dTau))
		}
		idx[kAxis] = 0
		ts := at(tSurface, fluxDims, idx)
		upCol[0] = stefanBoltzmann * ts * ts * ts * ts
		for k := 0; k < nz; k++ {
			upCol[k+1] = upCol[k]*transmit[k] + emission[k]*(1.-transmit[k])
		}
		downCol[nz] = 0.
		for k := nz - 1; k >= 0; k-- {
			downCol[k] = downCol[k+1]*transmit[k] + emission[k]*(1.-transmit[k])
		}
		for k := 0; k <= nz; k++ {
			idx[kAxis] = k
			up.Set(upCol[k], idx...)
			down.Set(downCol[k], idx...)
		}
		for k := 0; k < nz; k++ {
			idx[kAxis] = k
			dp := at(pInterface, fluxDims, setAxis(idx, kAxis, k+1)) -
				at(pInterface, fluxDims, setAxis(idx, kAxis, k))
			net0 := upCol[k] - downCol[k]
			net1 := upCol[k+1] - downCol[k+1]
			tend.Set(-gravity/heatCapacity*(net1-net0)/dp, idx...)
		}
		idx[kAxis] = 0
		if !increment(idx, fluxShape, kAxis) {
			break
		}
	}

	tendencies := climreg.State{
		"air_temperature_tendency": &climreg.Field{
			Data:  tend,
			Dims:  temperature.Dims,
			Attrs: map[string]string{"units": "degK s^-1"},
		},
	}
	diagnostics := climreg.State{
		"upwelling_longwave_flux_in_air": &climreg.Field{
			Data:  up,
			Dims:  fluxDims,
			Attrs: map[string]string{"units": "W m^-2"},
		},
		"downwelling_longwave_flux_in_air": &climreg.Field{
			Data:  down,
			Dims:  fluxDims,
			Attrs: map[string]string{"units": "W m^-2"},
		},
	}
	return climreg.Many(tendencies, diagnostics), nil
}

// setAxis returns index with the value at axis replaced by k. The
// returned slice is a copy so callers can hold several positions at
// once.
func setAxis(index []int, axis, k int) []int {
	out := append([]int{}, index...)
	out[axis] = k
	return out
}
