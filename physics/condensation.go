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
	"time"

	"github.com/ctessum/sparse"

	"github.com/spatialmodel/climreg"
)

// GridScaleCondensation is a saturation-adjustment scheme: wherever
// specific humidity exceeds saturation, the excess condenses within
// the timestep, warming the layer by the released latent heat, and
// the condensate falls out immediately as precipitation.
type GridScaleCondensation struct{}

func (c *GridScaleCondensation) Inputs() []string {
	return []string{
		"air_pressure",
		"air_temperature",
		"specific_humidity",
		"air_pressure_on_interface_levels",
	}
}

// saturationHumidity returns the saturation specific humidity at
// temperature t (K) and pressure p (Pa), using the Bolton (1980)
// saturation vapor pressure fit.
func saturationHumidity(t, p float64) float64 {
	es := 611.2 * math.Exp(17.67*(t-273.15)/(t-29.65))
	return 0.622 * es / (p - 0.378*es)
}

// Step returns two states: the adjusted temperature and humidity, and
// a diagnostic state with the column precipitation rate. The
// precipitation field carries the horizontal axes of the temperature
// field; with no horizontal axes it is a scalar.
func (c *GridScaleCondensation) Step(state climreg.State, timestep time.Duration) (climreg.Output, error) {
	pressure, err := get(state, "air_pressure")
	if err != nil {
		return climreg.Output{}, err
	}
	temperature, err := get(state, "air_temperature")
	if err != nil {
		return climreg.Output{}, err
	}
	humidity, err := get(state, "specific_humidity")
	if err != nil {
		return climreg.Output{}, err
	}
	pInterface, err := get(state, "air_pressure_on_interface_levels")
	if err != nil {
		return climreg.Output{}, err
	}
	kAxis, err := axis(temperature.Dims, "mid_levels", "air_temperature")
	if err != nil {
		return climreg.Output{}, err
	}
	nz := temperature.Data.Shape[kAxis]

	precipDims := make([]string, 0, len(temperature.Dims)-1)
	precipShape := make([]int, 0, len(temperature.Dims)-1)
	for i, dim := range temperature.Dims {
		if i != kAxis {
			precipDims = append(precipDims, dim)
			precipShape = append(precipShape, temperature.Data.Shape[i])
		}
	}

	dt := timestep.Seconds()
	tOut := sparse.ZerosDense(temperature.Data.Shape...)
	qOut := sparse.ZerosDense(temperature.Data.Shape...)
	precip := sparse.ZerosDense(precipShape...)

	interfaceDims := append([]string{}, temperature.Dims...)
	interfaceDims[kAxis] = "interface_levels"

	idx := make([]int, len(temperature.Dims))
	for {
		var column float64
		for k := 0; k < nz; k++ {
			idx[kAxis] = k
			t := at(temperature, temperature.Dims, idx)
			q := at(humidity, temperature.Dims, idx)
			p := at(pressure, temperature.Dims, idx)
			qsat := saturationHumidity(t, p)
			if q > qsat {
				// Linearized adjustment so the adjusted state does not
				// overshoot saturation at the warmed temperature.
				dq := (q - qsat) / (1. + latentHeat*latentHeat*qsat/
					(heatCapacity*gasConstantVapor*t*t))
				t += latentHeat / heatCapacity * dq
				q -= dq
				dp := at(pInterface, interfaceDims, setAxis(idx, kAxis, k)) -
					at(pInterface, interfaceDims, setAxis(idx, kAxis, k+1))
				column += dq * dp / (gravity * waterDensity)
			}
			tOut.Set(t, idx...)
			qOut.Set(q, idx...)
		}
		idx[kAxis] = 0
		precipIdx := make([]int, 0, len(precipShape))
		for i, v := range idx {
			if i != kAxis {
				precipIdx = append(precipIdx, v)
			}
		}
		precip.Set(column/dt, precipIdx...)
		if !increment(idx, temperature.Data.Shape, kAxis) {
			break
		}
	}

	adjusted := climreg.State{
		"air_temperature": &climreg.Field{
			Data:  tOut,
			Dims:  temperature.Dims,
			Attrs: map[string]string{"units": "degK"},
		},
		"specific_humidity": &climreg.Field{
			Data:  qOut,
			Dims:  temperature.Dims,
			Attrs: map[string]string{"units": "kg/kg"},
		},
	}
	diagnostics := climreg.State{
		"column_precipitation_rate": &climreg.Field{
			Data:  precip,
			Dims:  precipDims,
			Attrs: map[string]string{"units": "m s^-1"},
		},
	}
	return climreg.Many(adjusted, diagnostics), nil
}
