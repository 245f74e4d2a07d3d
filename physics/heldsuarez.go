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

// HeldSuarez is the Held and Suarez (1994) idealized forcing:
// Newtonian relaxation of temperature toward a zonally symmetric
// equilibrium profile and Rayleigh damping of low-level winds.
// Tendencies are computed implicitly in the timestep, so the scheme is
// stable for any interval.
//
// The coordinate fields Latitude, Pressure and Sigma may be bound at
// construction; when any of them is non-nil it is used instead of the
// corresponding input field, and Inputs omits its name.
type HeldSuarez struct {
	Latitude *climreg.Field // degrees_N
	Pressure *climreg.Field // hPa
	Sigma    *climreg.Field // dimensionless
}

const (
	hsRelaxFree    = 1. / (40. * 86400.) // ka, s-1
	hsRelaxSurface = 1. / (4. * 86400.)  // ks, s-1
	hsDamping      = 1. / 86400.         // kf, s-1
	hsSigmaB       = 0.7
	hsDeltaTy      = 60.      // K, equator-to-pole equilibrium contrast
	hsDeltaThetaZ  = 10.      // K, vertical equilibrium contrast
	hsP0           = 1000.    // hPa
	hsKappa        = 2. / 7.  // R/cp
	hsMinTeq       = 200.     // K, stratospheric floor
)

func (h *HeldSuarez) Inputs() []string {
	names := []string{"air_temperature", "eastward_wind", "northward_wind"}
	if h.Latitude == nil {
		names = append(names, "latitude")
	}
	if h.Pressure == nil {
		names = append(names, "air_pressure")
	}
	if h.Sigma == nil {
		names = append(names, "sigma")
	}
	return names
}

// Step returns two states: the tendencies of temperature and wind, and
// a diagnostic state holding the equilibrium temperature profile. All
// output fields follow the axis order of the input field they derive
// from.
func (h *HeldSuarez) Step(state climreg.State, timestep time.Duration) (climreg.Output, error) {
	temperature, err := get(state, "air_temperature")
	if err != nil {
		return climreg.Output{}, err
	}
	eastward, err := get(state, "eastward_wind")
	if err != nil {
		return climreg.Output{}, err
	}
	northward, err := get(state, "northward_wind")
	if err != nil {
		return climreg.Output{}, err
	}
	latitude, pressure, sigma := h.Latitude, h.Pressure, h.Sigma
	if latitude == nil {
		if latitude, err = get(state, "latitude"); err != nil {
			return climreg.Output{}, err
		}
	}
	if pressure == nil {
		if pressure, err = get(state, "air_pressure"); err != nil {
			return climreg.Output{}, err
		}
	}
	if sigma == nil {
		if sigma, err = get(state, "sigma"); err != nil {
			return climreg.Output{}, err
		}
	}

	dt := timestep.Seconds()
	tTend := sparse.ZerosDense(temperature.Data.Shape...)
	teq := sparse.ZerosDense(temperature.Data.Shape...)
	for i := range tTend.Elements {
		idx := tTend.IndexNd(i)
		lat := at(latitude, temperature.Dims, idx) * math.Pi / 180.
		p := at(pressure, temperature.Dims, idx)
		sig := at(sigma, temperature.Dims, idx)
		sin2 := math.Sin(lat) * math.Sin(lat)
		cos2 := math.Cos(lat) * math.Cos(lat)

		eq := (315. - hsDeltaTy*sin2 - hsDeltaThetaZ*math.Log(p/hsP0)*cos2) *
			math.Pow(p/hsP0, hsKappa)
		if eq < hsMinTeq {
			eq = hsMinTeq
		}
		teq.Elements[i] = eq

		weight := (sig - hsSigmaB) / (1. - hsSigmaB)
		if weight < 0 {
			weight = 0
		}
		kt := hsRelaxFree + (hsRelaxSurface-hsRelaxFree)*weight*cos2*cos2
		tTend.Elements[i] = -kt * (temperature.Data.Elements[i] - eq) / (1. + kt*dt)
	}

	dampWind := func(wind *climreg.Field) *sparse.DenseArray {
		tend := sparse.ZerosDense(wind.Data.Shape...)
		for i := range tend.Elements {
			idx := tend.IndexNd(i)
			sig := at(sigma, wind.Dims, idx)
			weight := (sig - hsSigmaB) / (1. - hsSigmaB)
			if weight < 0 {
				weight = 0
			}
			kv := hsDamping * weight
			tend.Elements[i] = -kv * wind.Data.Elements[i] / (1. + kv*dt)
		}
		return tend
	}

	tendencies := climreg.State{
		"air_temperature_tendency": &climreg.Field{
			Data:  tTend,
			Dims:  temperature.Dims,
			Attrs: map[string]string{"units": "degK s^-1"},
		},
		"eastward_wind_tendency": &climreg.Field{
			Data:  dampWind(eastward),
			Dims:  eastward.Dims,
			Attrs: map[string]string{"units": "m s^-2"},
		},
		"northward_wind_tendency": &climreg.Field{
			Data:  dampWind(northward),
			Dims:  northward.Dims,
			Attrs: map[string]string{"units": "m s^-2"},
		},
	}
	diagnostics := climreg.State{
		"equilibrium_temperature": &climreg.Field{
			Data:  teq,
			Dims:  temperature.Dims,
			Attrs: map[string]string{"units": "degK"},
		},
	}
	return climreg.Many(tendencies, diagnostics), nil
}
