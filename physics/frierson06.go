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

// Frierson06LongwaveOpticalDepth diagnoses the longwave optical depth
// profile of Frierson et al. (2006) from latitude and the sigma
// coordinate on interface levels. It is stateless.
type Frierson06LongwaveOpticalDepth struct{}

const (
	friersonTauEquator = 6.   // optical depth at the equatorial surface
	friersonTauPole    = 1.5  // optical depth at the polar surface
	friersonLinearFrac = 0.1  // fl, weight of the linear term in sigma
)

func (c *Frierson06LongwaveOpticalDepth) Inputs() []string {
	return []string{"latitude", "sigma_on_interface_levels"}
}

// Run returns the optical depth on interface levels. The output field
// carries the latitude axes followed by the sigma axes, so a scalar
// latitude yields a pure column profile.
func (c *Frierson06LongwaveOpticalDepth) Run(state climreg.State) (climreg.Output, error) {
	latitude, err := get(state, "latitude")
	if err != nil {
		return climreg.Output{}, err
	}
	sigma, err := get(state, "sigma_on_interface_levels")
	if err != nil {
		return climreg.Output{}, err
	}

	dims := append(append([]string{}, latitude.Dims...), sigma.Dims...)
	shape := append(append([]int{}, latitude.Data.Shape...), sigma.Data.Shape...)
	tau := sparse.ZerosDense(shape...)
	for i := range tau.Elements {
		idx := tau.IndexNd(i)
		lat := at(latitude, dims, idx) * math.Pi / 180.
		sig := at(sigma, dims, idx)
		cos2 := math.Cos(lat) * math.Cos(lat)
		tau0 := friersonTauPole + (friersonTauEquator-friersonTauPole)*cos2
		tau.Elements[i] = tau0 * (friersonLinearFrac*sig +
			(1.-friersonLinearFrac)*sig*sig*sig*sig)
	}
	return climreg.One(climreg.State{
		"longwave_optical_depth_on_interface_levels": &climreg.Field{
			Data:  tau,
			Dims:  dims,
			Attrs: map[string]string{"units": ""},
		},
	}), nil
}
