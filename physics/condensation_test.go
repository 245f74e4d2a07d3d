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
	"testing"
	"time"

	"github.com/ctessum/sparse"

	"github.com/spatialmodel/climreg"
)

// condensationColumn builds a single-column state with nz mid levels
// at uniform temperature and specific humidity.
func condensationColumn(nz int, temperature, humidity float64) climreg.State {
	pInterface := sparse.ZerosDense(nz + 1)
	pMid := sparse.ZerosDense(nz)
	for k := 0; k <= nz; k++ {
		pInterface.Elements[k] = 1e5 * (1. - 0.9*float64(k)/float64(nz))
	}
	for k := 0; k < nz; k++ {
		pMid.Elements[k] = 0.5 * (pInterface.Elements[k] + pInterface.Elements[k+1])
	}
	temp := sparse.ZerosDense(nz)
	q := sparse.ZerosDense(nz)
	for k := 0; k < nz; k++ {
		temp.Elements[k] = temperature
		q.Elements[k] = humidity
	}
	return climreg.State{
		"air_pressure": &climreg.Field{
			Data:  pMid,
			Dims:  []string{"mid_levels"},
			Attrs: map[string]string{"units": "Pa"},
		},
		"air_temperature": &climreg.Field{
			Data:  temp,
			Dims:  []string{"mid_levels"},
			Attrs: map[string]string{"units": "degK"},
		},
		"specific_humidity": &climreg.Field{
			Data:  q,
			Dims:  []string{"mid_levels"},
			Attrs: map[string]string{"units": "kg/kg"},
		},
		"air_pressure_on_interface_levels": &climreg.Field{
			Data:  pInterface,
			Dims:  []string{"interface_levels"},
			Attrs: map[string]string{"units": "Pa"},
		},
	}
}

func TestCondensationSubsaturated(t *testing.T) {
	component := &GridScaleCondensation{}
	// Cold dry air stays untouched.
	state := condensationColumn(5, 260, 1e-4)
	out, err := component.Step(state, 10*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Tuple() || out.Len() != 2 {
		t.Fatalf("got tuple=%v len=%d, want tuple of 2", out.Tuple(), out.Len())
	}
	adjusted, diagnostics := out.State(0), out.State(1)
	for k := 0; k < 5; k++ {
		if v := adjusted["air_temperature"].Data.Get(k); v != 260 {
			t.Errorf("temperature at %d: got %g, want unchanged 260", k, v)
		}
		if v := adjusted["specific_humidity"].Data.Get(k); v != 1e-4 {
			t.Errorf("humidity at %d: got %g, want unchanged 1e-4", k, v)
		}
	}
	if v := diagnostics["column_precipitation_rate"].Data.Elements[0]; v != 0 {
		t.Errorf("precipitation %g, want 0", v)
	}
}

func TestCondensationSupersaturated(t *testing.T) {
	component := &GridScaleCondensation{}
	// Warm air loaded well past saturation condenses, warms and
	// rains.
	state := condensationColumn(5, 290, 0.05)
	out, err := component.Step(state, 10*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	adjusted, diagnostics := out.State(0), out.State(1)
	var condensed int
	for k := 0; k < 5; k++ {
		temp := adjusted["air_temperature"].Data.Get(k)
		q := adjusted["specific_humidity"].Data.Get(k)
		// Saturation humidity rises as pressure falls, so the upper
		// levels of the column may hold 0.05 kg/kg without
		// condensing; those must pass through unchanged.
		if saturationHumidity(290, state["air_pressure"].Data.Get(k)) >= 0.05 {
			if temp != 290 || q != 0.05 {
				t.Errorf("subsaturated level %d modified: T=%g q=%g", k, temp, q)
			}
			continue
		}
		condensed++
		if temp <= 290 {
			t.Errorf("temperature at %d: got %g, want latent heating above 290", k, temp)
		}
		if q >= 0.05 || q <= 0 {
			t.Errorf("humidity at %d: got %g, want drying within (0, 0.05)", k, q)
		}
		// Latent heating balances the condensed water exactly.
		heating := heatCapacity * (temp - 290)
		release := latentHeat * (0.05 - q)
		if math.Abs(heating-release) > 1e-9*release {
			t.Errorf("energy imbalance at %d: heating %g, release %g", k, heating, release)
		}
	}
	if condensed == 0 {
		t.Fatal("no level of the fixture exceeds saturation")
	}
	precip := diagnostics["column_precipitation_rate"].Data.Elements[0]
	if precip <= 0 {
		t.Errorf("precipitation %g, want positive", precip)
	}

	// The rain rate accounts for all condensed water in the column.
	var want float64
	pInterface := state["air_pressure_on_interface_levels"].Data
	for k := 0; k < 5; k++ {
		dq := 0.05 - adjusted["specific_humidity"].Data.Get(k)
		dp := pInterface.Get(k) - pInterface.Get(k+1)
		want += dq * dp / (gravity * waterDensity)
	}
	want /= 10 // timestep in seconds
	if math.Abs(precip-want) > 1e-12 {
		t.Errorf("precipitation %g, want %g", precip, want)
	}
}

func TestCondensationInputs(t *testing.T) {
	component := &GridScaleCondensation{}
	state := condensationColumn(5, 290, 0.05)
	for _, name := range component.Inputs() {
		if _, ok := state[name]; !ok {
			t.Errorf("declared input %s missing from reference column", name)
		}
	}
	delete(state, "specific_humidity")
	_, err := component.Step(state, 10*time.Second)
	if _, ok := err.(*climreg.MissingFieldError); !ok {
		t.Errorf("got %v, want MissingFieldError", err)
	}
}
