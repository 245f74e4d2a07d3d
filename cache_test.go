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

package climreg

import (
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

// cacheTestState builds a state with fields of rank 3, 1 and 0, with
// values exercising exact round-trip of negative, fractional and large
// magnitudes.
func cacheTestState() State {
	data := sparse.ZerosDense(2, 3, 4)
	for i := range data.Elements {
		data.Elements[i] = math.Sqrt(float64(i)) - 2.5
	}
	lat := sparse.ZerosDense(3)
	lat.Elements[0], lat.Elements[1], lat.Elements[2] = -90, 0, 90
	scalar := sparse.ZerosDense()
	scalar.Elements[0] = 7.292e-5
	return State{
		"air_temperature": &Field{
			Data:  data,
			Dims:  []string{"lon", "lat", "lev"},
			Attrs: map[string]string{"units": "degK", "long_name": "air temperature"},
		},
		"latitude": &Field{
			Data:  lat,
			Dims:  []string{"lat"},
			Attrs: map[string]string{"units": "degrees_N"},
		},
		"planet_rotation_rate": &Field{
			Data:  scalar,
			Dims:  []string{},
			Attrs: map[string]string{"units": "s^-1"},
		},
	}
}

func TestCacheRoundTripOne(t *testing.T) {
	c := &Cache{Dir: t.TempDir()}
	want := One(cacheTestState())
	if err := c.Store("TestComponent", want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := c.Load("TestComponent")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("stored record not found")
	}
	if got.Tuple() {
		t.Error("single state loaded as tuple")
	}
	if err := CompareOutputs(got, want); err != nil {
		t.Errorf("round trip not exact: %v", err)
	}
}

func TestCacheRoundTripMany(t *testing.T) {
	c := &Cache{Dir: t.TempDir()}
	first := cacheTestState()
	second := State{
		"column_precipitation_rate": &Field{
			Data:  sparse.ZerosDense(),
			Dims:  []string{},
			Attrs: map[string]string{"units": "m s^-1"},
		},
	}
	want := Many(first, second)
	if err := c.Store("TestComponent", want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := c.Load("TestComponent")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("stored record not found")
	}
	if !got.Tuple() || got.Len() != 2 {
		t.Fatalf("got tuple=%v len=%d, want tuple len 2", got.Tuple(), got.Len())
	}
	if err := CompareOutputs(got, want); err != nil {
		t.Errorf("round trip not exact: %v", err)
	}
}

func TestCacheMissing(t *testing.T) {
	c := &Cache{Dir: t.TempDir()}
	_, ok, err := c.Load("NeverStored")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("found a record that was never stored")
	}
}

func TestCacheRemove(t *testing.T) {
	c := &Cache{Dir: t.TempDir()}
	if err := c.Store("TestComponent", One(cacheTestState())); err != nil {
		t.Fatal(err)
	}
	if err := c.Remove("TestComponent"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Load("TestComponent"); ok {
		t.Error("record still present after Remove")
	}
	if err := c.Remove("TestComponent"); err == nil {
		t.Error("no error removing a missing record")
	}
}

func TestCacheLoadOrdinalOrder(t *testing.T) {
	c := &Cache{Dir: t.TempDir()}
	// More than ten states, so lexicographic file ordering would load
	// ordinal 10 before 2.
	states := make([]State, 12)
	for i := range states {
		data := sparse.ZerosDense()
		data.Elements[0] = float64(i)
		states[i] = State{
			"ordinal_marker": &Field{
				Data:  data,
				Dims:  []string{},
				Attrs: map[string]string{"units": ""},
			},
		}
	}
	if err := c.Store("WideTuple", Many(states...)); err != nil {
		t.Fatal(err)
	}
	got, ok, err := c.Load("WideTuple")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || !got.Tuple() || got.Len() != 12 {
		t.Fatalf("got ok=%v tuple=%v len=%d, want 12-tuple", ok, got.Tuple(), got.Len())
	}
	for i := 0; i < 12; i++ {
		if v := got.State(i)["ordinal_marker"].Data.Elements[0]; v != float64(i) {
			t.Errorf("element %d holds state %g", i, v)
		}
	}
}

func TestCacheHyphenatedSubjects(t *testing.T) {
	c := &Cache{Dir: t.TempDir()}
	held := cacheTestState()
	heldSuarez := cacheTestState()
	heldSuarez["latitude"].Data.Elements[0] = -45
	if err := c.Store("Held", One(held)); err != nil {
		t.Fatal(err)
	}
	if err := c.Store("Held-Suarez", One(heldSuarez)); err != nil {
		t.Fatal(err)
	}

	subjects, err := c.Subjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(subjects) != 2 || subjects[0] != "Held" || subjects[1] != "Held-Suarez" {
		t.Errorf("got %v, want [Held Held-Suarez]", subjects)
	}

	// A record for Held-Suarez must not bleed into loads of Held,
	// whose name is a prefix of it.
	got, ok, err := c.Load("Held")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("record for Held not found")
	}
	if err := CompareOutputs(got, One(held)); err != nil {
		t.Errorf("load of Held picked up another subject: %v", err)
	}
	got, ok, err = c.Load("Held-Suarez")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("record for Held-Suarez not found")
	}
	if err := CompareOutputs(got, One(heldSuarez)); err != nil {
		t.Errorf("hyphenated subject record wrong: %v", err)
	}
}

func TestCacheSubjects(t *testing.T) {
	c := &Cache{Dir: t.TempDir()}
	state := cacheTestState()
	if err := c.Store("Beta", Many(state, state)); err != nil {
		t.Fatal(err)
	}
	if err := c.Store("Alpha", One(state)); err != nil {
		t.Fatal(err)
	}
	subjects, err := c.Subjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(subjects) != 2 || subjects[0] != "Alpha" || subjects[1] != "Beta" {
		t.Errorf("got %v, want [Alpha Beta]", subjects)
	}
}
