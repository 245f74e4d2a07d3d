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
	"testing"
	"time"
)

type runOnly struct{ ran bool }

func (c *runOnly) Inputs() []string { return nil }
func (c *runOnly) Run(state State) (Output, error) {
	c.ran = true
	return One(State{}), nil
}

type stepOnly struct{ timestep time.Duration }

func (c *stepOnly) Inputs() []string { return nil }
func (c *stepOnly) Step(state State, timestep time.Duration) (Output, error) {
	c.timestep = timestep
	return One(State{}), nil
}

type runAndStep struct {
	runOnly
	stepOnly
}

func (c *runAndStep) Inputs() []string { return nil }

func TestEvaluate(t *testing.T) {
	r := &runOnly{}
	if _, err := Evaluate(r, State{}); err != nil {
		t.Fatal(err)
	}
	if !r.ran {
		t.Error("Run not called")
	}

	s := &stepOnly{}
	if _, err := Evaluate(s, State{}); err != nil {
		t.Fatal(err)
	}
	if s.timestep != DefaultTimestep {
		t.Errorf("timestep: got %v, want %v", s.timestep, DefaultTimestep)
	}

	// A component with both capabilities is evaluated as stepped.
	b := &runAndStep{}
	if _, err := Evaluate(b, State{}); err != nil {
		t.Fatal(err)
	}
	if b.runOnly.ran {
		t.Error("Run called on a stepped component")
	}
	if b.stepOnly.timestep != DefaultTimestep {
		t.Error("Step not called on a stepped component")
	}

	if _, err := Evaluate(struct{}{}, State{}); err == nil {
		t.Error("no error for a non-component")
	}
}
