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

import "time"

// A Component is a stateless physical process: its output is fully
// determined by the input state and the fields it declares as inputs.
type Component interface {
	// Inputs returns the names of the fields the component requires
	// from the input state.
	Inputs() []string

	Run(state State) (Output, error)
}

// A SteppedComponent is a physical process that advances the input
// state over a time interval.
type SteppedComponent interface {
	Inputs() []string

	Step(state State, timestep time.Duration) (Output, error)
}

// An Output holds the one or more states produced by a component
// evaluation. A tuple of states is distinct from a single state, even
// when the tuple has one element; comparison treats the distinction as
// part of equality.
type Output struct {
	states []State
	tuple  bool
}

// One wraps a single state.
func One(s State) Output {
	return Output{states: []State{s}}
}

// Many wraps an ordered tuple of states (for example tendencies and
// diagnostics).
func Many(states ...State) Output {
	return Output{states: states, tuple: true}
}

// Tuple reports whether the output is a tuple rather than a single
// state.
func (o Output) Tuple() bool { return o.tuple }

// Len returns the number of states in the output.
func (o Output) Len() int { return len(o.states) }

// State returns the i'th state of the output.
func (o Output) State(i int) State { return o.states[i] }

// States returns the output's states in order.
func (o Output) States() []State { return o.states }

// Map returns a new output with mod applied to every state, preserving
// tuple-ness.
func (o Output) Map(mod StateModifier) Output {
	states := make([]State, len(o.states))
	for i, s := range o.states {
		states[i] = mod(s)
	}
	return Output{states: states, tuple: o.tuple}
}
