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
	"fmt"
	"time"
)

// DefaultTimestep is the interval stepped components are evaluated
// with during regression runs. Any fixed interval works because
// outputs are compared against a record taken with the same interval,
// not against physical expectation.
const DefaultTimestep = 10 * time.Second

// Evaluate runs component on state with the calling convention
// matching its capability: stepped components receive DefaultTimestep,
// stateless components receive the state alone. A component
// implementing both interfaces is evaluated as stepped. Evaluate has no
// side effects beyond the component's own.
func Evaluate(component interface{}, state State) (Output, error) {
	switch c := component.(type) {
	case SteppedComponent:
		return c.Step(state, DefaultTimestep)
	case Component:
		return c.Run(state)
	}
	return Output{}, fmt.Errorf("climreg: %T implements neither Component nor SteppedComponent", component)
}

// componentInputs returns the declared input field names of a
// component of either capability variant.
func componentInputs(component interface{}) ([]string, error) {
	c, ok := component.(interface{ Inputs() []string })
	if !ok {
		return nil, fmt.Errorf("climreg: %T does not declare inputs", component)
	}
	return c.Inputs(), nil
}
