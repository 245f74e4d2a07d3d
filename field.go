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
	"sort"

	"github.com/ctessum/sparse"
)

// A Field is one named physical quantity: a dense value array together
// with the ordered names of its dimensions and a small set of string
// metadata attributes. Every field carries at least a "units"
// attribute. len(Dims) always equals the rank of Data.
type Field struct {
	Data  *sparse.DenseArray
	Dims  []string
	Attrs map[string]string
}

// NewField creates a Field, checking that the number of dimension
// names matches the rank of data. attrs may be nil.
func NewField(data *sparse.DenseArray, dims []string, attrs map[string]string) (*Field, error) {
	if len(dims) != len(data.Shape) {
		return nil, fmt.Errorf("climreg: field has %d dimension names for rank-%d data",
			len(dims), len(data.Shape))
	}
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Field{Data: data, Dims: dims, Attrs: attrs}, nil
}

// Rank returns the number of dimensions of the field.
func (f *Field) Rank() int { return len(f.Dims) }

// Copy returns a deep copy of the field.
func (f *Field) Copy() *Field {
	dims := make([]string, len(f.Dims))
	copy(dims, f.Dims)
	return &Field{Data: f.Data.Copy(), Dims: dims, Attrs: copyAttrs(f.Attrs)}
}

func copyAttrs(attrs map[string]string) map[string]string {
	o := make(map[string]string, len(attrs))
	for k, v := range attrs {
		o[k] = v
	}
	return o
}

// A State maps field names to fields, representing one physical
// snapshot. Dimension names shared between fields are expected to have
// equal extents everywhere; this is verified by DimensionLengths, not
// enforced structurally.
type State map[string]*Field

// Copy returns a deep copy of the state.
func (s State) Copy() State {
	o := make(State, len(s))
	for name, f := range s {
		o[name] = f.Copy()
	}
	return o
}

// fieldNames returns the state's field names in sorted order.
func (s State) fieldNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VerticalDimensions is the set of dimension names treated as vertical
// level axes. ReduceRank keeps these as full slices and collapses all
// other dimensions.
var VerticalDimensions = map[string]bool{
	"lev":              true,
	"levels":           true,
	"mid_levels":       true,
	"interface_levels": true,
}

// DimensionLengths returns the extent of every named dimension across
// all fields of all given states, treating the states as one merged
// field set. If the same dimension name appears with two different
// extents, a *DimensionInconsistencyError is returned.
func DimensionLengths(states ...State) (map[string]int, error) {
	lengths := make(map[string]int)
	for _, state := range states {
		for _, name := range state.fieldNames() {
			f := state[name]
			for i, dim := range f.Dims {
				if have, ok := lengths[dim]; ok {
					if have != f.Data.Shape[i] {
						return nil, &DimensionInconsistencyError{
							Dimension: dim,
							Field:     name,
							Length:    f.Data.Shape[i],
							Expected:  have,
						}
					}
				} else {
					lengths[dim] = f.Data.Shape[i]
				}
			}
		}
	}
	return lengths, nil
}
