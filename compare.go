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

	"gonum.org/v1/gonum/floats"
)

// CompareOutputs structurally compares a current output against a
// cached record. Tuple-ness and tuple length must match; each matched
// pair of states is then compared field by field. The first mismatch
// aborts the comparison with an error identifying the element, field,
// attribute or dimension at fault. Equality is exact; there is no
// floating-point tolerance.
func CompareOutputs(current, cached Output) error {
	if current.Tuple() != cached.Tuple() || current.Len() != cached.Len() {
		return &ShapeMismatchError{
			CurrentTuple: current.Tuple(),
			CachedTuple:  cached.Tuple(),
			CurrentLen:   current.Len(),
			CachedLen:    cached.Len(),
		}
	}
	for i := 0; i < current.Len(); i++ {
		if err := compareStatePair(current.State(i), cached.State(i)); err != nil {
			if current.Tuple() {
				return fmt.Errorf("climreg: output element %d: %w", i, err)
			}
			return err
		}
	}
	return nil
}

// compareStatePair compares one current state against one cached
// state. For every field of the current state the cached state must
// have a field of the same name with exactly equal values, an
// identical dimension-name sequence, and agreeing attributes. The
// current field may carry attributes the cached one lacks, but every
// cached attribute must be present and equal on the current field;
// this asymmetry is deliberate (it tolerates forward-compatible
// metadata additions). Finally the two field-name sets must be equal
// in both directions.
func compareStatePair(current, cached State) error {
	for _, name := range current.fieldNames() {
		cur := current[name]
		cac, ok := cached[name]
		if !ok {
			return &FieldSetMismatchError{Field: name, MissingFrom: "cached"}
		}
		if !equalInts(cur.Data.Shape, cac.Data.Shape) ||
			!floats.Equal(cur.Data.Elements, cac.Data.Elements) {
			return &ValueMismatchError{Field: name}
		}
		for _, attr := range sortedKeys(cur.Attrs) {
			if cacVal, ok := cac.Attrs[attr]; ok && cacVal != cur.Attrs[attr] {
				return &AttributeMismatchError{
					Field:     name,
					Attribute: attr,
					Current:   cur.Attrs[attr],
					Cached:    cacVal,
				}
			}
		}
		for _, attr := range sortedKeys(cac.Attrs) {
			if _, ok := cur.Attrs[attr]; !ok {
				return &AttributeMismatchError{Field: name, Attribute: attr, Missing: true}
			}
		}
		if !equalStrings(cur.Dims, cac.Dims) {
			return &DimensionOrderError{Field: name, Current: cur.Dims, Cached: cac.Dims}
		}
	}
	for _, name := range cached.fieldNames() {
		if _, ok := current[name]; !ok {
			return &FieldSetMismatchError{Field: name, MissingFrom: "current"}
		}
	}
	return nil
}

// alignOutput transposes each field of the current output to the axis
// order of the corresponding cached field, where the two orders name
// the same dimension set. It is a pure storage-order permutation used
// by the transposed invariance case: output values must be
// axis-order-invariant, while the stored label order is allowed to
// follow the (transposed) input. Fields without a cached counterpart,
// and fields whose dimension sets genuinely differ, pass through
// unchanged so the comparison can report the real fault.
func alignOutput(current, cached Output) Output {
	if current.Tuple() != cached.Tuple() || current.Len() != cached.Len() {
		return current
	}
	states := make([]State, current.Len())
	for i := range states {
		states[i] = alignState(current.State(i), cached.State(i))
	}
	return Output{states: states, tuple: current.tuple}
}

func alignState(current, cached State) State {
	out := make(State, len(current))
	for name, cur := range current {
		cac, ok := cached[name]
		if !ok || equalStrings(cur.Dims, cac.Dims) || !sameDimSet(cur.Dims, cac.Dims) {
			out[name] = cur
			continue
		}
		perm := make([]int, 0, len(cur.Dims))
		for _, dim := range cac.Dims {
			perm = append(perm, dimIndex(cur.Dims, dim))
		}
		out[name] = transposeField(cur, perm)
	}
	return out
}

func sameDimSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, dim := range a {
		if dimIndex(b, dim) < 0 {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
