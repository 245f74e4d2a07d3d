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

	"github.com/ctessum/sparse"
)

// ReduceRank projects each field of state onto a single column:
// dimensions in VerticalDimensions are kept as full slices and every
// other dimension is collapsed at index zero. The collapse is a
// specific-column extraction, not an average, so reduced output is
// reproducible and comparable to the reduced form of a cached record.
// Scalar fields pass through unchanged. Each field is reduced according
// to its own dimension list; fields need not share dimensions.
func ReduceRank(state State) State {
	out := make(State, len(state))
	for name, f := range state {
		var keptPos []int
		var keptDims []string
		for i, dim := range f.Dims {
			if VerticalDimensions[dim] {
				keptPos = append(keptPos, i)
				keptDims = append(keptDims, dim)
			}
		}
		shape := make([]int, len(keptPos))
		for i, pos := range keptPos {
			shape[i] = f.Data.Shape[pos]
		}
		data := sparse.ZerosDense(shape...)
		src := make([]int, len(f.Dims))
		for i := range data.Elements {
			outIdx := data.IndexNd(i)
			for j := range src {
				src[j] = 0
			}
			for j, pos := range keptPos {
				src[pos] = outIdx[j]
			}
			data.Elements[i] = f.Data.Get(src...)
		}
		if keptDims == nil {
			keptDims = []string{}
		}
		out[name] = &Field{Data: data, Dims: keptDims, Attrs: copyAttrs(f.Attrs)}
	}
	return out
}

// Transpose reverses the axis order of every field in state. Values and
// dimension labels are preserved; only the storage order changes.
func Transpose(state State) State {
	out := make(State, len(state))
	for name, f := range state {
		perm := make([]int, len(f.Dims))
		for i := range perm {
			perm[i] = len(f.Dims) - 1 - i
		}
		out[name] = transposeField(f, perm)
	}
	return out
}

// TransposeTo reorders the axes of every field in state to follow
// order. Dimensions a field does not have are skipped for that field,
// but every dimension of every field must appear in order.
func TransposeTo(state State, order []string) (State, error) {
	out := make(State, len(state))
	for name, f := range state {
		perm := make([]int, 0, len(f.Dims))
		for _, dim := range order {
			if pos := dimIndex(f.Dims, dim); pos >= 0 {
				perm = append(perm, pos)
			}
		}
		if len(perm) != len(f.Dims) {
			return nil, fmt.Errorf("climreg: transposing field %s: dimensions %v not all in target order %v",
				name, f.Dims, order)
		}
		out[name] = transposeField(f, perm)
	}
	return out, nil
}

// transposeField permutes the axes of f so that output axis i is input
// axis perm[i].
func transposeField(f *Field, perm []int) *Field {
	dims := make([]string, len(perm))
	shape := make([]int, len(perm))
	for i, p := range perm {
		dims[i] = f.Dims[p]
		shape[i] = f.Data.Shape[p]
	}
	data := sparse.ZerosDense(shape...)
	src := make([]int, len(perm))
	for i := range data.Elements {
		idx := data.IndexNd(i)
		for j, p := range perm {
			src[p] = idx[j]
		}
		data.Elements[i] = f.Data.Get(src...)
	}
	return &Field{Data: data, Dims: dims, Attrs: copyAttrs(f.Attrs)}
}

func dimIndex(dims []string, dim string) int {
	for i, d := range dims {
		if d == dim {
			return i
		}
	}
	return -1
}
