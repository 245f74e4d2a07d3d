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
	"os"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// scalarDimension is the reserved dimension name used to encode
// rank-0 fields, which NetCDF-3 cannot store as variables with no
// dimensions. A scalar field is written with this single length-1
// dimension and read back as rank 0; the name is therefore forbidden
// as a real dimension name.
const scalarDimension = "scalar"

// writeStateFile serializes state to a NetCDF file at path. Values are
// stored as float64 so that a record read back compares bit-for-bit
// equal to the output it was taken from. Dimension names and string
// attributes round-trip exactly.
func writeStateFile(path string, state State) error {
	lengths, err := DimensionLengths(state)
	if err != nil {
		return err
	}
	if _, ok := lengths[scalarDimension]; ok {
		return fmt.Errorf("climreg: writing %s: dimension name %q is reserved", path, scalarDimension)
	}
	for _, name := range state.fieldNames() {
		if state[name].Rank() == 0 {
			lengths[scalarDimension] = 1
			break
		}
	}
	dimNames := make([]string, 0, len(lengths))
	for dim := range lengths {
		dimNames = append(dimNames, dim)
	}
	sort.Strings(dimNames)
	dimLengths := make([]int, len(dimNames))
	for i, dim := range dimNames {
		if lengths[dim] == 0 {
			return fmt.Errorf("climreg: writing %s: dimension %s has zero length", path, dim)
		}
		dimLengths[i] = lengths[dim]
	}

	h := cdf.NewHeader(dimNames, dimLengths)
	h.AddAttribute("", "comment", "climreg golden record")
	for _, name := range state.fieldNames() {
		f := state[name]
		varDims := f.Dims
		if f.Rank() == 0 {
			varDims = []string{scalarDimension}
		}
		h.AddVariable(name, varDims, []float64{0})
		for _, attr := range sortedKeys(f.Attrs) {
			h.AddAttribute(name, attr, f.Attrs[attr])
		}
	}
	h.Define()

	ff, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("climreg: creating record file: %v", err)
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("climreg: writing record header: %v", err)
	}
	for _, name := range state.fieldNames() {
		end := f.Header.Lengths(name)
		start := make([]int, len(end))
		w := f.Writer(name, start, end)
		if _, err := w.Write(state[name].Data.Elements); err != nil {
			return fmt.Errorf("climreg: writing record variable %s: %v", name, err)
		}
	}
	return nil
}

// readStateFile deserializes a state from the NetCDF file at path.
func readStateFile(path string) (State, error) {
	ff, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("climreg: opening record file: %v", err)
	}
	defer ff.Close()
	f, err := cdf.Open(ff)
	if err != nil {
		return nil, fmt.Errorf("climreg: reading record header: %v", err)
	}
	state := make(State)
	for _, name := range f.Header.Variables() {
		dims := f.Header.Dimensions(name)
		shape := f.Header.Lengths(name)
		if len(dims) == 1 && dims[0] == scalarDimension {
			dims, shape = []string{}, []int{}
		}
		n := 1
		for _, l := range shape {
			n *= l
		}
		r := f.Reader(name, nil, nil)
		buf := r.Zero(n)
		if _, err := r.Read(buf); err != nil {
			return nil, fmt.Errorf("climreg: reading record variable %s: %v", name, err)
		}
		vals, ok := buf.([]float64)
		if !ok {
			return nil, fmt.Errorf("climreg: record variable %s is not float64", name)
		}
		data := sparse.ZerosDense(shape...)
		copy(data.Elements, vals)
		attrs := make(map[string]string)
		for _, attr := range f.Header.Attributes(name) {
			if s, ok := f.Header.GetAttribute(name, attr).(string); ok {
				attrs[attr] = s
			}
		}
		state[name] = &Field{Data: data, Dims: dims, Attrs: attrs}
	}
	return state, nil
}
