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

import "fmt"

// A MissingCacheError reports that no golden record existed for a
// subject. When Recorded is true, the current output was written as
// the new record and the run must be repeated to get a real
// verification result.
type MissingCacheError struct {
	Subject  string
	Recorded bool
}

func (e *MissingCacheError) Error() string {
	if e.Recorded {
		return fmt.Sprintf("climreg: no cached output for %s; recorded current output, rerun to verify", e.Subject)
	}
	return fmt.Sprintf("climreg: no cached output for %s", e.Subject)
}

// A ShapeMismatchError reports that the tuple-ness or tuple length of
// the current output differs from the cached record.
type ShapeMismatchError struct {
	CurrentTuple, CachedTuple bool
	CurrentLen, CachedLen     int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("climreg: output shape mismatch: current tuple=%v len=%d, cached tuple=%v len=%d",
		e.CurrentTuple, e.CurrentLen, e.CachedTuple, e.CachedLen)
}

// A ValueMismatchError reports that a field's array values differ from
// the cached record.
type ValueMismatchError struct {
	Field string
}

func (e *ValueMismatchError) Error() string {
	return fmt.Sprintf("climreg: values for field %s differ from cached record", e.Field)
}

// An AttributeMismatchError reports a metadata attribute that differs
// between current and cached output, or is present on the cached
// record but missing from the current output.
type AttributeMismatchError struct {
	Field, Attribute string
	Current, Cached  string
	Missing          bool
}

func (e *AttributeMismatchError) Error() string {
	if e.Missing {
		return fmt.Sprintf("climreg: field %s: attribute %s present in cached record but missing from current output",
			e.Field, e.Attribute)
	}
	return fmt.Sprintf("climreg: field %s: attribute %s is %q but cached record has %q",
		e.Field, e.Attribute, e.Current, e.Cached)
}

// A FieldSetMismatchError reports a field present on one side of a
// comparison but not the other. MissingFrom is either "current" or
// "cached".
type FieldSetMismatchError struct {
	Field       string
	MissingFrom string
}

func (e *FieldSetMismatchError) Error() string {
	return fmt.Sprintf("climreg: field %s missing from %s output", e.Field, e.MissingFrom)
}

// A DimensionOrderError reports that a field's dimension-name sequence
// differs from the cached record.
type DimensionOrderError struct {
	Field           string
	Current, Cached []string
}

func (e *DimensionOrderError) Error() string {
	return fmt.Sprintf("climreg: field %s has dimensions %v but cached record has %v",
		e.Field, e.Current, e.Cached)
}

// A DimensionInconsistencyError reports a dimension name appearing
// with two different extents within one merged field set.
type DimensionInconsistencyError struct {
	Dimension, Field string
	Length, Expected int
}

func (e *DimensionInconsistencyError) Error() string {
	return fmt.Sprintf("climreg: inconsistent length on dimension %s for field %s: %d != %d",
		e.Dimension, e.Field, e.Length, e.Expected)
}

// A MissingFieldError reports that a required field is absent from a
// state. Components return it when a declared (or undeclared) input is
// not present; the checker does not convert it, so an undeclared read
// during the declared-inputs case surfaces as this distinct signal
// rather than a value mismatch.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("climreg: required field %s not in state", e.Field)
}
