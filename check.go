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

	"github.com/sirupsen/logrus"
)

// A StateModifier transforms a state, returning a new state without
// mutating its argument. ReduceRank and Transpose are the modifiers
// the checker uses.
type StateModifier func(State) State

// identity is the modifier used when a case needs none.
func identity(s State) State { return s }

// A Subject is one component under regression test. InputState builds
// a fresh reference state on every call. Component constructs the
// component; mod is applied to any state the component captures at
// construction time (coordinate fields, for example), so that a
// transformed run sees consistently transformed captured state. mod is
// never nil.
type Subject struct {
	Name       string
	InputState func() State
	Component  func(mod StateModifier) (interface{}, error)
}

// run constructs the subject's component with mod and evaluates it on
// state.
func (s *Subject) run(mod StateModifier, state State) (Output, error) {
	component, err := s.Component(mod)
	if err != nil {
		return Output{}, fmt.Errorf("climreg: constructing component for %s: %w", s.Name, err)
	}
	return Evaluate(component, state)
}

// A Checker verifies components against golden records and invariance
// laws. Each case method is independent; All runs every case.
type Checker struct {
	Cache *Cache

	// Log receives per-case progress. If Log is nil, the default
	// logrus logger is used.
	Log logrus.FieldLogger
}

// NewChecker creates a Checker storing golden records in cache.
func NewChecker(cache *Cache) *Checker {
	return &Checker{Cache: cache, Log: logrus.StandardLogger()}
}

func (c *Checker) log() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// Baseline runs the subject on its reference state and compares the
// output bit-for-bit against the golden record. When no record exists
// the current output is recorded and a *MissingCacheError with
// Recorded set is returned: the bootstrap run never passes, so a
// freshly recorded baseline is always verified by a second run.
func (c *Checker) Baseline(subject Subject) error {
	out, err := subject.run(identity, subject.InputState())
	if err != nil {
		return err
	}
	cached, ok, err := c.Cache.Load(subject.Name)
	if err != nil {
		return err
	}
	if !ok {
		if err := c.Cache.Store(subject.Name, out); err != nil {
			return err
		}
		return &MissingCacheError{Subject: subject.Name, Recorded: true}
	}
	return CompareOutputs(out, cached)
}

// RankReduced verifies that reducing the input commutes with the
// component: the component run on the rank-reduced reference state
// must reproduce the rank-reduced golden record. Captured
// construction-time state is reduced the same way. Requires an
// existing record.
func (c *Checker) RankReduced(subject Subject) error {
	cached, ok, err := c.Cache.Load(subject.Name)
	if err != nil {
		return err
	}
	if !ok {
		return &MissingCacheError{Subject: subject.Name}
	}
	out, err := subject.run(ReduceRank, ReduceRank(subject.InputState()))
	if err != nil {
		return err
	}
	return CompareOutputs(out, cached.Map(ReduceRank))
}

// Transposed verifies that the component's values do not depend on the
// storage order of the input axes: run on the axis-reversed reference
// state, its output must equal the golden record after each output
// field is permuted back to the record's axis order. The stored label
// order of the transposed run may differ; the values may not.
func (c *Checker) Transposed(subject Subject) error {
	cached, ok, err := c.Cache.Load(subject.Name)
	if err != nil {
		return err
	}
	if !ok {
		return &MissingCacheError{Subject: subject.Name}
	}
	out, err := subject.run(Transpose, Transpose(subject.InputState()))
	if err != nil {
		return err
	}
	return CompareOutputs(alignOutput(out, cached), cached)
}

// DeclaredInputs verifies that the fields a component declares are
// sufficient: the component is run on the reference state restricted
// to its declared inputs. A read of an undeclared field surfaces as
// the component's own missing-field error. When a golden record
// exists the restricted run must also reproduce it; without a record
// the case only requires the run to succeed.
func (c *Checker) DeclaredInputs(subject Subject) error {
	component, err := subject.Component(identity)
	if err != nil {
		return fmt.Errorf("climreg: constructing component for %s: %w", subject.Name, err)
	}
	inputs, err := componentInputs(component)
	if err != nil {
		return err
	}
	ref := subject.InputState()
	restricted := make(State, len(inputs))
	for _, name := range inputs {
		f, ok := ref[name]
		if !ok {
			return &MissingFieldError{Field: name}
		}
		restricted[name] = f
	}
	out, err := Evaluate(component, restricted)
	if err != nil {
		return err
	}
	cached, ok, err := c.Cache.Load(subject.Name)
	if err != nil || !ok {
		return err
	}
	return CompareOutputs(out, cached)
}

// ConsistentDimensions verifies that every dimension name has a single
// extent across the reference state and all output states taken
// together.
func (c *Checker) ConsistentDimensions(subject Subject) error {
	state := subject.InputState()
	if _, err := DimensionLengths(state); err != nil {
		return err
	}
	out, err := subject.run(identity, state)
	if err != nil {
		return err
	}
	_, err = DimensionLengths(append([]State{state}, out.States()...)...)
	return err
}

// All runs every case on subject, logging each result. It keeps going
// after a failure so the log shows every failing case, and returns the
// first error encountered.
func (c *Checker) All(subject Subject) error {
	cases := []struct {
		name string
		run  func(Subject) error
	}{
		{"baseline", c.Baseline},
		{"rank_reduced", c.RankReduced},
		{"transposed", c.Transposed},
		{"declared_inputs", c.DeclaredInputs},
		{"consistent_dimensions", c.ConsistentDimensions},
	}
	var first error
	for _, cc := range cases {
		log := c.log().WithFields(logrus.Fields{
			"subject": subject.Name,
			"case":    cc.name,
		})
		if err := cc.run(subject); err != nil {
			log.WithError(err).Error("case failed")
			if first == nil {
				first = err
			}
		} else {
			log.Info("case passed")
		}
	}
	return first
}
