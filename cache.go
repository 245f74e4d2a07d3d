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
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// A Cache is a persistent store of golden component outputs, one
// NetCDF file per output state, named <subject>-<ordinal>.cache within
// Dir. Records are written once during bootstrap and read-only
// thereafter; a stale record keeps failing comparison until it is
// removed explicitly.
type Cache struct {
	// Dir is the directory holding the record files.
	Dir string
}

func (c *Cache) path(subject string, ordinal int) string {
	return filepath.Join(c.Dir, fmt.Sprintf("%s-%d.cache", subject, ordinal))
}

// splitRecordName splits a record file base name into its subject and
// ordinal. ok is false when the name does not have the
// <subject>-<ordinal>.cache form.
func splitRecordName(base string) (subject string, ordinal int, ok bool) {
	name := strings.TrimSuffix(base, ".cache")
	if name == base {
		return "", 0, false
	}
	i := strings.LastIndex(name, "-")
	if i <= 0 {
		return "", 0, false
	}
	ordinal, err := strconv.Atoi(name[i+1:])
	if err != nil || ordinal < 0 {
		return "", 0, false
	}
	return name[:i], ordinal, true
}

// files returns the record files for subject in ordinal order. The
// ordinal is compared numerically, so tuples of more than ten states
// keep their order, and a file for a subject whose name merely starts
// with subject is not matched.
func (c *Cache) files(subject string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(c.Dir, subject+"-*.cache"))
	if err != nil {
		return nil, fmt.Errorf("climreg: listing cache for %s: %v", subject, err)
	}
	ordinals := make(map[string]int)
	var files []string
	for _, file := range matches {
		s, ordinal, ok := splitRecordName(filepath.Base(file))
		if !ok || s != subject {
			continue
		}
		ordinals[file] = ordinal
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool {
		return ordinals[files[i]] < ordinals[files[j]]
	})
	return files, nil
}

// Load retrieves the golden record for subject. ok is false when no
// record exists. A record with exactly one file loads as a single
// state; a record with several files loads as a tuple in ordinal
// order. Note that a one-element tuple is stored as one file and
// therefore loads back as a single state.
func (c *Cache) Load(subject string) (output Output, ok bool, err error) {
	files, err := c.files(subject)
	if err != nil || len(files) == 0 {
		return Output{}, false, err
	}
	states := make([]State, len(files))
	for i, file := range files {
		states[i], err = readStateFile(file)
		if err != nil {
			return Output{}, false, err
		}
	}
	if len(states) == 1 {
		return One(states[0]), true, nil
	}
	return Many(states...), true, nil
}

// Store writes output as the golden record for subject, one file per
// state. It overwrites any existing record, so callers must only
// reach it deliberately: the checker calls it during bootstrap alone,
// never during a comparison run.
func (c *Cache) Store(subject string, output Output) error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("climreg: creating cache directory: %v", err)
	}
	for i := 0; i < output.Len(); i++ {
		if err := writeStateFile(c.path(subject, i), output.State(i)); err != nil {
			return fmt.Errorf("climreg: caching output %d for %s: %v", i, subject, err)
		}
	}
	return nil
}

// Remove deletes the golden record for subject, forcing the next
// baseline run to re-record. It is the manual-refresh path for stale
// records.
func (c *Cache) Remove(subject string) error {
	files, err := c.files(subject)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("climreg: no cached output for %s in %s", subject, c.Dir)
	}
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("climreg: removing cache for %s: %v", subject, err)
		}
	}
	return nil
}

// Subjects returns the names of all subjects with a record in the
// cache, in sorted order.
func (c *Cache) Subjects() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(c.Dir, "*-*.cache"))
	if err != nil {
		return nil, fmt.Errorf("climreg: listing cache: %v", err)
	}
	seen := make(map[string]bool)
	var subjects []string
	for _, file := range files {
		name, _, ok := splitRecordName(filepath.Base(file))
		if !ok {
			continue
		}
		if !seen[name] {
			seen[name] = true
			subjects = append(subjects, name)
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}
