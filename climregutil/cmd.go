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

// Package climregutil provides the command-line interface for
// inspecting and managing golden component records.
package climregutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialmodel/climreg"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	Cfg = viper.New()

	// Options are the configuration options available to the climreg
	// command.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "cache_dir",
			usage: `
              cache_dir specifies the directory holding golden component
              records.`,
			shorthand:  "d",
			defaultVal: "cached_component_output",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "subjects",
			usage: `
              subjects restricts ls to the named subjects. The default
              is to list every subject in the cache.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{lsCmd.Flags()},
		},
	}

	for _, option := range options {
		for _, set := range option.flagsets {
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(lsCmd)
	Root.AddCommand(showCmd)
	Root.AddCommand(rmCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("climreg: problem reading configuration file: %v", err)
		}
	}
	return nil
}

func cache() *climreg.Cache {
	return &climreg.Cache{Dir: Cfg.GetString("cache_dir")}
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "climreg",
	Short: "Manage golden records for component regression tests.",
	Long: `ClimReg verifies simulation components against previously recorded
golden outputs. The regression cases themselves run under 'go test'; this
command inspects the record cache and removes stale records so the next
test run re-records them.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'CLIMREG_var'
where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of ClimReg.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("ClimReg v%s\n", climreg.Version)
	},
	DisableAutoGenTag: true,
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cached subjects",
	Long:  "ls lists the subjects with a golden record in the cache directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		subjects, err := cache().Subjects()
		if err != nil {
			return err
		}
		only, err := cast.ToStringSliceE(Cfg.Get("subjects"))
		if err != nil {
			return err
		}
		for _, subject := range subjects {
			if len(only) > 0 && !contains(only, subject) {
				continue
			}
			cmd.Println(subject)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var showCmd = &cobra.Command{
	Use:   "show [subject]",
	Short: "Describe a cached record",
	Long: `show prints the states, fields, dimensions and units of the golden
record for the given subject.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, ok, err := cache().Load(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("climreg: no cached output for %s", args[0])
		}
		for i, state := range output.States() {
			if output.Tuple() {
				cmd.Printf("state %d:\n", i)
			}
			names := make([]string, 0, len(state))
			for name := range state {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				f := state[name]
				cmd.Printf("  %s%s [%s]\n", name, dimString(f), f.Attrs["units"])
			}
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var rmCmd = &cobra.Command{
	Use:   "rm [subject]...",
	Short: "Remove cached records",
	Long: `rm deletes the golden records for the given subjects, so the next
baseline run re-records them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cache()
		for _, subject := range args {
			if err := c.Remove(subject); err != nil {
				return err
			}
		}
		return nil
	},
	DisableAutoGenTag: true,
}

func dimString(f *climreg.Field) string {
	if f.Rank() == 0 {
		return ""
	}
	parts := make([]string, f.Rank())
	for i, dim := range f.Dims {
		parts[i] = fmt.Sprintf("%s=%d", dim, f.Data.Shape[i])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
