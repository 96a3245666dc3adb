// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultNameFlag  = "name"
	DefaultFileFlag  = "file"
	DefaultDebugFlag = "debug"

	// LogLevelKey is the key forced to DEBUG by the debug flag
	LogLevelKey = "log.level"
)

// Option is a configuration step applied to a Viper instance
type Option func(*viper.Viper) error

func AddConfigPaths(paths ...string) Option {
	return func(v *viper.Viper) error {
		for _, p := range paths {
			v.AddConfigPath(p)
		}

		return nil
	}
}

// SetEnvPrefix uses the given prefix for environment variables.  Dashes, which are common in
// application names but not allowed in variable names, become underscores.
func SetEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(strings.ReplaceAll(prefix, "-", "_"))
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		return nil
	}
}

func AutomaticEnv(v *viper.Viper) error {
	v.AutomaticEnv()
	return nil
}

func BindPFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		return v.BindPFlags(fs)
	}
}

// StdOptions applies the standard conventions for an application: search paths, environment
// variables, the configuration name and bound flags.  The --file and --name flags, when set,
// take precedence over the search.
func StdOptions(applicationName string, fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		AddStandardConfigPaths(v, applicationName)
		v.SetConfigName(applicationName)
		BindConfig(v, fs, DefaultFileFlag, DefaultNameFlag)

		if err := SetEnvPrefix(applicationName)(v); err != nil {
			return err
		}

		if err := AutomaticEnv(v); err != nil {
			return err
		}

		return BindPFlags(fs)(v)
	}
}

func New(o ...Option) (*viper.Viper, error) {
	return Configure(viper.New(), o...)
}

// Configure applies each option in turn, stopping at the first error.
func Configure(v *viper.Viper, o ...Option) (*viper.Viper, error) {
	if v != nil {
		for _, f := range o {
			if err := f(v); err != nil {
				return nil, err
			}
		}
	}

	return v, nil
}

// ReadInConfig reads the configuration file.  Not finding a file on the search path is not an error,
// since every setting has a default.  A file named explicitly with --file must exist.
func ReadInConfig(v *viper.Viper) error {
	err := v.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	return err
}

// ForceDebug sets LogLevelKey to DEBUG when the given boolean flag is set.  It returns true if it did.
func ForceDebug(v *viper.Viper, fs *pflag.FlagSet, flag string) bool {
	if debug, _ := fs.GetBool(flag); debug {
		v.Set(LogLevelKey, "DEBUG")
		return true
	}

	return false
}

// Load is the usual sequence: StdOptions, ReadInConfig and ForceDebug on the default flags.
func Load(applicationName string, fs *pflag.FlagSet) (*viper.Viper, error) {
	v, err := New(StdOptions(applicationName, fs))
	if err != nil {
		return nil, err
	}

	if err := ReadInConfig(v); err != nil {
		return nil, err
	}

	ForceDebug(v, fs, DefaultDebugFlag)
	return v, nil
}
