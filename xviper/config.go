// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Configer is the subset of Viper behavior dealing with configuration paths and locations
type Configer interface {
	AddConfigPath(string)
	SetConfigName(string)
	SetConfigFile(string)
}

// AddStandardConfigPaths adds /etc/<app>, $HOME/.<app> and the working directory.
func AddStandardConfigPaths(c Configer, applicationName string) {
	c.AddConfigPath(fmt.Sprintf("/etc/%s", applicationName))
	c.AddConfigPath(fmt.Sprintf("$HOME/.%s", applicationName))
	c.AddConfigPath(".")
}

// FlagLookup is the behavior expected of a pflag.FlagSet to lookup individual flags by longhand name.
type FlagLookup interface {
	Lookup(string) *pflag.Flag
}

func flagValue(fl FlagLookup, flag string) string {
	if f := fl.Lookup(flag); f != nil {
		return f.Value.String()
	}

	return ""
}

// BindConfigName passes a nonempty flag value to c.SetConfigName and returns true.  If the flag is
// missing or empty, c is left alone and this function returns false.
func BindConfigName(c Configer, fl FlagLookup, flag string) bool {
	if configName := flagValue(fl, flag); len(configName) > 0 {
		c.SetConfigName(configName)
		return true
	}

	return false
}

// BindConfigFile passes a nonempty flag value to c.SetConfigFile and returns true.  If the flag is
// missing or empty, c is left alone and this function returns false.
func BindConfigFile(c Configer, fl FlagLookup, flag string) bool {
	if configFile := flagValue(fl, flag); len(configFile) > 0 {
		c.SetConfigFile(configFile)
		return true
	}

	return false
}

// BindConfig tries BindConfigFile first, then BindConfigName.  It returns true if either bound.
func BindConfig(c Configer, fl FlagLookup, fileFlag, nameFlag string) bool {
	return BindConfigFile(c, fl, fileFlag) || BindConfigName(c, fl, nameFlag)
}
