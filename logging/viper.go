// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"github.com/spf13/viper"
)

// LoggingKey is the Viper subkey under which logging configuration lives.
// FromViper does not assume this key.
const LoggingKey = "log"

// Sub returns the child Viper under LoggingKey.  If passed nil, or if the key is absent,
// this function returns nil.
func Sub(v *viper.Viper) *viper.Viper {
	if v != nil {
		return v.Sub(LoggingKey)
	}

	return nil
}

// FromViper produces Options from a possibly nil Viper.  Callers normally use FromViper(Sub(v)).
func FromViper(v *viper.Viper) (*Options, error) {
	o := new(Options)
	if v != nil {
		if err := v.Unmarshal(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}
