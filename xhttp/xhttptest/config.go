// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttptest

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// FixturesKey is the configuration key under which additional fixtures are declared.
const FixturesKey = "fixtures"

// HeaderConfig is one configured header.  Values may be given as a single string or a list.
type HeaderConfig struct {
	Name   string
	Values []string
}

// Config is the configured form of a Fixture.  Headers are a list rather than a map so that
// their order is kept.
type Config struct {
	Method  string
	Headers []HeaderConfig
}

// Fixture converts this configuration into a Fixture.  Repeated names are merged, with the
// first occurrence fixing the position.  No validation is performed here.
func (c Config) Fixture() Fixture {
	f := Fixture{
		Method: c.Method,
		Values: make(map[string][]string, len(c.Headers)),
	}

	for _, h := range c.Headers {
		if _, ok := f.Values[h.Name]; !ok {
			f.Names = append(f.Names, h.Name)
		}

		f.Values[h.Name] = append(f.Values[h.Name], h.Values...)
	}

	return f
}

var stringSliceType = reflect.TypeOf([]string(nil))

// headerValuesHook lets a []string field be written as a scalar.  The scalar is never split, since
// media types and other header values can legitimately contain commas and spaces.
func headerValuesHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != stringSliceType || data == nil {
		return data, nil
	}

	switch from.Kind() {
	case reflect.Slice, reflect.Array:
		return cast.ToStringSliceE(data)

	default:
		value, err := cast.ToStringE(data)
		if err != nil {
			return nil, err
		}

		return []string{value}, nil
	}
}

// DecodeFixtures decodes raw configuration, as produced by viper or any other map-based source,
// into fixtures keyed by name.  A nil input produces an empty, non-nil map.
func DecodeFixtures(raw interface{}) (map[string]Fixture, error) {
	var configs map[string]Config
	if raw != nil {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: mapstructure.DecodeHookFuncType(headerValuesHook),
			Result:     &configs,
		})

		if err != nil {
			return nil, err
		}

		if err := decoder.Decode(raw); err != nil {
			return nil, err
		}
	}

	fixtures := make(map[string]Fixture, len(configs))
	for name, c := range configs {
		fixtures[name] = c.Fixture()
	}

	return fixtures, nil
}

// UnmarshalFixtures reads the fixtures declared under key.  A nil Viper or a missing key yields no fixtures.
// Viper folds keys to lower case, so the returned fixture names are always lower case.
func UnmarshalFixtures(v *viper.Viper, key string) (map[string]Fixture, error) {
	if v == nil {
		return map[string]Fixture{}, nil
	}

	return DecodeFixtures(v.Get(key))
}

// LoadRegistry produces the default registry extended with the fixtures configured under FixturesKey.
// A configured fixture cannot replace a built-in one.
func LoadRegistry(v *viper.Viper) (*Registry, error) {
	configured, err := UnmarshalFixtures(v, FixturesKey)
	if err != nil {
		return nil, err
	}

	r := DefaultRegistry()
	for name, f := range configured {
		if err := r.Register(name, f); err != nil {
			return nil, err
		}
	}

	return r, nil
}
