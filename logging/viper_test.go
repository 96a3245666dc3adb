// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSub(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = viper.New()
	)

	assert.Nil(Sub(nil))
	assert.Nil(Sub(v))

	v.SetConfigType("json")
	require.NoError(v.ReadConfig(strings.NewReader(`
		{"log": {
			"file": "reqfixture.log"
		}}
	`)))

	child := Sub(v)
	require.NotNil(child)
	assert.Equal("reqfixture.log", child.GetString("file"))
}

func testFromViperNil(t *testing.T) {
	assert := assert.New(t)
	o, err := FromViper(nil)

	assert.NotNil(o)
	assert.NoError(err)
}

func testFromViperFull(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = viper.New()
	)

	v.SetConfigType("yaml")
	require.NoError(v.ReadConfig(strings.NewReader(`
log:
  file: /var/log/reqfixture.log
  maxsize: 10
  maxage: 3
  maxbackups: 2
  json: true
  level: debug
`)))

	o, err := FromViper(Sub(v))
	require.NoError(err)
	require.NotNil(o)

	assert.Equal(
		Options{
			File:       "/var/log/reqfixture.log",
			MaxSize:    10,
			MaxAge:     3,
			MaxBackups: 2,
			JSON:       true,
			Level:      "debug",
		},
		*o,
	)
}

func testFromViperError(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = viper.New()
	)

	v.SetConfigType("json")
	require.NoError(v.ReadConfig(strings.NewReader(`{"maxsize": "this is not an int"}`)))

	o, err := FromViper(v)
	assert.Nil(o)
	assert.Error(err)
}

func TestFromViper(t *testing.T) {
	t.Run("Nil", testFromViperNil)
	t.Run("Full", testFromViperFull)
	t.Run("Error", testFromViperError)
}
