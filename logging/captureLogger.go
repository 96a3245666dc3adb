// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"

	"github.com/go-kit/log"
)

// CaptureLogger is a go-kit Logger that sends each entry, as a map, to a channel so that
// tests can make assertions about what was logged.
type CaptureLogger interface {
	log.Logger

	// Output returns the channel that receives each log entry
	Output() <-chan map[interface{}]interface{}
}

type captureLogger struct {
	output chan map[interface{}]interface{}
}

func (cl *captureLogger) Output() <-chan map[interface{}]interface{} {
	return cl.output
}

// Log panics on an odd number of key/value arguments, which is fine for test code.
func (cl *captureLogger) Log(kv ...interface{}) error {
	if len(kv)%2 != 0 {
		panic(fmt.Errorf("Invalid key/value count: %d", len(kv)))
	}

	m := make(map[interface{}]interface{}, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}

	cl.output <- m
	return nil
}

// NewCaptureLogger creates a CaptureLogger whose channel buffers the given number of entries.
// A nonpositive size means 10.
func NewCaptureLogger(size int) CaptureLogger {
	if size < 1 {
		size = 10
	}

	return &captureLogger{
		output: make(chan map[interface{}]interface{}, size),
	}
}
