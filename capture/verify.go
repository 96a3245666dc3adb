// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"net/textproto"
	"strings"

	"github.com/beeherd/dispatcher/xhttp/xhttptest"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

var (
	ErrMethodMismatch      = errors.New("Method mismatch")
	ErrHeaderNamesMismatch = errors.New("Header names mismatch")
	ErrHeaderValueMismatch = errors.New("Header values mismatch")
)

// TransportHeaders are added by HTTP clients and servers on their own.  Verify ignores them unless
// the fixture names them.
var TransportHeaders = []string{
	"Accept-Encoding",
	"Connection",
	"Content-Length",
	"Transfer-Encoding",
	"User-Agent",
}

// Verify compares a snapshot to the fixture it was sent from.  The method must match, the set of
// header names must match, and each header must carry the fixture's values in order.  All mismatches
// are reported together.
func Verify(s Snapshot, f xhttptest.Fixture) error {
	var err error
	if !strings.EqualFold(s.Method, f.Method) {
		err = multierr.Append(err, fmt.Errorf("%w: expected %s, got %s", ErrMethodMismatch, f.Method, s.Method))
	}

	expected := make([]string, 0, len(f.Names))
	for _, name := range f.Names {
		expected = append(expected, textproto.CanonicalMIMEHeaderKey(name))
	}

	slices.Sort(expected)
	actual := make([]string, 0, len(s.HeaderNames))
	for _, name := range s.HeaderNames {
		name = textproto.CanonicalMIMEHeaderKey(name)
		if slices.Contains(TransportHeaders, name) && !slices.Contains(expected, name) {
			continue
		}

		actual = append(actual, name)
	}

	slices.Sort(actual)
	if !slices.Equal(expected, actual) {
		err = multierr.Append(err, fmt.Errorf("%w: expected %v, got %v", ErrHeaderNamesMismatch, expected, actual))
	}

	for _, name := range f.Names {
		want, got := f.Headers(name), s.Header.Values(name)
		if !slices.Equal(want, got) {
			err = multierr.Append(err, fmt.Errorf("%w: %s expected %q, got %q", ErrHeaderValueMismatch, textproto.CanonicalMIMEHeaderKey(name), want, got))
		}
	}

	return err
}
