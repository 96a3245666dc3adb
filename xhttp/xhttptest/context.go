// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttptest

import (
	"context"
	"net/http"
	"net/textproto"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type headerNamesKey struct{}

// WithHeaderNames associates an ordered list of header names with the context.  An http.Header
// is a map, so this is the only way the order of a fixture's headers survives into a request.
// If names is empty, the supplied context is returned as is.
func WithHeaderNames(ctx context.Context, names []string) context.Context {
	if len(names) == 0 {
		return ctx
	}

	ordered := make([]string, len(names))
	for i, name := range names {
		ordered[i] = textproto.CanonicalMIMEHeaderKey(name)
	}

	return context.WithValue(ctx, headerNamesKey{}, ordered)
}

// HeaderNames returns the ordered header names of a request.  If the request was not built from
// a fixture, the canonical keys of the request's header are returned in sorted order.
func HeaderNames(request *http.Request) []string {
	if ordered, ok := request.Context().Value(headerNamesKey{}).([]string); ok {
		return append(make([]string, 0, len(ordered)), ordered...)
	}

	if len(request.Header) == 0 {
		return nil
	}

	names := maps.Keys(request.Header)
	for i, name := range names {
		names[i] = textproto.CanonicalMIMEHeaderKey(name)
	}

	slices.Sort(names)
	return names
}
