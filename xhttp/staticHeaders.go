// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import (
	"net/http"
	"net/textproto"
)

// StaticHeaders returns an Alice-style constructor that writes a fixed set of headers into every
// response before the decorated handler runs.  Keys are canonicalized once, up front, so the set may
// come from sources such as unmarshaled configuration.  An empty set means no decoration.
func StaticHeaders(extra http.Header) func(http.Handler) http.Handler {
	if len(extra) == 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	canonical := make(http.Header, len(extra))
	for k, v := range extra {
		canonical[textproto.CanonicalMIMEHeaderKey(k)] = v
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			header := response.Header()
			for k, v := range canonical {
				header[k] = v
			}

			next.ServeHTTP(response, request)
		})
	}
}
