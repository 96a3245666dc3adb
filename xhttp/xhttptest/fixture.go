// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttptest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
)

const (
	ContentTypeHeader = "Content-Type"
	AcceptHeader      = "Accept"

	TextXML   = "text/xml"
	TextPlain = "text/plain"
)

var (
	ErrMissingMethod       = errors.New("A fixture must have a method")
	ErrInvalidMethod       = errors.New("A fixture method must be an HTTP token")
	ErrBlankHeaderName     = errors.New("Header names cannot be blank")
	ErrDuplicateHeaderName = errors.New("Duplicate header name")
	ErrMissingHeaderValues = errors.New("Every header name must have at least one value")
	ErrUnlistedHeader      = errors.New("Header values present for a name that is not listed")
)

// Fixture is a canned HTTP request shape: a method, an ordered list of header names,
// and the ordered values for each of those names.  Fixtures are plain values.  The accessors
// always return copies, so a Fixture cannot be changed through what it hands out.
type Fixture struct {
	Method string
	Names  []string
	Values map[string][]string
}

// GetRequest produces the GET fixture.  It announces an XML body and accepts either XML or plain text.
func GetRequest() Fixture {
	return Fixture{
		Method: http.MethodGet,
		Names:  []string{ContentTypeHeader, AcceptHeader},
		Values: map[string][]string{
			ContentTypeHeader: {TextXML},
			AcceptHeader:      {TextXML, TextPlain},
		},
	}
}

// XMLPostRequest produces the POST fixture, which carries only an XML content type.
func XMLPostRequest() Fixture {
	return Fixture{
		Method: http.MethodPost,
		Names:  []string{ContentTypeHeader},
		Values: map[string][]string{
			ContentTypeHeader: {TextXML},
		},
	}
}

func (f Fixture) HTTPMethod() string {
	return f.Method
}

// HeaderNames returns the header names in fixture order.
func (f Fixture) HeaderNames() []string {
	if len(f.Names) == 0 {
		return nil
	}

	return append(make([]string, 0, len(f.Names)), f.Names...)
}

// Headers returns the values for the given header name, in fixture order.  Names are compared
// by canonical MIME key, so "accept" and "Accept" are the same header.  If the fixture has no
// such header, this method returns nil.
func (f Fixture) Headers(name string) []string {
	values, ok := f.Values[name]
	if !ok {
		key := textproto.CanonicalMIMEHeaderKey(name)
		for candidate, v := range f.Values {
			if textproto.CanonicalMIMEHeaderKey(candidate) == key {
				values, ok = v, true
				break
			}
		}
	}

	if !ok || len(values) == 0 {
		return nil
	}

	return append(make([]string, 0, len(values)), values...)
}

// Header produces an http.Header with canonical keys holding all of this fixture's values.
func (f Fixture) Header() http.Header {
	h := make(http.Header, len(f.Names))
	for _, name := range f.Names {
		for _, value := range f.Headers(name) {
			h.Add(name, value)
		}
	}

	return h
}

// NewRequest creates a server-side request from this fixture, in the manner of httptest.NewRequest.
// The ordered header names are attached to the request's context and can be retrieved with HeaderNames.
func (f Fixture) NewRequest(target string, body io.Reader) *http.Request {
	request := httptest.NewRequest(f.Method, target, body)
	for k, v := range f.Header() {
		request.Header[k] = v
	}

	return request.WithContext(WithHeaderNames(request.Context(), f.Names))
}

// NewClientRequest creates an outbound request from this fixture, suitable for an http.Client.
func (f Fixture) NewClientRequest(ctx context.Context, target string, body io.Reader) (*http.Request, error) {
	request, err := http.NewRequestWithContext(WithHeaderNames(ctx, f.Names), f.Method, target, body)
	if err != nil {
		return nil, err
	}

	for k, v := range f.Header() {
		request.Header[k] = v
	}

	return request, nil
}

// Validate checks the structural rules that a fixture must obey.  The built-in fixtures always pass;
// this is meant for fixtures read from configuration.
func (f Fixture) Validate() error {
	if len(f.Method) == 0 {
		return ErrMissingMethod
	}

	if strings.IndexFunc(f.Method, isNotTokenRune) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, f.Method)
	}

	listed := make(map[string]bool, len(f.Names))
	for _, name := range f.Names {
		if len(strings.TrimSpace(name)) == 0 {
			return ErrBlankHeaderName
		}

		key := textproto.CanonicalMIMEHeaderKey(name)
		if listed[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateHeaderName, key)
		}

		listed[key] = true
		if len(f.Headers(name)) == 0 {
			return fmt.Errorf("%w: %s", ErrMissingHeaderValues, key)
		}
	}

	for name := range f.Values {
		if !listed[textproto.CanonicalMIMEHeaderKey(name)] {
			return fmt.Errorf("%w: %s", ErrUnlistedHeader, name)
		}
	}

	return nil
}

// isNotTokenRune reports whether r falls outside the RFC 7230 tchar set.
func isNotTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("!#$%&'*+-.^_`|~", r):
		return false
	default:
		return true
	}
}
