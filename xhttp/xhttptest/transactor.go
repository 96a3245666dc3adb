// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttptest

import (
	"net/http"
	"net/textproto"
	"strings"

	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slices"
)

// RequestMatcher is a predicate over an HTTP request, used to set expectations on a MockTransactor.
type RequestMatcher func(*http.Request) bool

// MatchAll combines matchers.  The returned matcher passes only if every one of the given matchers does.
// With no matchers, everything passes.
func MatchAll(matchers ...RequestMatcher) RequestMatcher {
	return func(r *http.Request) bool {
		for _, m := range matchers {
			if !m(r) {
				return false
			}
		}

		return true
	}
}

// MatchMethod returns a matcher for the request method.  The comparison is case-insensitive.
func MatchMethod(expected string) RequestMatcher {
	return func(r *http.Request) bool {
		return strings.EqualFold(expected, r.Method)
	}
}

// MatchHeader returns a matcher that requires a header to carry exactly the given values, in order.
// Passing no values matches a request that lacks the header.
func MatchHeader(name string, expected ...string) RequestMatcher {
	key := textproto.CanonicalMIMEHeaderKey(name)
	return func(r *http.Request) bool {
		// requests built directly by test code may have no header at all
		if r.Header == nil {
			return len(expected) == 0
		}

		return slices.Equal(expected, r.Header[key])
	}
}

// MatchHeaderNames returns a matcher that requires the request's set of header names to equal the
// given set.  Order is ignored, as the order of an http.Header cannot be observed.
func MatchHeaderNames(expected ...string) RequestMatcher {
	want := make([]string, len(expected))
	for i, name := range expected {
		want[i] = textproto.CanonicalMIMEHeaderKey(name)
	}

	slices.Sort(want)
	want = slices.Compact(want)

	return func(r *http.Request) bool {
		got := make([]string, 0, len(r.Header))
		for name := range r.Header {
			got = append(got, textproto.CanonicalMIMEHeaderKey(name))
		}

		slices.Sort(got)
		return slices.Equal(want, got)
	}
}

// MatchFixture returns a matcher that passes when a request has the fixture's method, exactly the
// fixture's header names, and exactly the fixture's values for each of those names.
func MatchFixture(f Fixture) RequestMatcher {
	matchers := []RequestMatcher{
		MatchMethod(f.Method),
		MatchHeaderNames(f.Names...),
	}

	for _, name := range f.Names {
		matchers = append(matchers, MatchHeader(name, f.Headers(name)...))
	}

	return MatchAll(matchers...)
}

// TransactCall wraps a testify Call with shortcuts for the two ways an HTTP transaction can end.
type TransactCall struct {
	*mock.Call
}

// RespondWith sets a return of (response, nil).
func (tc *TransactCall) RespondWith(response *http.Response) *TransactCall {
	tc.Return(response, nil)
	return tc
}

// RespondWithError sets a return of (nil, err).
func (tc *TransactCall) RespondWithError(err error) *TransactCall {
	tc.Return((*http.Response)(nil), err)
	return tc
}

// MockTransactor is a testify mock for anything that executes HTTP transactions.  It implements
// http.RoundTripper and has a Do method with the signature of http.Client.Do.
type MockTransactor struct {
	mock.Mock
}

func (mt *MockTransactor) Do(request *http.Request) (*http.Response, error) {
	arguments := mt.Called(request)
	response, _ := arguments.Get(0).(*http.Response)
	return response, arguments.Error(1)
}

func (mt *MockTransactor) RoundTrip(request *http.Request) (*http.Response, error) {
	arguments := mt.Called(request)
	response, _ := arguments.Get(0).(*http.Response)
	return response, arguments.Error(1)
}

// OnDo sets an expectation on Do for requests that pass every matcher.
func (mt *MockTransactor) OnDo(matchers ...RequestMatcher) *TransactCall {
	return &TransactCall{
		mt.On("Do", mock.MatchedBy(MatchAll(matchers...))),
	}
}

// OnRoundTrip sets an expectation on RoundTrip for requests that pass every matcher.
func (mt *MockTransactor) OnRoundTrip(matchers ...RequestMatcher) *TransactCall {
	return &TransactCall{
		mt.On("RoundTrip", mock.MatchedBy(MatchAll(matchers...))),
	}
}

// OnFixture sets an expectation on Do for requests that look exactly like the given fixture.
func (mt *MockTransactor) OnFixture(f Fixture) *TransactCall {
	return mt.OnDo(MatchFixture(f))
}
