// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import "net/http"

// Client is an interface implemented by net/http.Client
type Client interface {
	Do(*http.Request) (*http.Response, error)
}

var _ Client = (*http.Client)(nil)

// ClientFunc adapts an ordinary function, such as one returned by RetryTransactor, onto Client.
type ClientFunc func(*http.Request) (*http.Response, error)

func (cf ClientFunc) Do(request *http.Request) (*http.Response, error) {
	return cf(request)
}
