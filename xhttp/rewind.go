// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import (
	"bytes"
	"errors"
	"io"
	"net/http"
)

var errNotRewindable = errors.New("That request is not rewindable")

// NewRewindBytes produces a body that yields b, along with a function that yields b again from
// the start.  The two results are suitable for http.Request.Body and http.Request.GetBody.
func NewRewindBytes(b []byte) (io.ReadCloser, func() (io.ReadCloser, error)) {
	return io.NopCloser(bytes.NewReader(b)),
		func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(b)), nil
		}
}

// EnsureRewindable buffers a request's body so that it can be sent again.  Requests that already
// have a GetBody, or have no body at all, are left alone.
func EnsureRewindable(r *http.Request) error {
	if r.GetBody != nil || r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	b, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		return err
	}

	r.Body, r.GetBody = NewRewindBytes(b)
	return nil
}

// Rewind resets a request's body to its beginning using GetBody.  A request without a body is
// always rewound.
func Rewind(r *http.Request) error {
	if r.GetBody != nil {
		b, err := r.GetBody()
		if err != nil {
			return err
		}

		r.Body = b
		return nil
	}

	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	return errNotRewindable
}
