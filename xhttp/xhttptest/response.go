// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttptest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// NewResponse synthesizes a client response, the counterpart of Fixture.NewRequest.  If contentType
// is empty, no Content-Type header is set.
func NewResponse(statusCode int, contentType string, body []byte) *http.Response {
	response := &http.Response{
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		StatusCode:    statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        make(http.Header),
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}

	if len(contentType) > 0 {
		response.Header.Set(ContentTypeHeader, contentType)
	}

	return response
}
