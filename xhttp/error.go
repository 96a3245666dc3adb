// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is an HTTP-specific carrier of error information.  It implements go-kit's StatusCoder and
// Headerer, and json.Marshaler, so go-kit's default error encoder emits it as JSON with the right status.
type Error struct {
	Code   int
	Header http.Header
	Text   string
}

func (e *Error) StatusCode() int {
	return e.Code
}

func (e *Error) Headers() http.Header {
	return e.Header
}

func (e *Error) Error() string {
	return e.Text
}

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorBody{Code: e.Code, Message: e.Text})
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WriteErrorf writes a JSON body of the form {"code": ..., "message": ...} with the given status code.
// The message is produced with fmt.Sprintf.
func WriteErrorf(response http.ResponseWriter, code int, format string, parameters ...interface{}) error {
	return WriteError(response, code, fmt.Sprintf(format, parameters...))
}

// WriteError writes a JSON body of the form {"code": ..., "message": ...} with the given status code.
// The value is stringized with the default rules of the fmt package.
func WriteError(response http.ResponseWriter, code int, value interface{}) error {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(code)

	return json.NewEncoder(response).Encode(errorBody{Code: code, Message: fmt.Sprint(value)})
}
