// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	var (
		assert = assert.New(t)
		header = http.Header{"X-Test": {"1"}}
		err    = &Error{Code: http.StatusNotAcceptable, Header: header, Text: "no \"acceptable\" media type"}
	)

	assert.Equal(http.StatusNotAcceptable, err.StatusCode())
	assert.Equal(header, err.Headers())
	assert.Equal("no \"acceptable\" media type", err.Error())

	data, marshalErr := json.Marshal(err)
	assert.NoError(marshalErr)
	assert.JSONEq(`{"code": 406, "message": "no \"acceptable\" media type"}`, string(data))
}

func TestErrorWithDefaultErrorEncoder(t *testing.T) {
	var (
		assert   = assert.New(t)
		response = httptest.NewRecorder()
	)

	kithttp.DefaultErrorEncoder(context.Background(), &Error{Code: http.StatusConflict, Text: "conflict"}, response)
	assert.Equal(http.StatusConflict, response.Code)
	assert.JSONEq(`{"code": 409, "message": "conflict"}`, response.Body.String())
}

func TestWriteError(t *testing.T) {
	var (
		assert   = assert.New(t)
		require  = require.New(t)
		response = httptest.NewRecorder()
	)

	require.NoError(WriteError(response, http.StatusBadRequest, "bad"))
	assert.Equal(http.StatusBadRequest, response.Code)
	assert.Equal("application/json", response.Header().Get("Content-Type"))
	assert.JSONEq(`{"code": 400, "message": "bad"}`, response.Body.String())
}

func TestWriteErrorf(t *testing.T) {
	var (
		assert   = assert.New(t)
		require  = require.New(t)
		response = httptest.NewRecorder()
	)

	require.NoError(WriteErrorf(response, http.StatusNotFound, "no fixture named %s", "nosuch"))
	assert.Equal(http.StatusNotFound, response.Code)
	assert.JSONEq(`{"code": 404, "message": "no fixture named nosuch"}`, response.Body.String())
}
