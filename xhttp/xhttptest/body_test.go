// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttptest

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockBody(t *testing.T) {
	var (
		assert        = assert.New(t)
		expectedError = errors.New("expected")
		body          = new(MockBody)
	)

	body.OnReadError(expectedError).Once()
	body.OnClose(nil).Once()

	data, err := io.ReadAll(body)
	assert.Empty(data)
	assert.Equal(expectedError, err)
	assert.NoError(body.Close())

	body.AssertExpectations(t)
}

func TestNewResponse(t *testing.T) {
	t.Run("WithContentType", func(t *testing.T) {
		assert := assert.New(t)
		response := NewResponse(http.StatusOK, TextXML, []byte("<ok/>"))

		assert.Equal(http.StatusOK, response.StatusCode)
		assert.Equal("200 OK", response.Status)
		assert.Equal(TextXML, response.Header.Get(ContentTypeHeader))
		assert.Equal(int64(5), response.ContentLength)

		data, err := io.ReadAll(response.Body)
		assert.NoError(err)
		assert.Equal("<ok/>", string(data))
	})

	t.Run("NoContentType", func(t *testing.T) {
		assert := assert.New(t)
		response := NewResponse(http.StatusNoContent, "", nil)

		assert.Equal(http.StatusNoContent, response.StatusCode)
		assert.Empty(response.Header)
		assert.Zero(response.ContentLength)
	})
}
