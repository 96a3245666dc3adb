// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttptest

import (
	"github.com/stretchr/testify/mock"
)

// MockBody is a testify mock of an io.ReadCloser.  Use it for request or response bodies that must
// fail.  For bodies with real content, a *bytes.Reader is simpler.
type MockBody struct {
	mock.Mock
}

// OnReadError makes every Read return (0, err).
func (mb *MockBody) OnReadError(err error) *mock.Call {
	return mb.On("Read", mock.AnythingOfType("[]uint8")).Return(0, err)
}

// OnClose sets the result of Close, which may be nil.
func (mb *MockBody) OnClose(err error) *mock.Call {
	return mb.On("Close").Return(err)
}

func (mb *MockBody) Read(p []byte) (int, error) {
	arguments := mb.Called(p)
	return arguments.Int(0), arguments.Error(1)
}

func (mb *MockBody) Close() error {
	return mb.Called().Error(0)
}
