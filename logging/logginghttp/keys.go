// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logginghttp

var (
	requestMethodKey interface{} = "requestMethod"
	requestURIKey    interface{} = "requestURI"
	remoteAddrKey    interface{} = "remoteAddr"
	contentTypeKey   interface{} = "contentType"
)

// RequestMethodKey returns the logging key for an HTTP request's method
func RequestMethodKey() interface{} {
	return requestMethodKey
}

// RequestURIKey returns the logging key for an HTTP request's unmodified URI
func RequestURIKey() interface{} {
	return requestURIKey
}

// RemoteAddrKey returns the logging key for an HTTP request's remote address
func RemoteAddrKey() interface{} {
	return remoteAddrKey
}

// ContentTypeKey returns the logging key for an HTTP request's Content-Type header
func ContentTypeKey() interface{} {
	return contentTypeKey
}
