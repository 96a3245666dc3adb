// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xhttptest provides canned HTTP requests for testing code that sits behind an HTTP server.

Two fixtures are built in.  GetRequest is a GET that sends Content-Type: text/xml and
accepts text/xml or text/plain.  XMLPostRequest is a POST with Content-Type: text/xml.
Further fixtures can be declared in configuration and collected in a Registry.

The package also carries testify-based helpers for the client side: request matchers,
MockTransactor and MockBody.
*/
package xhttptest
