// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package capture records the HTTP requests a server actually receives.  Point a client, or the
reqfixture send command, at a capture endpoint to see whether a fixture survives the trip over
the wire.  Recorded requests are kept as Snapshots and can be compared to a fixture with Verify.

Nothing here routes or dispatches requests.  Every request to the capture endpoint is recorded
and answered with 202 Accepted.
*/
package capture
