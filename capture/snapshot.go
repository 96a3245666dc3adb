// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"encoding/xml"
	"net/http"
	"net/textproto"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Snapshot is what was observed of one request.  HeaderNames are sorted canonical keys, since
// net/http does not preserve the order in which headers arrived.
type Snapshot struct {
	ID          string      `json:"id"`
	Method      string      `json:"method"`
	URI         string      `json:"uri"`
	Header      http.Header `json:"header"`
	HeaderNames []string    `json:"headerNames"`
	BodyLength  int64       `json:"bodyLength"`

	// BodyError is set when the body could not be read in full, in which case BodyLength
	// counts only what was read.
	BodyError string    `json:"bodyError,omitempty"`
	Received  time.Time `json:"received"`
}

// clone returns a deep copy, so that callers cannot reach the recorder's own header maps.
func (s Snapshot) clone() Snapshot {
	s.Header = s.Header.Clone()
	if s.HeaderNames != nil {
		s.HeaderNames = append(make([]string, 0, len(s.HeaderNames)), s.HeaderNames...)
	}

	return s
}

func sortedHeaderNames(h http.Header) []string {
	if len(h) == 0 {
		return nil
	}

	names := maps.Keys(h)
	for i, name := range names {
		names[i] = textproto.CanonicalMIMEHeaderKey(name)
	}

	slices.Sort(names)
	return names
}

type xmlHeader struct {
	Name   string   `xml:"name,attr"`
	Values []string `xml:"value"`
}

type xmlSnapshot struct {
	XMLName    xml.Name    `xml:"snapshot"`
	ID         string      `xml:"id,attr"`
	Method     string      `xml:"method"`
	URI        string      `xml:"uri"`
	Headers    []xmlHeader `xml:"header"`
	BodyLength int64       `xml:"bodyLength"`
	BodyError  string      `xml:"bodyError,omitempty"`
	Received   time.Time   `xml:"received"`
}

type xmlSnapshots struct {
	XMLName   xml.Name      `xml:"snapshots"`
	Snapshots []xmlSnapshot `xml:"snapshot"`
}

func (s Snapshot) toXML() xmlSnapshot {
	x := xmlSnapshot{
		ID:         s.ID,
		Method:     s.Method,
		URI:        s.URI,
		BodyLength: s.BodyLength,
		BodyError:  s.BodyError,
		Received:   s.Received,
	}

	for _, name := range sortedHeaderNames(s.Header) {
		x.Headers = append(x.Headers, xmlHeader{Name: name, Values: s.Header.Values(name)})
	}

	return x
}

func (x xmlSnapshot) toSnapshot() Snapshot {
	s := Snapshot{
		ID:         x.ID,
		Method:     x.Method,
		URI:        x.URI,
		BodyLength: x.BodyLength,
		BodyError:  x.BodyError,
		Received:   x.Received,
	}

	if len(x.Headers) > 0 {
		s.Header = make(http.Header, len(x.Headers))
		for _, h := range x.Headers {
			for _, v := range h.Values {
				s.Header.Add(h.Name, v)
			}
		}
	}

	s.HeaderNames = sortedHeaderNames(s.Header)
	return s
}
