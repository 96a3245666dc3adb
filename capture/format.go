// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/beeherd/dispatcher/xhttp"
	"github.com/ugorji/go/codec"
)

// Format is a media type in which snapshots can be written
type Format int

const (
	JSON Format = iota
	Msgpack
	XML
)

var ErrUnsupportedMediaType = errors.New("Unsupported media type")

var (
	formatMediaTypes = []string{
		"application/json",
		"application/msgpack",
		"text/xml",
	}

	// handles holds the ugorji handles for the formats that use them, indexed by Format
	handles = []codec.Handle{
		&codec.JsonHandle{
			BasicHandle: codec.BasicHandle{
				TypeInfos: codec.NewTypeInfos([]string{"json"}),
			},
		},
		&codec.MsgpackHandle{
			BasicHandle: codec.BasicHandle{
				TypeInfos: codec.NewTypeInfos([]string{"json"}),
			},
			WriteExt: true,
		},
	}

	// mediaTypes maps each recognized media type onto its Format
	mediaTypes = map[string]Format{
		"application/json":      JSON,
		"application/msgpack":   Msgpack,
		"application/x-msgpack": Msgpack,
		"text/xml":              XML,
		"application/xml":       XML,
		"*/*":                   JSON,
		"application/*":         JSON,
		"text/*":                XML,
	}
)

func (f Format) String() string {
	if int(f) >= 0 && int(f) < len(formatMediaTypes) {
		return formatMediaTypes[f]
	}

	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// ContentType is the media type written for this format
func (f Format) ContentType() string {
	return f.String()
}

// Negotiate chooses the Format for a response from an Accept header.  Media ranges are tried in
// the order they appear, and those with q=0 are skipped.  An empty header means JSON.  If nothing
// acceptable is supported, the returned error is an *xhttp.Error with status 406.
func Negotiate(accept string) (Format, error) {
	if len(strings.TrimSpace(accept)) == 0 {
		return JSON, nil
	}

	for _, candidate := range strings.Split(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(candidate))
		if err != nil {
			continue
		}

		if q, ok := params["q"]; ok {
			if v, err := strconv.ParseFloat(q, 64); err == nil && v <= 0 {
				continue
			}
		}

		if f, ok := mediaTypes[mediaType]; ok {
			return f, nil
		}
	}

	return JSON, &xhttp.Error{
		Code: http.StatusNotAcceptable,
		Text: fmt.Sprintf("None of the acceptable media types are supported: %s", accept),
	}
}

// ParseFormat determines the Format of a body from its Content-Type.
func ParseFormat(contentType string) (Format, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return JSON, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}

	if f, ok := mediaTypes[mediaType]; ok && !strings.Contains(mediaType, "*") {
		return f, nil
	}

	return JSON, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
}

// EncodeSnapshot writes a single snapshot in the given format.
func EncodeSnapshot(output io.Writer, f Format, s Snapshot) error {
	if f == XML {
		return xml.NewEncoder(output).Encode(s.toXML())
	}

	return codec.NewEncoder(output, handles[f]).Encode(s)
}

// EncodeSnapshots writes a list of snapshots in the given format.
func EncodeSnapshots(output io.Writer, f Format, s []Snapshot) error {
	if f == XML {
		list := xmlSnapshots{Snapshots: make([]xmlSnapshot, 0, len(s))}
		for _, snapshot := range s {
			list.Snapshots = append(list.Snapshots, snapshot.toXML())
		}

		return xml.NewEncoder(output).Encode(list)
	}

	if s == nil {
		s = []Snapshot{}
	}

	return codec.NewEncoder(output, handles[f]).Encode(s)
}

// DecodeSnapshot reads a single snapshot written by EncodeSnapshot.
func DecodeSnapshot(input io.Reader, f Format) (Snapshot, error) {
	if f == XML {
		var x xmlSnapshot
		if err := xml.NewDecoder(input).Decode(&x); err != nil {
			return Snapshot{}, err
		}

		return x.toSnapshot(), nil
	}

	var s Snapshot
	err := codec.NewDecoder(input, handles[f]).Decode(&s)
	return s, err
}

// DecodeSnapshots reads a list of snapshots written by EncodeSnapshots.
func DecodeSnapshots(input io.Reader, f Format) ([]Snapshot, error) {
	if f == XML {
		var list xmlSnapshots
		if err := xml.NewDecoder(input).Decode(&list); err != nil {
			return nil, err
		}

		s := make([]Snapshot, 0, len(list.Snapshots))
		for _, x := range list.Snapshots {
			s = append(s, x.toSnapshot())
		}

		return s, nil
	}

	var s []Snapshot
	err := codec.NewDecoder(input, handles[f]).Decode(&s)
	return s, err
}
