// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"

	"github.com/beeherd/dispatcher/xhttp/xhttptest"
	"github.com/spf13/cobra"
	"github.com/ugorji/go/codec"
)

type headerView struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// fixtureView lays a fixture out in the same shape as its configuration, so that the output
// of show can be pasted under the fixtures key.
type fixtureView struct {
	Name    string       `json:"name"`
	Method  string       `json:"method"`
	Headers []headerView `json:"headers"`
}

func newFixtureView(name string, f xhttptest.Fixture) fixtureView {
	view := fixtureView{
		Name:    name,
		Method:  f.HTTPMethod(),
		Headers: make([]headerView, 0, len(f.Names)),
	}

	for _, header := range f.HeaderNames() {
		view.Headers = append(view.Headers, headerView{Name: header, Values: f.Headers(header)})
	}

	return view
}

var showHandle = &codec.JsonHandle{
	BasicHandle: codec.BasicHandle{
		TypeInfos: codec.NewTypeInfos([]string{"json"}),
	},
	Indent: 2,
}

func writeFixture(output io.Writer, name string, f xhttptest.Fixture) error {
	if err := codec.NewEncoder(output, showHandle).Encode(newFixtureView(name, f)); err != nil {
		return err
	}

	_, err := io.WriteString(output, "\n")
	return err
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Writes a fixture as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnvironment(cmd)
			if err != nil {
				return err
			}

			f, err := e.fixture(args[0])
			if err != nil {
				return err
			}

			return writeFixture(cmd.OutOrStdout(), args[0], f)
		},
	}
}
