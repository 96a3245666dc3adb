// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the available fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnvironment(cmd)
			if err != nil {
				return err
			}

			for _, name := range e.registry.Names() {
				f, _ := e.registry.Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", name, f.Method, strings.Join(f.HeaderNames(), ","))
			}

			return nil
		},
	}
}
