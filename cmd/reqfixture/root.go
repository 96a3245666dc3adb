// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/beeherd/dispatcher/logging"
	"github.com/beeherd/dispatcher/xhttp/xhttptest"
	"github.com/beeherd/dispatcher/xviper"
	"github.com/go-kit/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// environment is what every subcommand works with once configuration has been read
type environment struct {
	v        *viper.Viper
	logger   log.Logger
	registry *xhttptest.Registry
}

// loadEnvironment reads configuration for the command being run.  Logging goes to stderr unless
// configured otherwise, since stdout carries command output.
func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	v, err := xviper.Load(applicationName, cmd.Flags())
	if err != nil {
		return nil, err
	}

	v.SetDefault(logging.LoggingKey+".file", logging.StderrFile)
	o, err := logging.FromViper(logging.Sub(v))
	if err != nil {
		return nil, err
	}

	logger := log.With(logging.New(o), "app", applicationName)
	if used := v.ConfigFileUsed(); len(used) > 0 {
		logging.Debug(logger).Log(logging.MessageKey(), "configuration loaded", "file", used)
	}

	registry, err := xhttptest.LoadRegistry(v)
	if err != nil {
		return nil, err
	}

	return &environment{
		v:        v,
		logger:   logger,
		registry: registry,
	}, nil
}

// fixture looks up a fixture by name.  Configured names are folded to lower case when read,
// so a name that is not found as given is tried again in lower case.
func (e *environment) fixture(name string) (xhttptest.Fixture, error) {
	f, ok := e.registry.Get(name)
	if !ok {
		f, ok = e.registry.Get(strings.ToLower(name))
	}

	if !ok {
		return xhttptest.Fixture{}, fmt.Errorf("No such fixture: %s", name)
	}

	return f, nil
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		SilenceUsage:  true,
		SilenceErrors: true,
		Use:           applicationName + " [command]",
		Short:         "Produce, send and capture canned HTTP requests",
		Long:          `A command line tool for the request fixtures used to test the dispatcher's HTTP server.`,
		Version:       fmt.Sprintf("%s (%s, built %s)", Version, GitCommit, BuildTime),
		Example: `  reqfixture list
  reqfixture show get
  reqfixture send xml-post --target http://localhost:8080/capture --body '<dispatch/>' --verify
  reqfixture capture --address :8080

  # Example configuration file fragment:
  fixtures:
    json-post:
      method: POST
      headers:
        - name: Content-Type
          values: application/json`,
	}

	fs := root.PersistentFlags()
	fs.StringP(xviper.DefaultFileFlag, "f", "", "the configuration file to use.  Overrides the search path.")
	fs.StringP(xviper.DefaultNameFlag, "n", applicationName, "the configuration name to search for")
	fs.Bool(xviper.DefaultDebugFlag, false, "enables debug logging.  Overrides configuration.")

	root.AddCommand(
		newListCommand(),
		newShowCommand(),
		newSendCommand(),
		newCaptureCommand(),
	)

	return root
}
