// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/beeherd/dispatcher/capture"
	"github.com/beeherd/dispatcher/send"
	"github.com/beeherd/dispatcher/xhttp/xhttptest"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	TargetFlag        = "target"
	CountFlag         = "count"
	RateFlag          = "rate"
	RetriesFlag       = "retries"
	RetryIntervalFlag = "retry-interval"
	TimeoutFlag       = "timeout"
	BodyFlag          = "body"
	VerifyFlag        = "verify"

	DefaultTarget = "http://localhost:8080" + capture.CapturePath
)

var errNothingToVerify = errors.New("Nothing to verify: no response was received")

// writeResult prints the outcome of a send, one status code per line in ascending order
func writeResult(output io.Writer, r send.Result) {
	fmt.Fprintf(output, "sent=%d failed=%d\n", r.Sent, r.Failed)
	codes := maps.Keys(r.Status)
	slices.Sort(codes)
	for _, code := range codes {
		fmt.Fprintf(output, "%d\t%d\n", code, r.Status[code])
	}
}

// verifyResult checks the last response of a send to a capture server against the fixture that was sent.
func verifyResult(r send.Result, f xhttptest.Fixture) error {
	if r.Sent == 0 {
		return errNothingToVerify
	}

	format, err := capture.ParseFormat(r.LastContentType)
	if err != nil {
		return err
	}

	s, err := capture.DecodeSnapshot(bytes.NewReader(r.Last), format)
	if err != nil {
		return err
	}

	return capture.Verify(s, f)
}

func newSendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <name>",
		Short: "Sends a fixture to an HTTP endpoint",
		Long: `Sends a fixture to an HTTP endpoint one or more times.  With --verify, the target
must be a capture server, and the request it recorded last is compared to the fixture.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnvironment(cmd)
			if err != nil {
				return err
			}

			f, err := e.fixture(args[0])
			if err != nil {
				return err
			}

			var (
				fs          = cmd.Flags()
				target, _   = fs.GetString(TargetFlag)
				count, _    = fs.GetInt(CountFlag)
				body, _     = fs.GetString(BodyFlag)
				verify, _   = fs.GetBool(VerifyFlag)
				rate, _     = fs.GetInt(RateFlag)
				retries, _  = fs.GetInt(RetriesFlag)
				interval, _ = fs.GetDuration(RetryIntervalFlag)
				timeout, _  = fs.GetDuration(TimeoutFlag)
			)

			sender := send.New(
				send.Options{
					Rate:          rate,
					Retries:       retries,
					RetryInterval: interval,
					Timeout:       timeout,
				},
				nil,
				e.logger,
			)

			result, err := sender.Send(cmd.Context(), target, f, []byte(body), count)
			writeResult(cmd.OutOrStdout(), result)
			if err != nil {
				return err
			}

			if verify {
				if err := verifyResult(result, f); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), "verified")
			}

			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringP(TargetFlag, "t", DefaultTarget, "the URL to send requests to")
	fs.IntP(CountFlag, "c", 1, "the number of requests to send")
	fs.Int(RateFlag, 0, "the maximum requests per second.  0 means unlimited.")
	fs.Int(RetriesFlag, 0, "the retries for each request on a temporary failure")
	fs.Duration(RetryIntervalFlag, time.Second, "the pause between retries")
	fs.Duration(TimeoutFlag, 10*time.Second, "the time allowed for each request, including retries")
	fs.StringP(BodyFlag, "b", "", "the request body")
	fs.Bool(VerifyFlag, false, "verify the request recorded by a capture server")

	return cmd
}
