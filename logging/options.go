// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"os"

	"github.com/go-kit/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	StdoutFile = "stdout"
	StderrFile = "stderr"
)

// Options configures a Logger.  Files other than stdout and stderr are rolled with lumberjack.
type Options struct {
	// File is the path of the log file.  The values "stdout" and "stderr", as well as the empty
	// string, log to the process streams instead.
	File string `json:"file"`

	// MaxSize is the lumberjack MaxSize, in megabytes
	MaxSize int `json:"maxsize"`

	// MaxAge is the lumberjack MaxAge, in days
	MaxAge int `json:"maxage"`

	// MaxBackups is the lumberjack MaxBackups
	MaxBackups int `json:"maxbackups"`

	// JSON selects JSON output.  The default is logfmt.
	JSON bool `json:"json"`

	// Level is one of ERROR, WARN, INFO or DEBUG.  Anything else means ERROR.
	Level string `json:"level"`
}

func (o *Options) output() io.Writer {
	if o != nil {
		switch o.File {
		case "", StdoutFile:
		case StderrFile:
			return log.NewSyncWriter(os.Stderr)
		default:
			return &lumberjack.Logger{
				Filename:   o.File,
				MaxSize:    o.MaxSize,
				MaxAge:     o.MaxAge,
				MaxBackups: o.MaxBackups,
			}
		}
	}

	return log.NewSyncWriter(os.Stdout)
}

func (o *Options) loggerFactory() func(io.Writer) log.Logger {
	if o != nil && o.JSON {
		return log.NewJSONLogger
	}

	return log.NewLogfmtLogger
}

func (o *Options) level() string {
	if o != nil {
		return o.Level
	}

	return ""
}
