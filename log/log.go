// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over the go-ethereum structured logger.
package log

import (
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Logger writes key/value pairs to a handler.
type Logger = ethlog.Logger

// Legacy verbosity levels, as accepted by the --verbosity flag.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// Options selects the output format of Init.
type Options struct {
	Verbosity int
	JSON      bool
	Color     bool
}

// Init installs the root logger writing to w.
func Init(w io.Writer, opts Options) {
	var h slog.Handler
	if opts.JSON {
		h = ethlog.JSONHandler(w)
	} else {
		h = ethlog.NewTerminalHandler(w, opts.Color)
	}
	glog := ethlog.NewGlogHandler(h)
	glog.Verbosity(FromLegacyLevel(opts.Verbosity))
	ethlog.SetDefault(ethlog.NewLogger(glog))
}

// FromLegacyLevel maps a 0-5 verbosity onto a slog level. Out of range values are clamped.
func FromLegacyLevel(lvl int) slog.Level {
	lvl = max(LegacyLevelCrit, min(lvl, LegacyLevelTrace))
	return ethlog.FromLegacyLevel(lvl)
}

// Root returns the root logger.
func Root() Logger {
	return ethlog.Root()
}

// New creates a logger writing to h.
func New(h slog.Handler) Logger {
	return ethlog.NewLogger(h)
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return ethlog.NewLogger(ethlog.DiscardHandler())
}

// WithContext returns a child of the current root logger carrying ctx.
// The handler is resolved at call time, so create loggers after Init.
func WithContext(ctx ...any) Logger {
	return Root().With(ctx...)
}

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...any) {
	Root().Debug(msg, ctx...)
}

// Info logs at info level on the root logger.
func Info(msg string, ctx ...any) {
	Root().Info(msg, ctx...)
}

// Warn logs at warn level on the root logger.
func Warn(msg string, ctx ...any) {
	Root().Warn(msg, ctx...)
}

// Error logs at error level on the root logger.
func Error(msg string, ctx ...any) {
	Root().Error(msg, ctx...)
}
