// Package logging configures the zap logger of the awsgen command.
package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogOpts struct {
	Verbose bool
	// Encoding is "console" (the default) or "json".
	Encoding string
	// Color is "auto" (the default), "always" or "never".
	Color string
}

func (opts LogOpts) useColor() bool {
	switch opts.Color {
	case "always", "on":
		return true
	case "never", "off":
		return false
	default:
		return !color.NoColor
	}
}

func (opts LogOpts) Encoder() (zapcore.Encoder, error) {
	switch opts.Encoding {
	case "json":
		// Keys stay the same at every level.
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	case "console", "":
		useColor := opts.useColor()
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = TimeOffsetFormatter(time.Now(), useColor)
		if useColor {
			cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		if !opts.Verbose {
			cfg.CallerKey = zapcore.OmitKey
		}
		return zapcore.NewConsoleEncoder(cfg), nil
	default:
		return nil, errors.Newf("unknown log encoding %q", opts.Encoding)
	}
}

func (opts LogOpts) NewCore(w zapcore.WriteSyncer) (zapcore.Core, error) {
	enc, err := opts.Encoder()
	if err != nil {
		return nil, err
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if opts.Verbose {
		level.SetLevel(zap.DebugLevel)
	}
	return zapcore.NewCore(enc, w, level), nil
}

func (opts LogOpts) NewLogger() (*zap.Logger, error) {
	core, err := opts.NewCore(zapcore.Lock(os.Stderr))
	if err != nil {
		return nil, err
	}
	return zap.New(core, zap.AddCaller()), nil
}

// TimeOffsetFormatter returns a time encoder that formats the time as an
// offset from start.
func TimeOffsetFormatter(start time.Time, color bool) zapcore.TimeEncoder {
	colStart, colEnd := "\x1b[90m", "\x1b[0m"
	if !color {
		colStart, colEnd = "", ""
	}
	return func(t time.Time, e zapcore.PrimitiveArrayEncoder) {
		diff := t.Sub(start)
		switch {
		case diff < time.Second:
			e.AppendString(fmt.Sprintf(" %s%3dms%s", colStart, diff.Milliseconds(), colEnd))
		case diff < 5*time.Minute:
			e.AppendString(fmt.Sprintf("%s%5.1fs%s", colStart, diff.Seconds(), colEnd))
		default:
			e.AppendString(fmt.Sprintf("%s%5.1fm%s", colStart, diff.Minutes(), colEnd))
		}
	}
}
