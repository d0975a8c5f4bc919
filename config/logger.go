package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"themestyle/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// Prepare returns our standard logger - configured zap logger for use by the
// program. When report is requested file log is always written at debug
// level and stored in the report.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	stdout, stderr := consoleCores(conf.ConsoleLogger.Level)

	level, mode := conf.FileLogger.Level, conf.FileLogger.Mode
	if rpt != nil {
		level, mode = "debug", "overwrite"
	}

	var (
		fileCore   = zapcore.NewNopCore()
		redirected string
	)
	if enabler, ok := levelEnabler(level); ok {
		capturePanics(conf.FileLogger.Destination, mode, rpt)

		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		f, err := openLog(conf.FileLogger.Destination, mode)
		if err != nil {
			if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
				return nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
			}
			redirected = f.Name()
		}
		fileCore = zapcore.NewCore(enc, zapcore.Lock(f), enabler)
		rpt.Store("final.log", f.Name())
	}

	log := zap.New(zapcore.NewTee(stderr, stdout, fileCore), zap.AddCaller())
	if redirected != "" {
		log.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return log.Named(misc.GetAppName()), nil
}

func levelEnabler(level string) (zap.AtomicLevel, bool) {
	switch level {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel), true
	case "normal":
		return zap.NewAtomicLevelAt(zap.InfoLevel), true
	}
	return zap.AtomicLevel{}, false
}

// consoleCores splits console output: errors go to stderr, everything below
// to stdout. Colors are used when stream is a terminal.
func consoleCores(level string) (lowPriority, highPriority zapcore.Core) {
	var minLevel zapcore.Level
	switch level {
	case "normal":
		minLevel = zapcore.InfoLevel
	case "debug":
		minLevel = zapcore.DebugLevel
	default:
		return zapcore.NewNopCore(), zapcore.NewNopCore()
	}

	lowPriority = zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)), zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return minLevel <= lvl && lvl < zapcore.ErrorLevel
		}))
	highPriority = zapcore.NewCore(newEncoder(consoleEncoderConfig(os.Stderr)), zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))
	return lowPriority, highPriority
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

func openLog(fname, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(fname, flags, 0644)
}

// capturePanics sends runtime crash output next to the log file, or into a
// temporary file when that is not possible. Failures are quietly ignored.
func capturePanics(destination, mode string, rpt *Report) {
	ef, err := openLog(filepath.Join(filepath.Dir(destination), misc.GetAppName()+"-panic.log"), mode)
	if err != nil {
		if ef, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log"); err != nil {
			return
		}
	}
	defer ef.Close()

	if err := debug.SetCrashOutput(ef, debug.CrashOptions{}); err == nil {
		rpt.Store("panic.log", ef.Name())
	}
}

// When logging error to console - do not output verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			f.Interface = errors.New(f.Interface.(error).Error())
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
