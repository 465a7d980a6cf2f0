package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogOptions 日志配置
type LogOptions struct {
	// Level 可选 debug, info, warn, error
	Level string `koanf:"level"`
	// File 追加写入的日志文件，空或 "-" 表示标准错误输出
	File string `koanf:"file"`
	// Format 可选 text, json
	Format string `koanf:"format"`
}

func parseLevel(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

// NewLogger 按配置创建日志器
//
// 无法识别的级别、格式或无法打开的文件会退回默认值并记录一条警告，不返回错误。
func NewLogger(opts LogOptions) *slog.Logger {
	return newLogger(opts, os.Stderr)
}

func newLogger(opts LogOptions, stderr io.Writer) *slog.Logger {
	level, ok := parseLevel(opts.Level)
	if !ok {
		bad := opts.Level
		opts.Level = ""
		logger := newLogger(opts, stderr)
		logger.Warn("could not parse log level", "level", bad)
		return logger
	}
	handlerOpts := slog.HandlerOptions{Level: level}

	var output io.Writer
	switch opts.File {
	case "", "-":
		output = stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			opts.File = ""
			logger := newLogger(opts, stderr)
			logger.Warn("could not open log file", "err", err)
			return logger
		}
		output = f
	}

	switch strings.ToLower(opts.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(output, &handlerOpts))
	case "text", "":
		return slog.New(slog.NewTextHandler(output, &handlerOpts))
	default:
		opts.Format = "text"
		logger := newLogger(opts, stderr)
		logger.Warn("could not parse log format")
		return logger
	}
}
