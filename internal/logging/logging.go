// Package logging 根据配置构建 zerolog 日志记录器。
// 支持控制台、文件（lumberjack 轮转）以及两者同时输出。
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"gocloc/internal/config"
)

// New 创建日志记录器，console 为控制台输出目标（通常是 stderr，避免污染报告输出）。
func New(logConfig config.LogConfig, appConfig config.AppConfig, console io.Writer) zerolog.Logger {
	// 优先级：quiet > debug > verbose > logConfig.Level
	if appConfig.Quiet {
		return zerolog.Nop()
	}

	level := parseLogLevel(logConfig.Level)
	if appConfig.Debug {
		level = zerolog.DebugLevel
	} else if appConfig.Verbose {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	switch strings.ToLower(logConfig.Mode) {
	case "file":
		writers = append(writers, createFileWriter(logConfig, console))
	case "both":
		writers = append(writers, createConsoleWriter(console, logConfig.JSON))
		writers = append(writers, createFileWriter(logConfig, console))
	default:
		writers = append(writers, createConsoleWriter(console, logConfig.JSON))
	}

	var output io.Writer
	if len(writers) == 1 {
		output = writers[0]
	} else {
		output = zerolog.MultiLevelWriter(writers...)
	}

	context := zerolog.New(output).Level(level).With().Timestamp()
	if appConfig.Debug {
		context = context.Caller().Str("app", appConfig.Name)
	} else if appConfig.Verbose {
		context = context.Str("app", appConfig.Name)
	}
	return context.Logger()
}

// createConsoleWriter 创建控制台输出写入器
func createConsoleWriter(out io.Writer, useJSON bool) io.Writer {
	if useJSON {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !isTerminal(out),
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// createFileWriter 创建文件输出写入器，目录无法创建时退回控制台。
func createFileWriter(logConfig config.LogConfig, fallback io.Writer) io.Writer {
	if err := os.MkdirAll(filepath.Dir(logConfig.FilePath), 0o755); err != nil {
		return fallback
	}

	return &lumberjack.Logger{
		Filename:   logConfig.FilePath,
		MaxSize:    logConfig.MaxSize, // megabytes
		MaxBackups: logConfig.MaxBackups,
		MaxAge:     logConfig.MaxAge, // days
		Compress:   true,
	}
}

// parseLogLevel 解析日志级别
func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.WarnLevel
	}
}

// isTerminal 判断输出是否为终端，非终端时关闭颜色。
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(file.Fd())
}
