// Copyright 2023 The Authors (see AUTHORS file)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging sets up and configures structured loggers. Loggers are
// carried on the context so commands and libraries can share a single,
// consistently configured logger.
//
// Completion scripts are written to stdout, so every logger built by this
// package writes to stderr.
package logging

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// contextKey is a private string type to prevent collisions in the context map.
type contextKey string

// loggerKey points to the value in the context where the logger is stored.
const loggerKey = contextKey("logger")

var (
	// defaultLogger is the default logger. It is initialized once per package
	// include upon calling Default.
	defaultLogger     *zap.SugaredLogger
	defaultLoggerOnce sync.Once
)

// NewFromEnv creates a new logger from env vars. It sources the following
// environment variables, first checking any with the prefix, then falling back
// to the global unprefixed value:
//
//   - LOG_LEVEL: the zap level name (debug, info, warn, error). Invalid values
//     fall back to warn.
//   - LOG_MODE: "development" enables human-readable console output; anything
//     else emits JSON.
func NewFromEnv(envPrefix string) *zap.SugaredLogger {
	return newFromEnv(envPrefix, os.Getenv)
}

func newFromEnv(envPrefix string, getenv func(string) string) *zap.SugaredLogger {
	var cfg zap.Config
	if strings.HasPrefix(multiGetenv(getenv, envPrefix+"LOG_MODE", "LOG_MODE"), "dev") {
		cfg = developmentConfig()
	} else {
		cfg = productionConfig()
	}

	level := zapcore.WarnLevel
	if v := multiGetenv(getenv, envPrefix+"LOG_LEVEL", "LOG_LEVEL"); v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			level = zapcore.WarnLevel
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

// multiGetenv returns the first non-empty value among the given keys.
func multiGetenv(getenv func(string) string, keys ...string) string {
	for _, k := range keys {
		if v := strings.ToLower(strings.TrimSpace(getenv(k))); v != "" {
			return v
		}
	}
	return ""
}

// Default creates a default logger. It is configured from the unprefixed
// environment the first time it is called.
func Default() *zap.SugaredLogger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = NewFromEnv("")
	})
	return defaultLogger
}

// WithLogger creates a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in the context. If no such logger
// exists, a default logger is returned.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok {
		return logger
	}
	return Default()
}

func productionConfig() zap.Config {
	return zap.Config{
		Encoding:         "json",
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
}

func developmentConfig() zap.Config {
	ec := encoderConfig()
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder

	return zap.Config{
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    ec,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "severity",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
