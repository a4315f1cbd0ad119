// Package logger provides structured logging for stdmath using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. Logs go to stderr by
// default so they never mix with command output.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("reduce")
//	log.Debug("reduction overflowed", logger.Fields("index", 3))
package logger
