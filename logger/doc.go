// Package logger provides structured logging for lazykit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. Library packages fetch
// their logger lazily through Get so that an application calling Init
// afterwards still controls where their output goes.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("task")
//	log.Warn("producer failed", logger.ErrorFields("run", err))
package logger
