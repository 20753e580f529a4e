// Package log provides the structured, context-aware logger used by the node
// client and its command line tool.
//
// A Logger is created once and passed explicitly or through a context:
//
//	lg := log.NewZapLogger(log.Config{Format: "logfmt", Level: log.LevelInfo})
//	ctx = log.SetContextLogger(ctx, lg.WithName("bitclout"))
//	log.FromContext(ctx).Info("submitted", "txId", id)
//
// When the context already carries an OpenTelemetry span, SetContextLogger
// attaches the trace and span ids to every entry so log lines can be matched
// with dispatch spans.
//
// Config is read from the environment through its tags:
//
//   - LOG_FORMAT: console, logfmt or json
//   - LOG_LEVEL: debug, info, warn, error or fatal
//   - LOG_OUTPUT: stderr, stdout or a file path
package log
