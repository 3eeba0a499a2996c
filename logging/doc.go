// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging provides named loggers that fan records out to shared
sinks, with a fixed-width text format and time-based log file rotation.

A [Registry] hands out one [Logger] per name. Each logger has a level
threshold and an ordered list of [Sink] values; each sink has its own
threshold, so a record is written only when it passes both gates.

# Basic Usage

	reg := logging.NewRegistry()
	console := logging.NewConsoleSink(
		logging.WithSinkOptions(logging.WithSinkLevel(logging.LevelWarning)),
	)
	file, err := logging.NewRotatingFileSink("/var/log/app/app.log",
		logging.WithWhen(logging.WhenMidnight),
		logging.WithBackupCount(7),
	)
	if err != nil {
		return err
	}

	log := reg.GetOrCreate("app")
	log.SetLevel(logging.LevelDebug)
	log.AddSink(console)
	log.AddSink(file)
	defer reg.Shutdown()

	log.Info("listening on %s", addr)

Every line has the shape

	<timestamp:25> | <level:10> | <file:line:20> | <message>

with each column right-aligned and cut to its width.

# Rotation

[RotatingFileSink] starts a new file at aligned period boundaries (every
N seconds, minutes, hours, days, at midnight or on a weekday). Rolled
files are named app.log.1 (newest) through app.log.N; older ones are
deleted. The boundary is checked on each write, so an idle process does
not rotate until its next record.

# Failures

Setup errors wrap [ErrConfiguration]. After setup, emitting never fails
for the caller: a sink that cannot write is reported to the registry's
[ErrorHandler] (by default the zap diagnostics logger of package logger)
and the remaining sinks still receive the record.

# Other APIs

[NewSlog], [NewLogr] and [NewZap] expose a Logger through log/slog,
go-logr and zap so libraries written against those APIs land in the same
sinks.
*/
package logging
