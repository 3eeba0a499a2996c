// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package config builds a logging setup from a YAML document.

A document names sinks once and lets any number of loggers share them:

	directory: /var/log/toolhive
	format:
	  time_layout: "2006-01-02 15:04:05,000"
	sinks:
	  console:
	    type: console
	    stream: stderr
	    level: WARNING
	  audit:
	    type: rotating_file
	    filename: audit.log
	    when: midnight
	    backups: 7
	    filter: record.logger.startsWith("audit")
	loggers:
	  audit.http:
	    level: DEBUG
	    sinks: [console, audit]

Documents are validated against an embedded JSON schema before decoding.
TOOLHIVE_LOG_DIR, TOOLHIVE_LOG_LEVEL and TOOLHIVE_LOG_DEBUG override the
directory, every logger level and the debug flag. Without a directory,
rotating files go under $XDG_STATE_HOME/toolhive/logs.

	cfg, err := config.LoadFile(path, &env.OSReader{})
	if err != nil {
		return err
	}
	if _, err := cfg.Apply(logging.Default()); err != nil {
		return err
	}
	defer logging.Default().Shutdown()
*/
package config
