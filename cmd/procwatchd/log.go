// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package main

import (
	"os"

	"blockwatch.cc/procwatch/monitor"
	"blockwatch.cc/procwatch/proc"
	"blockwatch.cc/procwatch/server"
	"github.com/echa/config"
	logpkg "github.com/echa/log"
)

var (
	log     = logpkg.NewLogger("MAIN") // main program
	procLog = logpkg.NewLogger("PROC") // procfs decoders
	moniLog = logpkg.NewLogger("MONI") // sampling monitor
	srvrLog = logpkg.NewLogger("SRVR") // api server
)

// Initialize package-global logger variables.
func init() {
	config.SetDefault("log.backend", "stdout")
	config.SetDefault("log.flags", "date,time,micro,utc")

	// assign default loggers
	proc.UseLogger(procLog)
	monitor.UseLogger(moniLog)
	server.UseLogger(srvrLog)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]logpkg.Logger{
	"MAIN": log,
	"PROC": procLog,
	"MONI": moniLog,
	"SRVR": srvrLog,
}

func initLogging() {
	cfg := logpkg.NewConfig()
	cfg.Level = logpkg.ParseLevel(config.GetString("log.level"))
	cfg.Flags = logpkg.ParseFlags(config.GetString("log.flags"))
	cfg.Backend = config.GetString("log.backend")
	cfg.Filename = config.GetString("log.filename")
	cfg.Addr = config.GetString("log.syslog.address")
	cfg.Facility = config.GetString("log.syslog.facility")
	cfg.Ident = config.GetString("log.syslog.ident")
	cfg.FileMode = os.FileMode(config.GetInt("log.filemode"))
	logpkg.Init(cfg)

	log = logpkg.NewLogger("MAIN") // command level

	// create loggers with configured backend
	procLog = logpkg.NewLogger("PROC") // procfs decoders
	procLog.SetLevel(logpkg.ParseLevel(config.GetString("log.proc")))
	moniLog = logpkg.NewLogger("MONI") // sampling monitor
	moniLog.SetLevel(logpkg.ParseLevel(config.GetString("log.monitor")))
	srvrLog = logpkg.NewLogger("SRVR") // api server
	srvrLog.SetLevel(logpkg.ParseLevel(config.GetString("log.server")))

	// assign default loggers
	proc.UseLogger(procLog)
	monitor.UseLogger(moniLog)
	server.UseLogger(srvrLog)

	// store loggers in map
	subsystemLoggers = map[string]logpkg.Logger{
		"MAIN": log,
		"PROC": procLog,
		"MONI": moniLog,
		"SRVR": srvrLog,
	}

	// export to server for http control
	server.LoggerMap = subsystemLoggers

	// handle cli flags
	switch {
	case vtrace:
		setLogLevels(logpkg.LevelTrace)
	case vdebug:
		setLogLevels(logpkg.LevelDebug)
	case verbose:
		setLogLevels(logpkg.LevelInfo)
	}
}

// setLogLevel sets the logging level for provided subsystem.  Invalid
// subsystems are ignored.
func setLogLevel(subsystemID string, level logpkg.Level) {
	// Ignore invalid subsystems.
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}

	logger.SetLevel(level)
}

// setLogLevels sets the log level for all subsystem loggers to the passed
// level.
func setLogLevels(level logpkg.Level) {
	for subsystemID := range subsystemLoggers {
		setLogLevel(subsystemID, level)
	}
}
