// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/echa/config"
)

var (
	flags   = flag.NewFlagSet(appName, flag.ContinueOnError)
	errExit = errors.New("exit")

	// general options
	verbose     bool
	vtrace      bool
	vdebug      bool
	maxcpu      int
	showVersion bool
	configFile  string

	// daemon options
	noapi     bool
	nohistory bool
	nopublish bool
	cors      bool

	// runtime profiling
	cpuprof   string
	blockprof string
	mutexprof string
)

func init() {
	// setup CLI flags
	flags.Usage = func() {}
	flags.BoolVar(&verbose, "v", false, "be verbose")
	flags.BoolVar(&vdebug, "vv", false, "debug mode")
	flags.BoolVar(&vtrace, "vvv", false, "trace mode")
	flags.BoolVar(&showVersion, "version", false, "show version")
	flags.StringVar(&configFile, "c", "config.json", "read config from `file`")
	flags.StringVar(&configFile, "config", "config.json", "read config from `file`")

	flags.BoolVar(&noapi, "noapi", false, "disable API server")
	flags.BoolVar(&nohistory, "nohistory", false, "disable sample history")
	flags.BoolVar(&nopublish, "nopublish", false, "disable sample publisher")
	flags.BoolVar(&cors, "enable-cors", false, "enable API CORS support")

	flags.StringVar(&cpuprof, "profile-cpu", "", "write cpu profile to `file`")
	flags.StringVar(&blockprof, "profile-block", "", "write blocking profile to `file`")
	flags.StringVar(&mutexprof, "profile-mutex", "", "write mutex contention profile to `file`")

	// go runtime
	config.SetDefault("go.cpu", 0)         // "max number of CPU cores to use (default: all)"
	config.SetDefault("go.gc", 20)         // "trigger GC when used mem grows by N percent"
	config.SetDefault("go.sample_rate", 0) // block and mutex profiling sample rate

	// sampling
	config.SetDefault("monitor.procfs", "/proc")         // procfs mount point
	config.SetDefault("monitor.interval", 5*time.Second) // wall clock sampling interval
	config.SetDefault("monitor.aliases", "")             // device alias file (JSON)

	// sample history
	config.SetDefault("history.path", "./procwatch.db")      // bolt db file
	config.SetDefault("history.retention", 24*time.Hour)     // prune samples older than
	config.SetDefault("history.nosync", false)               // skip fsync, dangerous
	config.SetDefault("history.no_grow_sync", false)         // don't use with ext3/4, good in Docker + XFS
	config.SetDefault("history.no_free_sync", false)         // skip fsync+alloc on grow; don't use with ext3/4, good in Docker + XFS
	config.SetDefault("history.page_size", os.Getpagesize()) // custom db page size (overwrites OS)

	// sample publisher
	config.SetDefault("publish.addr", "") // zmq pub endpoint, e.g. tcp://127.0.0.1:8001

	// HTTP API server
	config.SetDefault("server.addr", "127.0.0.1")
	config.SetDefault("server.port", 8000)
	config.SetDefault("server.scheme", "http")
	config.SetDefault("server.host", "127.0.0.1")
	config.SetDefault("server.name", UserAgent())
	config.SetDefault("server.workers", 64)
	config.SetDefault("server.queue", 128)
	config.SetDefault("server.read_timeout", 5*time.Second)
	config.SetDefault("server.header_timeout", 2*time.Second)
	config.SetDefault("server.write_timeout", 90*time.Second)
	config.SetDefault("server.keepalive", 90*time.Second)
	config.SetDefault("server.shutdown_timeout", 60*time.Second)
	config.SetDefault("server.max_list_count", 50000)
	config.SetDefault("server.default_list_count", 500)
	config.SetDefault("server.cors_enable", false)
	config.SetDefault("server.cors_origin", "*")
	config.SetDefault("server.cors_allow_headers", strings.Join([]string{
		"Authorization",
		"Accept",
		"Content-Type",
		"X-Api-Key",
		"X-Requested-With",
	}, ","))
	config.SetDefault("server.cors_expose_headers", strings.Join([]string{
		"Date",
		"X-Runtime",
		"X-Request-Id",
		"X-Api-Version",
		"X-Sample-Time",
	}, ","))
	config.SetDefault("server.cors_methods", "GET,PUT,OPTIONS")
	config.SetDefault("server.cors_maxage", 86400*time.Second)
	config.SetDefault("server.cors_credentials", true)
	config.SetDefault("server.cache_control", "public")
	config.SetDefault("server.cache_expires", 5*time.Second)
	config.SetDefault("server.cache_max", 24*time.Hour)

	// logging
	config.SetDefault("log.backend", "stdout")
	config.SetDefault("log.flags", "date,time,micro,utc")
	config.SetDefault("log.level", "info")
	config.SetDefault("log.proc", "info")
	config.SetDefault("log.monitor", "info")
	config.SetDefault("log.server", "info")
}

func loadConfig() error {
	config.SetEnvPrefix(envprefix)
	if configFile != "" {
		config.SetConfigName(configFile)
	}
	realconf := config.ConfigName()
	if _, err := os.Stat(realconf); err == nil {
		if err := config.ReadConfigFile(); err != nil {
			return fmt.Errorf("reading config file %q: %v\n", realconf, err)
		}
		log.Infof("Using config file %s", realconf)
	} else {
		log.Warnf("Missing config file, using default values.")
	}
	return nil
}

func parseFlags() error {
	// split cli args into known and extra
	knownFlags := make([]string, 0)
	extraFlags := make([]string, 0)
	for i := 1; i < len(os.Args); i++ {
		isKnown := flags.Lookup(os.Args[i][1:]) != nil || os.Args[i] == "-h"
		isSingle := true
		if i+1 < len(os.Args) {
			if !strings.HasPrefix(os.Args[i+1], "-") {
				isSingle = false
			}
		}
		if isKnown {
			knownFlags = append(knownFlags, os.Args[i])
			if !isSingle {
				knownFlags = append(knownFlags, os.Args[i+1])
				i++
			}
		} else {
			extraFlags = append(extraFlags, os.Args[i])
			if !isSingle {
				extraFlags = append(extraFlags, os.Args[i+1])
				i++
			}
		}
	}

	if err := flags.Parse(knownFlags); err != nil {
		if err == flag.ErrHelp {
			fmt.Printf("Usage: %s [flags]\n", appName)
			fmt.Println("\nFlags")
			flags.PrintDefaults()
			return errExit
		}
		return err
	}

	if showVersion {
		printVersion()
		return errExit
	}

	// load config file now (before applying extra CLI args so users can override
	// config file settings with cli args )
	if err := loadConfig(); err != nil {
		return err
	}

	// handle other command line flags
	for i := 0; i < len(extraFlags); i++ {
		key, val := extraFlags[i], ""
		if strings.Contains(key, "=") {
			split := strings.Split(key, "=")
			key = split[0]
			val = split[1]
		} else if i+1 < len(extraFlags) && !strings.HasPrefix(extraFlags[i+1], "-") {
			val = extraFlags[i+1]
			i++
		}
		if !strings.HasPrefix(key, "-") {
			return fmt.Errorf("Invalid flag %q: missing dash", key)
		}
		key = strings.TrimPrefix(key, "-")
		if val != "" {
			log.Debugf("Flag %s=%s", key, val)
			config.Set(key, val)
		} else {
			config.Set(key, true) // assume boolean flag
		}
	}
	return nil
}
