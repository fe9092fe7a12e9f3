// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"blockwatch.cc/procwatch/monitor"
	"blockwatch.cc/procwatch/server"
	"github.com/echa/config"
)

func runServer() error {
	// set user agent in library client
	server.UserAgent = UserAgent()
	server.ApiVersion = apiVersion

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// open sample history when enabled
	var hist *monitor.History
	if !nohistory {
		pathname := config.GetString("history.path")
		log.Infof("Using history database %s", pathname)
		if config.GetBool("history.nosync") {
			log.Warnf("Enabled NOSYNC mode. History will not be safe on crashes!")
		}

		// make sure paths exist
		if err := os.MkdirAll(filepath.Dir(pathname), 0700); err != nil {
			return err
		}

		var err error
		hist, err = monitor.OpenHistory(pathname, config.GetDuration("history.retention"), DBOpts(false))
		if err != nil {
			return fmt.Errorf("error opening history database: %v", err)
		}
		defer hist.Close()
	}

	// load device aliases when configured
	var aliases *monitor.AliasSet
	if fname := config.GetString("monitor.aliases"); fname != "" {
		var err error
		aliases, err = monitor.LoadAliases(fname)
		if err != nil {
			return fmt.Errorf("error loading alias file %s: %v", fname, err)
		}
		log.Infof("Loaded %d device aliases from %s", aliases.Len(), fname)
	}

	// connect sample publisher when configured
	var pub *monitor.Publisher
	if addr := config.GetString("publish.addr"); addr != "" && !nopublish {
		var err error
		pub, err = monitor.NewPublisher(ctx, addr)
		if err != nil {
			return fmt.Errorf("error opening publisher socket %s: %v", addr, err)
		}
		defer pub.Close()
		log.Infof("Publishing samples at %s", addr)
	}

	mon := monitor.New(monitor.Config{
		Root:      config.GetString("monitor.procfs"),
		Interval:  config.GetDuration("monitor.interval"),
		History:   hist,
		Publisher: pub,
		Aliases:   aliases,
	})
	mon.Start()
	defer mon.Stop(ctx)

	// setup HTTP server
	if !noapi {
		srv, err := server.New(&server.Config{
			Monitor: mon,
			Http: server.HttpConfig{
				Addr:              config.GetString("server.addr"),
				Port:              config.GetInt("server.port"),
				Scheme:            config.GetString("server.scheme"),
				Host:              config.GetString("server.host"),
				MaxWorkers:        config.GetInt("server.workers"),
				MaxQueue:          config.GetInt("server.queue"),
				ReadTimeout:       config.GetDuration("server.read_timeout"),
				HeaderTimeout:     config.GetDuration("server.header_timeout"),
				WriteTimeout:      config.GetDuration("server.write_timeout"),
				KeepAlive:         config.GetDuration("server.keepalive"),
				ShutdownTimeout:   config.GetDuration("server.shutdown_timeout"),
				DefaultListCount:  config.GetUint("server.default_list_count"),
				MaxListCount:      config.GetUint("server.max_list_count"),
				CorsEnable:        cors || config.GetBool("server.cors_enable"),
				CorsOrigin:        config.GetString("server.cors_origin"),
				CorsAllowHeaders:  config.GetString("server.cors_allow_headers"),
				CorsExposeHeaders: config.GetString("server.cors_expose_headers"),
				CorsMethods:       config.GetString("server.cors_methods"),
				CorsMaxAge:        config.GetString("server.cors_maxage"),
				CorsCredentials:   config.GetString("server.cors_credentials"),
				CacheEnable:       config.GetBool("server.cache_enable"),
				CacheControl:      config.GetString("server.cache_control"),
				CacheExpires:      config.GetDuration("server.cache_expires"),
				CacheMaxExpires:   config.GetDuration("server.cache_max"),
			},
		})
		if err != nil {
			return err
		}
		srv.Start()
		defer srv.Stop()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	<-c
	return nil
}
