// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package main

import (
	"time"

	"github.com/echa/config"

	bolt "go.etcd.io/bbolt"
)

var (
	boltDefaultOpts = bolt.Options{
		// open timeout when file is locked
		Timeout: time.Second,
		// faster for large databases
		FreelistType: bolt.FreelistMapType,

		// User-controlled options
		//
		// // skip fsync (DANGEROUS on crashes, but better performance for bulk load)
		// NoSync: false,
		//
		// // skip fsync+alloc on grow; don't use with ext3/4, good in Docker + XFS
		// NoGrowSync: false,
		//
		// // don't fsync freelist (improves write performance at the cost of full
		// // database scan on start-up)
		// NoFreelistSync: false,
		//
		// // PageSize overrides the default OS page size.
		// PageSize: 4096
	}
)

func DBOpts(readOnly bool) *bolt.Options {
	opts := boltDefaultOpts
	opts.ReadOnly = readOnly
	opts.NoSync = config.GetBool("history.nosync")
	opts.NoGrowSync = config.GetBool("history.no_grow_sync")
	opts.NoFreelistSync = config.GetBool("history.no_free_sync")
	opts.PageSize = config.GetInt("history.page_size")
	moniLog.Debug("Bolt DB config")
	moniLog.Debugf("  Readonly         %t", opts.ReadOnly)
	moniLog.Debugf("  No-Sync          %t", opts.NoSync)
	moniLog.Debugf("  No-Grow-Sync     %t", opts.NoGrowSync)
	moniLog.Debugf("  No-Freelist-Sync %t", opts.NoFreelistSync)
	moniLog.Debugf("  Pagesize         %d", opts.PageSize)
	return &opts
}
