// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package main

import (
	"fmt"
	"runtime"
)

var (
	company           = "Blockwatch Data Inc."
	orgUrl            = "blockwatch.cc"
	orgName           = "Blockwatch"
	appName           = "procwatchd"
	apiVersion        = "v001-2025-06-02"
	version    string = "v1.0"
	commit     string = "dev"
	envprefix         = "PW"
)

func UserAgent() string {
	return fmt.Sprintf("%s.%s/%s.%s",
		appName,
		orgUrl,
		version,
		commit,
	)
}

func printVersion() {
	fmt.Printf("%s Procwatch OSS %s -- %s\n", orgName, version, commit)
	fmt.Printf("(c) Copyright 2024-2025 -- %s\n", company)
	fmt.Printf("Go version (client): %s\n", runtime.Version())
}
