package main

import (
	"os"

	"github.com/fis-platform/fis-launcher/cmd"
	"github.com/fis-platform/fis-launcher/pkg/environment"
)

// Injectable functions for testability
var (
	// OS operations
	exitFn = os.Exit

	// Environment functions
	newEnvironmentFn = environment.NewEnvironment

	// Command functions
	newRootCommandFn = cmd.NewRootCommand
)
