package cmd

import (
	"github.com/fis-platform/fis-launcher/pkg/launcher"
	"github.com/fis-platform/fis-launcher/pkg/verify"
)

// Injectable functions for testability (shared across cmd package)
var (
	// Launcher construction
	NewLauncherFn = launcher.New

	// Verifier construction
	NewVerifierFn = verify.New
)
