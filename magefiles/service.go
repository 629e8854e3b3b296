//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Stub builds the CLI and runs the local stub service on 127.0.0.1:3000.
func Stub() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "stub")
}

// Health checks the configured service.
func Health() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "service", "health")
}

// Smoke sends a sample text to the configured service and prints the counts.
// Start the stub first with `mage stub` when no real service is running.
func Smoke() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "analyze", "text:Contact jane@example.com or 555-123-4567")
}

func binPath() string {
	return "./" + binDir + "/" + binName
}
