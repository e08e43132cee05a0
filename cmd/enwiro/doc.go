// Package main hosts the enwiro CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// environment lookups, recipe cooking, workspace activation through the
// configured window-manager adapter, and configuration scaffolding. It
// centralizes configuration resolution, plugin discovery, and structured
// logging setup so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
