// Package main hosts the classcheck CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, runs reconciliation
// batches over roster and submission files, renders completion matrices in
// the terminal and exports them as JSON, CSV or XLSX. Debugging helpers expose
// name normalization and header sniffing directly.
//
// Keep this package lean: behaviour lives in the internal packages and is
// only surfaced here.
package main
