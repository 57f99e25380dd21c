// Package application wires the startup pipeline together: logger,
// preference map, configuration store and resolver. It maps resolution
// outcomes to process exit codes, leaving the actual exit to package main.
package application
