// Package config resolves command-line arguments into the process
// configuration snapshot and publishes it.
//
// A Resolver parses arguments against the flag schema, decodes -Z debug
// tokens, validates every typed value and publishes the resulting Options
// to a Store. Preference overrides are applied to the preference map only
// after the snapshot is published, so command-line preferences win over
// bulk preference files.
//
// Store is safe for concurrent use. Shared returns a process-wide instance
// for code that cannot be handed a Store explicitly.
package config
