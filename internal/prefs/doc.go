// Package prefs holds the dotted-name preference mapping that startup
// resolution writes into, and the coercion rules that turn untyped
// "name=value" strings into typed preference values.
package prefs
