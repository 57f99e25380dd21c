// Package flags declares command-line flag schemas and parses argument
// vectors against them. A schema is compiled into a kingpin application per
// parse; the result is a Matches value that answers presence and value
// queries by short or long name, in the manner of getopts.
//
// The package never terminates the process. Help requests are reported on
// the returned Matches together with the rendered usage text, and parse
// failures are returned as *ParseError.
package flags
