package config

import (
	"net/url"
	"strconv"
)

// DefaultProfilerInterval is the stdout reporting interval, in seconds, used
// when the profiler flag is given without a value.
const DefaultProfilerInterval = 5.0

// OutputOptions describes where profiler reports go. It is one of Stdout,
// FileName or Database.
type OutputOptions interface {
	cloneOutput() OutputOptions
}

// Stdout prints reports to standard output every Interval seconds.
type Stdout struct {
	Interval float64
}

// FileName writes reports to a file when the process ends.
type FileName struct {
	Path string
}

// Database sends reports to a remote time-series database.
type Database struct {
	URL *url.URL
	Credentials
}

// Credentials select the database and account for Database routing.
type Credentials struct {
	Name *string
	User *string
	Pass *string
}

func (s Stdout) cloneOutput() OutputOptions   { return s }
func (f FileName) cloneOutput() OutputOptions { return f }

func (d Database) cloneOutput() OutputOptions {
	return Database{
		URL: cloneURL(d.URL),
		Credentials: Credentials{
			Name: clonePtr(d.Name),
			User: clonePtr(d.User),
			Pass: clonePtr(d.Pass),
		},
	}
}

type outputParser func(arg string, creds Credentials) (OutputOptions, bool)

// outputParsers are tried in order; the first match wins.
var outputParsers = []outputParser{
	parseStdoutOutput,
	parseDatabaseOutput,
}

// ParseOutput routes a profiler argument. A number is a stdout interval, an
// absolute URL is a database endpoint, and anything else is a file path.
func ParseOutput(arg string, creds Credentials) OutputOptions {
	for _, parse := range outputParsers {
		if out, ok := parse(arg, creds); ok {
			return out
		}
	}
	return FileName{Path: arg}
}

func parseStdoutOutput(arg string, _ Credentials) (OutputOptions, bool) {
	interval, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return nil, false
	}
	return Stdout{Interval: interval}, true
}

func parseDatabaseOutput(arg string, creds Credentials) (OutputOptions, bool) {
	u, err := url.Parse(arg)
	if err != nil || !u.IsAbs() {
		return nil, false
	}
	return Database{URL: u, Credentials: creds}, true
}
