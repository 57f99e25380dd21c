package config

import (
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
)

// problemTestPrefixes identify tests known to misbehave under the default
// canvas settings.
var problemTestPrefixes = []string{
	"http://web-platform.test:8000/2dcontext/drawing-images-to-the-canvas/",
	"http://web-platform.test:8000/_mozilla/mozilla/canvas/",
	"http://web-platform.test:8000/_mozilla/css/canvas_over_area.html",
}

func isProblemTest(raw string) bool {
	for _, prefix := range problemTestPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return true
		}
	}
	return false
}

var schemePrefix = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// parseURLOrFilename parses input as an absolute URL. Input without a
// scheme is a path, resolved against cwd and turned into a file URL; it
// never goes through the URL parser, so names like "100%.html" load.
func parseURLOrFilename(cwd, input string) (*url.URL, error) {
	if !schemePrefix.MatchString(input) {
		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		return fileURL(path), nil
	}
	u, err := url.Parse(input)
	if err != nil {
		return nil, err
	}
	if err := normalizeHost(u); err != nil {
		return nil, err
	}
	return u, nil
}

// normalizeHost converts an internationalised host name to its ASCII form.
func normalizeHost(u *url.URL) error {
	host := u.Hostname()
	if host == "" || u.Scheme == "file" || net.ParseIP(host) != nil {
		return nil
	}

	ascii, err := hostProfile.ToASCII(host)
	if err != nil {
		return fmt.Errorf("invalid host %q: %w", host, err)
	}
	if port := u.Port(); port != "" {
		ascii = net.JoinHostPort(ascii, port)
	}
	u.Host = ascii
	return nil
}

func fileURL(path string) *url.URL {
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return &url.URL{Scheme: "file", Path: slashed}
}
