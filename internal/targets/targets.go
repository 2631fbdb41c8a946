// Package targets reads the list of URLs to probe.
package targets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoTargets is returned when a source yields no URLs.
var ErrNoTargets = errors.New("no target URLs")

// Load reads URLs from the file at path, one per line.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening URL file: %w", err)
	}
	defer f.Close()

	urls, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return urls, nil
}

// Parse reads URLs from r. Blank lines and lines starting with '#' are
// skipped; surrounding whitespace is trimmed. Entries are kept in input
// order, duplicates included.
func Parse(r io.Reader) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, Normalize(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading URLs: %w", err)
	}
	if len(urls) == 0 {
		return nil, ErrNoTargets
	}
	return urls, nil
}

// Normalize accepts a host, host:port, or full URL and returns a URL.
// Bare hosts default to https. Anything else is left for the fetcher to
// reject, so one bad line only costs that URL.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}
