package types

import (
	"net/http"
	"net/textproto"
	"sort"
	"unicode/utf8"
)

// Header is one response header name/value pair.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HeaderSet is the resolved header list of one response, in iteration
// order. A header with several values appears once per value.
type HeaderSet []Header

// Get returns the first value for name, matched case-insensitively.
func (hs HeaderSet) Get(name string) (string, bool) {
	key := textproto.CanonicalMIMEHeaderKey(name)
	for _, h := range hs {
		if textproto.CanonicalMIMEHeaderKey(h.Name) == key {
			return h.Value, true
		}
	}
	return "", false
}

// HeaderSetFromHTTP flattens an http.Header, ordered by name so repeated
// scans of the same response report findings in the same order.
// Values that are not valid UTF-8 become the empty string.
func HeaderSetFromHTTP(h http.Header) HeaderSet {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	hs := make(HeaderSet, 0, len(h))
	for _, name := range names {
		for _, v := range h[name] {
			if !utf8.ValidString(v) {
				v = ""
			}
			hs = append(hs, Header{Name: name, Value: v})
		}
	}
	return hs
}

// HeaderSetFromMap builds a HeaderSet from a single-valued map, ordered
// by name.
func HeaderSetFromMap(m map[string]string) HeaderSet {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	hs := make(HeaderSet, 0, len(m))
	for _, name := range names {
		v := m[name]
		if !utf8.ValidString(v) {
			v = ""
		}
		hs = append(hs, Header{Name: name, Value: v})
	}
	return hs
}
