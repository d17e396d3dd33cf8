package session

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Fragment keys returned by the authorization endpoint.
const (
	AccessTokenParam = "access_token"
	StateParam       = "state"
	ErrorParam       = "error"
)

// HashParams holds the key/value pairs of a URL fragment.
type HashParams map[string]string

var hashParamPattern = regexp.MustCompile(`([^&;=]+)=?([^&;]*)`)

// ParseFragment splits a URL fragment into [HashParams].
//
// Pairs are separated by '&' or ';' and values are percent-decoded ('+' is kept as is).
// A later key overwrites an earlier one. A malformed escape sequence, or one that decodes to invalid UTF-8, yields an empty mapping.
func ParseFragment(raw string) HashParams {
	raw = strings.TrimPrefix(raw, "#")

	params := HashParams{}
	for _, match := range hashParamPattern.FindAllStringSubmatch(raw, -1) {
		value, err := url.PathUnescape(match[2])
		if err != nil || !utf8.ValidString(value) {
			return HashParams{}
		}
		params[match[1]] = value
	}
	return params
}

// Has reports whether key was present in the fragment, even with an empty value.
func (p HashParams) Has(key string) bool {
	_, ok := p[key]
	return ok
}
