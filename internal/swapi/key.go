package swapi

import "strings"

// DefaultBaseURL is the public SWAPI host every resource URL starts with.
const DefaultBaseURL = "https://swapi.dev/api/"

// Key turns a full resource URL into a cache key by stripping
// DefaultBaseURL. Input without the prefix is returned unchanged.
//
//	Key("https://swapi.dev/api/people/1/") // "people/1/"
func Key(url string) string {
	return KeyFor(DefaultBaseURL, url)
}

// KeyFor is Key against an arbitrary base.
func KeyFor(base, url string) string {
	return strings.TrimPrefix(url, base)
}
