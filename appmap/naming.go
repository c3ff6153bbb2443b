package appmap

import (
	"regexp"
	"strings"
)

var (
	unwantedChars  = regexp.MustCompile(`[^a-z0-9\-_]+`)
	repeatedUnders = regexp.MustCompile(`_{2,}`)
	testNamePrefix = regexp.MustCompile(`^test_`)
	underscoreRuns = regexp.MustCompile(`_+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// SanitizeName converts a test name into a safe file name: unwanted
// characters are collapsed to a single underscore and leading/trailing
// underscores are stripped.
func SanitizeName(name string) string {
	name = unwantedChars.ReplaceAllString(name, "_")
	name = repeatedUnders.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// Humanize turns an identifier like "test_foo_bar" or "tests.test_account"
// into a display phrase like "Foo bar". A conventional "test_" prefix and
// dot separators are stripped before humanizing.
func Humanize(identifier string) string {
	s := strings.ReplaceAll(identifier, ".", " ")
	s = testNamePrefix.ReplaceAllString(s, "")
	s = underscoreRuns.ReplaceAllString(s, " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
