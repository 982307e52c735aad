package util

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// localeVars are consulted in POSIX precedence order.
var localeVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// LocaleTag derives a language tag from the POSIX locale environment
// (e.g. "de_DE.UTF-8" becomes de-DE). Unset, "C", "POSIX" and unparseable
// values yield English.
func LocaleTag(getenv func(string) string) language.Tag {
	for _, key := range localeVars {
		value := getenv(key)
		if value == "" {
			continue
		}
		if i := strings.IndexAny(value, ".@"); i >= 0 {
			value = value[:i]
		}
		if value == "C" || value == "POSIX" {
			return language.English
		}
		tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
		if err != nil {
			return language.English
		}
		return tag
	}
	return language.English
}

// NewPrinter returns a printer that formats numbers for the user's locale.
func NewPrinter(getenv func(string) string) *message.Printer {
	return message.NewPrinter(LocaleTag(getenv))
}
