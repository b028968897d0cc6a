// Package locale decides whether the environment selects a UTF-8 locale.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// UTF8 is the canonical codeset name of UTF-8 locales.
const UTF8 = "UTF-8"

// asciiCodeset is what the C and POSIX locales report.
const asciiCodeset = "ANSI_X3.4-1968"

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Name returns the locale governing character classification: LC_ALL, then
// LC_CTYPE, then LANG. Empty values are skipped.
func Name(lookup LookupFunc) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
	}
	return ""
}

// Codeset returns the codeset of a locale name such as "de_DE.utf8@euro".
// Spellings of UTF-8 and labels known to the charset index are canonicalised;
// any other label is returned as written. ok is false only when the name
// carries no codeset at all.
func Codeset(name string) (codeset string, ok bool) {
	switch name {
	case "", "C", "POSIX":
		return asciiCodeset, true
	}

	_, rest, found := strings.Cut(name, ".")
	if !found {
		return "", false
	}
	label, _, _ := strings.Cut(rest, "@")
	if label == "" {
		return "", false
	}

	if isUTF8Label(label) {
		return UTF8, true
	}
	if enc, err := htmlindex.Get(label); err == nil {
		if canonical, err := ianaindex.IANA.Name(enc); err == nil && canonical != "" {
			return canonical, true
		}
	}
	return label, true
}

func isUTF8Label(label string) bool {
	switch strings.ToLower(label) {
	case "utf8", "utf-8":
		return true
	}
	return false
}

// IsUTF8 reports whether the locale selected by the environment encodes
// text as UTF-8. A locale whose codeset cannot be determined counts as UTF-8,
// since switching the console out of UTF-8 needlessly is worse than keeping it.
func IsUTF8(lookup LookupFunc) bool {
	codeset, ok := Codeset(Name(lookup))
	if !ok {
		return true
	}
	return codeset == UTF8
}
