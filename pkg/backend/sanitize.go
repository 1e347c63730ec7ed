package backend

import "strings"

var argReplacer = strings.NewReplacer(
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
)

// Sanitize escapes every double quote, newline and carriage return in text so it
// can be passed to the analysis programs as a single-line argument.
func Sanitize(text string) string {
	return argReplacer.Replace(text)
}
