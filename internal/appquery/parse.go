package appquery

import "strings"

// parseScriptList splits osascript's textual list output ("a, b, c")
// into its items. AppleScript prints an empty list as an empty string.
func parseScriptList(out string) []string {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(out, ", ") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// scriptString quotes s as an AppleScript string literal.
func scriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
