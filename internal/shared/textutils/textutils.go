// Package textutils holds small text helpers shared across packages.
package textutils

import "regexp"

var reThink = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThink removes <think>…</think> blocks that some models embed before
// their actual answer. Run before dialect parsing so a call inside a thinking
// block is not mistaken for a real one.
func StripThink(s string) string {
	return reThink.ReplaceAllString(s, "")
}

// Truncate shortens a string to at most n runes, adding "..." if it was
// truncated. Cutting on rune boundaries keeps multibyte text intact.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
