// Package postprocess turns the raw reply of an LLM provider into a
// per-language translation mapping.
//
// Replies are untrusted: they may be fenced in markdown, prefixed with
// reasoning blocks, truncated, or not JSON at all. Nothing in this package
// panics or propagates a parse failure as a hard error; every requested
// language always receives a string, empty when no translation was produced.
package postprocess

import (
	"regexp"
	"strings"
)

const codeFence = "```"

// thinkingBlockRe matches complete <thinking>…</thinking> style blocks.
// Each tag variant is listed explicitly because Go's RE2 engine does not
// support backreferences.
// Flags: i = case-insensitive, s = dot matches newline.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// truncatedThinkingRe matches an opened thinking tag whose closing tag is
// missing (the model was cut off mid-thought).
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// extractJSON returns the candidate JSON region of a reply. Only replies that
// open with a code fence are sliced, from the first '{' to the last '}'
// inclusive; anything else is returned trimmed but otherwise untouched.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, codeFence) {
		return content
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return content
	}
	return content[start : end+1]
}
