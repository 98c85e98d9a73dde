package postprocess

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// leadingThinkingRe detects replies that open with a reasoning block. Blocks
// appearing later are left alone so translated text is never cut.
var leadingThinkingRe = regexp.MustCompile(`(?i)^\s*<(?:thinking|think|reasoning|reflection)>`)

// MalformedResponseError describes why a reply could not be used. It is
// informational only: ParseTranslations still returns a complete mapping.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed provider response: %s: %v", e.Reason, e.Err)
	}
	return "malformed provider response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// EmptyResult maps every target language to the empty string. It is the single
// placeholder used whenever a translation could not be produced.
func EmptyResult(targetLangs []string) map[string]string {
	out := make(map[string]string, len(targetLangs))
	for _, lang := range targetLangs {
		out[lang] = ""
	}
	return out
}

// ParseTranslations extracts the translation of every target language from
// raw. The returned map always holds exactly the target keys. A non-nil error
// is a *MalformedResponseError explaining why the whole reply was discarded;
// missing or null keys are not errors.
func ParseTranslations(raw string, targetLangs []string) (map[string]string, error) {
	content := strings.TrimSpace(raw)
	if leadingThinkingRe.MatchString(content) {
		content = removeThinkingBlocks(content)
	}
	content = extractJSON(content)

	if content == "" {
		return EmptyResult(targetLangs), &MalformedResponseError{Reason: "empty reply"}
	}

	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return EmptyResult(targetLangs), &MalformedResponseError{Reason: "invalid JSON", Err: err}
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return EmptyResult(targetLangs), &MalformedResponseError{Reason: "trailing content after JSON value", Err: err}
	}

	object, ok := value.(map[string]any)
	if !ok {
		return EmptyResult(targetLangs), &MalformedResponseError{Reason: fmt.Sprintf("expected JSON object, got %s", jsonKind(value))}
	}

	out := make(map[string]string, len(targetLangs))
	for _, lang := range targetLangs {
		out[lang] = coerceString(object[lang])
	}
	return out, nil
}

// coerceString renders a decoded JSON value as trimmed text. Strings are used
// verbatim, numbers keep their literal form, and composite values are encoded
// back to compact JSON. Absent and null values become "".
func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(v); err != nil {
			return ""
		}
		return strings.TrimSpace(buf.String())
	}
}

func jsonKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", value)
	}
}
