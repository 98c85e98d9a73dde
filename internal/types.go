package internal

import (
	"strings"
)

// DefaultSourceLang is used when a request omits source_lang or sends blanks.
const DefaultSourceLang = "en"

// TranslationRequest is the inbound request shared by the HTTP API and the CLI.
type TranslationRequest struct {
	SourceLang  string   `json:"source_lang"`
	TargetLangs []string `json:"target_langs"`
	Text        string   `json:"text"`
}

// InvalidRequestError reports caller input that failed normalization. Detail
// is safe to return to the caller.
type InvalidRequestError struct {
	Detail string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Detail
}

// Normalize trims every field, substitutes the default source language and
// drops blank target codes. Duplicate targets are kept.
func (r TranslationRequest) Normalize() (TranslationRequest, error) {
	out := TranslationRequest{
		SourceLang:  strings.TrimSpace(r.SourceLang),
		TargetLangs: NormalizeLangs(r.TargetLangs),
		Text:        strings.TrimSpace(r.Text),
	}
	if out.SourceLang == "" {
		out.SourceLang = DefaultSourceLang
	}

	if out.Text == "" {
		return out, &InvalidRequestError{Detail: "Missing or empty text"}
	}
	if len(out.TargetLangs) == 0 {
		return out, &InvalidRequestError{Detail: "At least one target language required"}
	}
	return out, nil
}

// NormalizeLangs trims each code and discards the ones left empty. The
// result is never nil.
func NormalizeLangs(langs []string) []string {
	out := make([]string, 0, len(langs))
	for _, lang := range langs {
		if code := strings.TrimSpace(lang); code != "" {
			out = append(out, code)
		}
	}
	return out
}
