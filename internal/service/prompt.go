package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/valpere/llmtranslate/internal/translator"
)

// SystemInstruction is sent unchanged to every provider.
const SystemInstruction = `You are a translator. Translate the given text from the source language to each target language.
Return ONLY a JSON object: keys = language codes (e.g. "ru", "uk"), values = translated text as strings.
No markdown, no explanation. Example: {"ru": "переведённый текст", "uk": "перекладений текст"}.`

type userPayload struct {
	SourceLang  string   `json:"source_lang"`
	TargetLangs []string `json:"target_langs"`
	Text        string   `json:"text"`
}

// buildPrompt serializes the request as indented JSON with non-ASCII text and
// markup characters kept verbatim.
func buildPrompt(text, sourceLang string, targetLangs []string) (translator.Prompt, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(userPayload{
		SourceLang:  sourceLang,
		TargetLangs: targetLangs,
		Text:        text,
	}); err != nil {
		return translator.Prompt{}, fmt.Errorf("encode user payload: %w", err)
	}

	return translator.Prompt{
		System:      SystemInstruction,
		User:        strings.TrimRight(buf.String(), "\n"),
		SourceLang:  sourceLang,
		TargetLangs: targetLangs,
		Text:        text,
	}, nil
}
