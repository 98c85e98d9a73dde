// Package detector resolves the "auto" source language of a request.
package detector

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// AutoLang is the source_lang value that asks for detection.
const AutoLang = "auto"

// minLetters is the smallest sample the detector is trusted with.
const minLetters = 6

// Detector wraps a lingua detector that is built on first use; building it
// loads language models and is expensive, so share one instance.
type Detector struct {
	once      sync.Once
	languages []lingua.Language
	detector  lingua.LanguageDetector
}

// New returns a detector over all languages lingua knows.
func New() *Detector {
	return &Detector{}
}

// NewForLanguages restricts detection to the given ISO 639-1 codes. Unknown
// codes are ignored; fewer than two known codes fall back to all languages.
func NewForLanguages(codes ...string) *Detector {
	var languages []lingua.Language
	for _, code := range codes {
		iso := lingua.GetIsoCode639_1FromValue(strings.ToUpper(strings.TrimSpace(code)))
		lang := lingua.GetLanguageFromIsoCode639_1(iso)
		if lang != lingua.Unknown {
			languages = append(languages, lang)
		}
	}
	if len(languages) < 2 {
		languages = nil
	}
	return &Detector{languages: languages}
}

// Preload builds the detector with every language model loaded up front.
// Call it at startup so the first detection does not pay for the load.
func (d *Detector) Preload() {
	d.build(true)
}

func (d *Detector) get() lingua.LanguageDetector {
	return d.build(false)
}

func (d *Detector) build(preload bool) lingua.LanguageDetector {
	d.once.Do(func() {
		builder := lingua.NewLanguageDetectorBuilder()
		if len(d.languages) > 0 {
			builder = builder.FromLanguages(d.languages...)
		} else {
			builder = builder.FromAllLanguages()
		}
		if preload {
			builder = builder.WithPreloadedLanguageModels()
		}
		d.detector = builder.Build()
	})
	return d.detector
}

// DetectISO returns the lower-case ISO 639-1 code of text, or false when the
// sample is too short or ambiguous.
func (d *Detector) DetectISO(text string) (string, bool) {
	sample := strings.TrimSpace(text)
	if countLetters(sample) < minLetters {
		return "", false
	}

	lang, ok := d.get().DetectLanguageOf(sample)
	if !ok {
		return "", false
	}

	code := strings.ToLower(lang.IsoCode639_1().String())
	if len(code) != 2 {
		return "", false
	}
	return code, true
}

// ResolveSource returns sourceLang unchanged unless it asks for detection.
// Detection failures keep AutoLang so the provider can decide.
func (d *Detector) ResolveSource(sourceLang, text string) string {
	if !strings.EqualFold(strings.TrimSpace(sourceLang), AutoLang) {
		return sourceLang
	}
	if code, ok := d.DetectISO(text); ok {
		return code
	}
	return AutoLang
}

func countLetters(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
