package chat

import "strings"

// Language is a supported response language.
type Language string

const (
	LanguageSpanish    Language = "es"
	LanguageEnglish    Language = "en"
	LanguagePortuguese Language = "pt"
)

type languageKeywords struct {
	lang  Language
	words []string
}

// LanguageDetector scores a message against per-language keyword sets.
type LanguageDetector struct {
	keywords []languageKeywords
}

// NewLanguageDetector returns a detector with the default dictionaries.
// Entries are ordered by tie-break priority: Spanish is the most common
// caller locale, then Portuguese, then English.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{
		keywords: []languageKeywords{
			{LanguageSpanish, []string{
				"hola", "quiero", "dónde", "donde puedo", "gracias", "qué",
				"recomiénd", "días", "día", "lugares para", "ciudad", "visitar",
			}},
			{LanguagePortuguese, []string{
				"olá", "oi,", "quero", "onde", "obrigado", "obrigada", "o que",
				"dias", "dia", "cidade", "você", "passeio",
			}},
			{LanguageEnglish, []string{
				"hello", "want", "where", "please", "thank", "recommend",
				"days", "day", "city", "what", "visit", "eat",
			}},
		},
	}
}

// Detect returns the best-scoring language for the message. English is the
// fail-open default when nothing matches.
func (d *LanguageDetector) Detect(message string) Language {
	msg := strings.ToLower(message)

	best := LanguageEnglish
	bestScore := 0
	for _, entry := range d.keywords {
		score := 0
		for _, word := range entry.words {
			if strings.Contains(msg, word) {
				score++
			}
		}
		if score > bestScore {
			best = entry.lang
			bestScore = score
		}
	}
	return best
}
