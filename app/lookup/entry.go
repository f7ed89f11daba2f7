package lookup

import (
	"strings"

	"github.com/rbhz/dictionary-lookup/app/clients/dictionaryapi"
	"golang.org/x/text/unicode/norm"
)

// Entry is a normalized lookup result for one word
type Entry struct {
	Word      string
	Phonetics []Phonetic
	Meanings  []Meaning
}

// Phonetic is a pronunciation, AudioURL is empty when no audio is available
type Phonetic struct {
	Text     string
	AudioURL string
}

// HasAudio reports whether phonetic has playable audio
func (p Phonetic) HasAudio() bool {
	return p.AudioURL != ""
}

// Meaning groups definitions of one part of speech
type Meaning struct {
	PartOfSpeech string
	Definitions  []Definition
}

// Definition holds definition text, Example is empty when absent
type Definition struct {
	Text    string
	Example string
}

// HasExample reports whether definition has an example
func (d Definition) HasExample() bool {
	return d.Example != ""
}

// Normalize maps raw API entry to Entry. Missing sequences become empty
// slices and missing optional fields become empty strings.
func Normalize(raw dictionaryapi.WordResponse) Entry {
	entry := Entry{
		Word:      raw.Word,
		Phonetics: make([]Phonetic, 0, len(raw.Phonetics)),
		Meanings:  make([]Meaning, 0, len(raw.Meanings)),
	}
	for _, p := range raw.Phonetics {
		phonetic := Phonetic{Text: p.Text}
		if p.Audio != nil {
			phonetic.AudioURL = *p.Audio
		}
		entry.Phonetics = append(entry.Phonetics, phonetic)
	}
	for _, m := range raw.Meanings {
		meaning := Meaning{
			PartOfSpeech: m.PartOfSpeech,
			Definitions:  make([]Definition, 0, len(m.Definitions)),
		}
		for _, d := range m.Definitions {
			definition := Definition{Text: d.Definition}
			if d.Example != nil {
				definition.Example = *d.Example
			}
			meaning.Definitions = append(meaning.Definitions, definition)
		}
		entry.Meanings = append(entry.Meanings, meaning)
	}
	return entry
}

// NormalizeTerm trims surrounding whitespace and composes the term to NFC
func NormalizeTerm(term string) string {
	return norm.NFC.String(strings.TrimSpace(term))
}
