// Package view builds display trees for lookup results and errors.
package view

import (
	"bytes"
	"fmt"

	"github.com/rbhz/dictionary-lookup/app/lookup"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// class names used by page styles
const (
	ClassPhonetics = "phonetics"
	ClassMeanings  = "meanings"
	ClassSeparated = "separated"
)

// playAudio plays the audio element rendered right after the button
const playAudio = "this.nextElementSibling.play()"

// Build creates container node with word heading, phonetics and meanings blocks
func Build(entry lookup.Entry) *html.Node {
	container := element(atom.Div, "")
	container.AppendChild(textElement(atom.H3, entry.Word))

	phonetics := element(atom.Div, ClassPhonetics)
	for _, p := range entry.Phonetics {
		if !p.HasAudio() {
			phonetics.AppendChild(textElement(atom.Span, p.Text))
			continue
		}
		button := textElement(atom.Button, p.Text,
			html.Attribute{Key: "type", Val: "button"},
			html.Attribute{Key: "onclick", Val: playAudio},
		)
		audio := element(atom.Audio, "",
			html.Attribute{Key: "src", Val: p.AudioURL},
			html.Attribute{Key: "preload", Val: "none"},
		)
		phonetics.AppendChild(button)
		phonetics.AppendChild(audio)
	}

	meanings := element(atom.Ol, ClassMeanings)
	for _, m := range entry.Meanings {
		meaning := element(atom.Ul, "")
		meaning.AppendChild(textElement(atom.Li, m.PartOfSpeech))
		definitions := element(atom.Ol, "")
		for _, d := range m.Definitions {
			definition := element(atom.Ul, ClassSeparated)
			definition.AppendChild(textElement(atom.Li, "Definition: "+d.Text))
			if d.HasExample() {
				definition.AppendChild(textElement(atom.Li, "Example: "+d.Example))
			}
			definitions.AppendChild(definition)
		}
		meaning.AppendChild(definitions)
		meanings.AppendChild(meaning)
	}

	container.AppendChild(phonetics)
	container.AppendChild(meanings)
	return container
}

// ErrorNode creates error region content for a user facing message
func ErrorNode(message string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: "ERROR: " + message}
}

// Render serializes node to escaped HTML
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("render node: %w", err)
	}
	return buf.String(), nil
}

// HTML renders entries and errors as page markup
type HTML struct{}

// Entry renders entry markup
func (HTML) Entry(entry lookup.Entry) (string, error) {
	return Render(Build(entry))
}

// Error renders error message markup
func (HTML) Error(message string) (string, error) {
	return Render(ErrorNode(message))
}

func element(a atom.Atom, class string, attrs ...html.Attribute) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	n.Attr = append(n.Attr, attrs...)
	return n
}

func textElement(a atom.Atom, text string, attrs ...html.Attribute) *html.Node {
	n := element(a, "", attrs...)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
