package view

import (
	"strings"
	"testing"

	"github.com/rbhz/dictionary-lookup/app/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func children(n *html.Node) []*html.Node {
	var res []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		res = append(res, c)
	}
	return res
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func getEntry() lookup.Entry {
	return lookup.Entry{
		Word: "run",
		Phonetics: []lookup.Phonetic{
			{Text: "/rʌn/"},
			{Text: "/ɹʌn/", AudioURL: "https://example.com/run-us.mp3"},
		},
		Meanings: []lookup.Meaning{
			{
				PartOfSpeech: "verb",
				Definitions: []lookup.Definition{
					{Text: "To move swiftly.", Example: "I run every day."},
					{Text: "To flee."},
				},
			},
			{
				PartOfSpeech: "noun",
				Definitions:  []lookup.Definition{{Text: "An act of running."}},
			},
		},
	}
}

func TestBuild(t *testing.T) {
	t.Run("container layout", func(t *testing.T) {
		container := Build(getEntry())
		assert.Equal(t, atom.Div, container.DataAtom)
		parts := children(container)
		require.Len(t, parts, 3)
		assert.Equal(t, atom.H3, parts[0].DataAtom)
		assert.Equal(t, "run", textOf(parts[0]))
		assert.Equal(t, ClassPhonetics, attr(parts[1], "class"))
		assert.Equal(t, ClassMeanings, attr(parts[2], "class"))
	})
	t.Run("meanings order", func(t *testing.T) {
		meanings := children(children(Build(getEntry()))[2])
		require.Len(t, meanings, 2)
		for idx, pos := range []string{"verb", "noun"} {
			group := children(meanings[idx])
			require.Len(t, group, 2)
			assert.Equal(t, atom.Li, group[0].DataAtom)
			assert.Equal(t, pos, textOf(group[0]))
			assert.Equal(t, atom.Ol, group[1].DataAtom)
		}
	})
	t.Run("definitions", func(t *testing.T) {
		meanings := children(children(Build(getEntry()))[2])
		definitions := children(children(meanings[0])[1])
		require.Len(t, definitions, 2)

		withExample := children(definitions[0])
		require.Len(t, withExample, 2)
		assert.Equal(t, "Definition: To move swiftly.", textOf(withExample[0]))
		assert.Equal(t, "Example: I run every day.", textOf(withExample[1]))
		assert.Equal(t, ClassSeparated, attr(definitions[0], "class"))

		withoutExample := children(definitions[1])
		require.Len(t, withoutExample, 1)
		assert.Equal(t, "Definition: To flee.", textOf(withoutExample[0]))
		assert.Equal(t, ClassSeparated, attr(definitions[1], "class"))
	})
	t.Run("phonetics", func(t *testing.T) {
		phonetics := children(children(Build(getEntry()))[1])
		require.Len(t, phonetics, 3)
		assert.Equal(t, atom.Span, phonetics[0].DataAtom)
		assert.Equal(t, "/rʌn/", textOf(phonetics[0]))
		assert.Equal(t, atom.Button, phonetics[1].DataAtom)
		assert.Equal(t, "/ɹʌn/", textOf(phonetics[1]))
		assert.Equal(t, playAudio, attr(phonetics[1], "onclick"))
		assert.Equal(t, atom.Audio, phonetics[2].DataAtom)
		assert.Equal(t, "https://example.com/run-us.mp3", attr(phonetics[2], "src"))
	})
	t.Run("empty entry", func(t *testing.T) {
		parts := children(Build(lookup.Entry{Word: "test"}))
		require.Len(t, parts, 3)
		assert.Empty(t, children(parts[1]))
		assert.Empty(t, children(parts[2]))
	})
}

func TestRender(t *testing.T) {
	t.Run("escaped text", func(t *testing.T) {
		markup, err := Render(Build(lookup.Entry{
			Word: "<b>",
			Meanings: []lookup.Meaning{
				{PartOfSpeech: "noun", Definitions: []lookup.Definition{{Text: "Tom & Jerry"}}},
			},
		}))
		require.NoError(t, err)
		assert.Contains(t, markup, "<h3>&lt;b&gt;</h3>")
		assert.Contains(t, markup, "Definition: Tom &amp; Jerry")
	})
	t.Run("error", func(t *testing.T) {
		markup, err := HTML{}.Error("No Definitions Found")
		require.NoError(t, err)
		assert.Equal(t, "ERROR: No Definitions Found", markup)
	})
	t.Run("entry", func(t *testing.T) {
		markup, err := HTML{}.Entry(getEntry())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(markup, "<div><h3>run</h3>"))
		assert.Contains(t, markup, `<span>/rʌn/</span>`)
		assert.Contains(t, markup, `<audio src="https://example.com/run-us.mp3" preload="none"></audio>`)
		assert.Contains(t, markup, `<ul class="separated"><li>Definition: To flee.</li></ul>`)
	})
}
