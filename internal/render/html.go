package render

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hyperifyio/heurisko/internal/search"
)

// HTML writes results as a fragment of nested divs, one per result, with
// matched words wrapped in <mark>. Text is escaped by the renderer.
func HTML(w io.Writer, results []search.QueryResult) error {
	root := element(atom.Div, html.Attribute{Key: "class", Val: "results"})
	for _, r := range results {
		div := element(atom.Div,
			html.Attribute{Key: "class", Val: "result"},
			html.Attribute{Key: "data-transcript", Val: r.TranscriptID},
		)
		for i, word := range r.Words {
			if i > 0 {
				div.AppendChild(textNode(" "))
			}
			if !word.Matched {
				div.AppendChild(textNode(word.Text))
				continue
			}
			mark := element(atom.Mark)
			mark.AppendChild(textNode(word.Text))
			div.AppendChild(mark)
		}
		root.AppendChild(div)
	}
	return html.Render(w, root)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
