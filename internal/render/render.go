// Package render converts generated guide markdown into the HTML
// subset Telegram accepts (b, i, s, code, pre, a, blockquote). Anything
// outside that subset is flattened to escaped plain text; block
// structure is expressed with newlines because Telegram has no p or br.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// Escape escapes user-supplied text for inclusion in a Telegram HTML
// message body.
func Escape(s string) string {
	return html.EscapeString(s)
}

// GuideHTML renders markdown to Telegram HTML.
func GuideHTML(md []byte) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse(md)

	r := &telegramRenderer{}
	ast.WalkFunc(doc, r.walk)

	out := r.sb.String()
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(out)
}

type telegramRenderer struct {
	sb strings.Builder

	// counters carries one slot per open list: the next ordinal for
	// ordered lists, 0 for bullet lists.
	counters []int
}

func (r *telegramRenderer) walk(node ast.Node, entering bool) ast.WalkStatus {
	switch n := node.(type) {
	case *ast.Heading:
		if entering {
			r.sb.WriteString("<b>")
		} else {
			r.sb.WriteString("</b>\n\n")
		}
	case *ast.Paragraph:
		if !entering {
			if len(r.counters) > 0 {
				r.sb.WriteString("\n")
			} else {
				r.sb.WriteString("\n\n")
			}
		}
	case *ast.Text:
		if entering {
			r.sb.WriteString(Escape(string(n.Literal)))
		}
	case *ast.Softbreak, *ast.Hardbreak:
		if entering {
			r.sb.WriteString("\n")
		}
	case *ast.Emph:
		r.tag("<i>", "</i>", entering)
	case *ast.Strong:
		r.tag("<b>", "</b>", entering)
	case *ast.Del:
		r.tag("<s>", "</s>", entering)
	case *ast.Code:
		if entering {
			r.sb.WriteString("<code>")
			r.sb.WriteString(Escape(string(n.Literal)))
			r.sb.WriteString("</code>")
		}
	case *ast.CodeBlock:
		if entering {
			r.sb.WriteString("<pre>")
			r.sb.WriteString(Escape(strings.TrimRight(string(n.Literal), "\n")))
			r.sb.WriteString("</pre>\n\n")
		}
	case *ast.Link:
		if entering {
			fmt.Fprintf(&r.sb, "<a href=%q>", string(n.Destination))
		} else {
			r.sb.WriteString("</a>")
		}
	case *ast.BlockQuote:
		r.tag("<blockquote>", "</blockquote>\n\n", entering)
	case *ast.List:
		if entering {
			start := 0
			if n.ListFlags&ast.ListTypeOrdered != 0 {
				start = 1
			}
			r.counters = append(r.counters, start)
		} else {
			r.counters = r.counters[:len(r.counters)-1]
			if len(r.counters) == 0 {
				r.sb.WriteString("\n")
			}
		}
	case *ast.ListItem:
		if entering {
			depth := len(r.counters) - 1
			r.sb.WriteString(strings.Repeat("  ", depth))
			if c := r.counters[depth]; c > 0 {
				fmt.Fprintf(&r.sb, "%d. ", c)
				r.counters[depth]++
			} else {
				r.sb.WriteString("• ")
			}
		}
	case *ast.HorizontalRule:
		if entering {
			r.sb.WriteString("\n")
		}
	case *ast.HTMLBlock, *ast.HTMLSpan:
		// Raw HTML from the provider is untrusted; flatten it.
		if entering {
			r.sb.WriteString(Escape(string(n.AsLeaf().Literal)))
		}
	}
	return ast.GoToNext
}

func (r *telegramRenderer) tag(open, close string, entering bool) {
	if entering {
		r.sb.WriteString(open)
	} else {
		r.sb.WriteString(close)
	}
}
