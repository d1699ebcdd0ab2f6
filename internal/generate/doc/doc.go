// Package doc turns the HTML documentation fragments of service models into
// plain text suitable for Go comments.
package doc

import (
	"strings"

	"golang.org/x/net/html"
)

// Width is the maximum length of a produced line, not counting the comment
// marker.
const Width = 77

type kind int

const (
	kindText kind = iota
	kindBullet
	kindPre
)

type paragraph struct {
	kind  kind
	depth int
	text  strings.Builder
}

type converter struct {
	paragraphs []*paragraph
	current    *paragraph
	listDepth  int
	inPre      bool
	skip       int
	href       []string
}

// Lines converts an HTML fragment into wrapped lines. Paragraphs are separated
// by an empty line. An empty document yields no lines.
func Lines(fragment string) []string {
	c := &converter{}
	z := html.NewTokenizer(strings.NewReader(fragment))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}

		switch tt {
		case html.TextToken:
			if c.skip == 0 {
				c.write(string(z.Text()))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			c.start(string(name), hasAttr, z, tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			name, _ := z.TagName()
			c.end(string(name))
		}
	}
	c.flush()

	return c.render()
}

// Text is Lines joined with newlines.
func Text(fragment string) string {
	return strings.Join(Lines(fragment), "\n")
}

func (c *converter) start(tag string, hasAttr bool, z *html.Tokenizer, selfClosing bool) {
	switch tag {
	case "fullname":
		if !selfClosing {
			c.skip++
		}
	case "p", "div":
		if c.inBullet() {
			return
		}
		c.flush()
	case "br":
		c.flush()
	case "ul", "ol":
		c.flush()
		c.listDepth++
	case "li":
		c.flush()
		c.current = &paragraph{kind: kindBullet, depth: c.listDepth}
	case "pre":
		c.flush()
		c.inPre = true
		c.current = &paragraph{kind: kindPre}
	case "a":
		href := ""
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			if string(key) == "href" {
				href = strings.TrimSpace(string(val))
			}
		}
		if !selfClosing {
			c.href = append(c.href, href)
		}
	}
}

func (c *converter) end(tag string) {
	switch tag {
	case "fullname":
		if c.skip > 0 {
			c.skip--
		}
	case "p", "div":
		if !c.inBullet() {
			c.flush()
		}
	case "li":
		c.flush()
	case "ul", "ol":
		c.flush()
		if c.listDepth > 0 {
			c.listDepth--
		}
	case "pre":
		c.flush()
		c.inPre = false
	case "a":
		if len(c.href) == 0 {
			return
		}
		href := c.href[len(c.href)-1]
		c.href = c.href[:len(c.href)-1]
		if href != "" && c.current != nil && !strings.HasSuffix(strings.TrimSpace(c.current.text.String()), href) {
			c.write(" (" + href + ")")
		}
	}
}

// inBullet reports whether paragraphs are currently merged into a list item.
func (c *converter) inBullet() bool {
	return c.current != nil && c.current.kind == kindBullet
}

func (c *converter) write(s string) {
	if c.current == nil {
		k := kindText
		if c.inPre {
			k = kindPre
		}
		c.current = &paragraph{kind: k, depth: c.listDepth}
	}
	c.current.text.WriteString(s)
}

func (c *converter) flush() {
	if c.current == nil {
		return
	}
	if strings.TrimSpace(c.current.text.String()) != "" {
		c.paragraphs = append(c.paragraphs, c.current)
	}
	c.current = nil
}

func (c *converter) render() []string {
	var lines []string

	for i, p := range c.paragraphs {
		if i > 0 && !(p.kind == kindBullet && c.paragraphs[i-1].kind == kindBullet) {
			lines = append(lines, "")
		}

		switch p.kind {
		case kindPre:
			for _, l := range strings.Split(strings.Trim(p.text.String(), "\n"), "\n") {
				lines = append(lines, strings.TrimRight("    "+l, " \t"))
			}
		case kindBullet:
			indent := strings.Repeat("  ", p.depth-1)
			lines = append(lines, wrap(p.text.String(), indent+"  - ", indent+"    ")...)
		default:
			lines = append(lines, wrap(p.text.String(), "", "")...)
		}
	}

	return lines
}

// wrap splits text into words and fills lines up to Width.
func wrap(text, first, rest string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := first + words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > Width {
			lines = append(lines, line)
			line = rest + w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
