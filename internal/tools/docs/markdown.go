package docs

import (
	"fmt"
	"io"

	md "github.com/nao1215/markdown"
)

// Markdown wraps the markdown package with Hugo front matter support.
type Markdown struct {
	md     *md.Markdown
	writer io.Writer
}

// NewMarkdown creates a new markdown builder writing to w.
func NewMarkdown(w io.Writer) *Markdown {
	return &Markdown{
		md:     md.NewMarkdown(w),
		writer: w,
	}
}

// FrontMatter represents Hugo front matter
type FrontMatter struct {
	Title       string
	Description string
	Weight      int
}

// HugoFrontMatter writes front matter directly to the writer. It must be
// called before any other content.
func (m *Markdown) HugoFrontMatter(fm FrontMatter) *Markdown {
	fmt.Fprintln(m.writer, "---")
	fmt.Fprintf(m.writer, "title: %q\n", fm.Title)
	if fm.Description != "" {
		fmt.Fprintf(m.writer, "description: %q\n", fm.Description)
	}
	fmt.Fprintf(m.writer, "weight: %d\n", fm.Weight)
	fmt.Fprintln(m.writer, "---")
	fmt.Fprintln(m.writer)
	return m
}

// H1 creates a level 1 header
func (m *Markdown) H1(text string) *Markdown {
	m.md.H1(text)
	return m
}

// H2 creates a level 2 header
func (m *Markdown) H2(text string) *Markdown {
	m.md.H2(text)
	return m
}

// H3 creates a level 3 header
func (m *Markdown) H3(text string) *Markdown {
	m.md.H3(text)
	return m
}

// PlainText adds plain text
func (m *Markdown) PlainText(text string) *Markdown {
	m.md.PlainText(text)
	return m
}

// PlainTextf adds formatted plain text
func (m *Markdown) PlainTextf(format string, args ...any) *Markdown {
	m.md.PlainTextf(format, args...)
	return m
}

// LF adds a line feed
func (m *Markdown) LF() *Markdown {
	m.md.LF()
	return m
}

// BulletList adds a bullet list
func (m *Markdown) BulletList(items ...string) *Markdown {
	m.md.BulletList(items...)
	return m
}

// Table adds a markdown table
func (m *Markdown) Table(headers []string, rows [][]string) *Markdown {
	m.md.Table(md.TableSet{
		Header: headers,
		Rows:   rows,
	})
	return m
}

// Build flushes the document to the writer.
func (m *Markdown) Build() error {
	return m.md.Build()
}

// Link formats a markdown link.
func Link(text, url string) string {
	return md.Link(text, url)
}

// Code formats inline code.
func Code(text string) string {
	return md.Code(text)
}

// Bold formats bold text.
func Bold(text string) string {
	return md.Bold(text)
}
