// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// wrapBreakpoints are the extra characters ansi.Wrap may break after.
const wrapBreakpoints = " ,.;-+|/"

var (
	markdownOnce   sync.Once
	markdownParser goldmark.Markdown
)

func parser() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// RenderMarkdown renders a card description as styled terminal text
// wrapped to width. Soft line breaks reflow; fenced code blocks are
// highlighted with chroma.
func RenderMarkdown(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := parser().Parser().Parse(text.NewReader(source))

	// The output always lands in the TUI; force a color profile so
	// rendering does not depend on whether stderr is a terminal.
	styles := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{
		source: source,
		theme:  theme,
		width:  width,
		styles: styles,
	}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

type markdownRenderer struct {
	source []byte
	theme  Theme
	width  int
	styles *lipgloss.Renderer

	output   strings.Builder
	inline   strings.Builder
	trailing int

	prefixes    []string
	prefixWidth int
	bullet      string

	bold, italic, strike int

	lists []listState
}

type listState struct {
	ordered bool
	next    int
	tight   bool
}

func (renderer *markdownRenderer) style() lipgloss.Style {
	return renderer.styles.NewStyle()
}

func (renderer *markdownRenderer) contentWidth() int {
	return max(renderer.width-renderer.prefixWidth, 10)
}

func (renderer *markdownRenderer) pushPrefix(prefix string) {
	renderer.prefixes = append(renderer.prefixes, prefix)
	renderer.prefixWidth += ansi.StringWidth(prefix)
}

func (renderer *markdownRenderer) popPrefix() {
	if len(renderer.prefixes) == 0 {
		return
	}
	last := renderer.prefixes[len(renderer.prefixes)-1]
	renderer.prefixes = renderer.prefixes[:len(renderer.prefixes)-1]
	renderer.prefixWidth -= ansi.StringWidth(last)
}

func (renderer *markdownRenderer) linePrefix() string {
	return strings.Join(renderer.prefixes, "")
}

// firstPrefix returns the pending list bullet for the first line of a
// list item, otherwise the normal prefix.
func (renderer *markdownRenderer) firstPrefix() string {
	if renderer.bullet != "" {
		bullet := renderer.bullet
		renderer.bullet = ""
		return bullet
	}
	return renderer.linePrefix()
}

func (renderer *markdownRenderer) write(s string) {
	if s == "" {
		return
	}
	renderer.output.WriteString(s)
	trimmed := strings.TrimRight(s, "\n")
	count := len(s) - len(trimmed)
	if trimmed == "" {
		renderer.trailing += count
	} else {
		renderer.trailing = count
	}
}

func (renderer *markdownRenderer) newline() {
	if renderer.trailing < 1 {
		renderer.write("\n")
	}
}

func (renderer *markdownRenderer) blankLine() {
	if renderer.output.Len() == 0 {
		return
	}
	for renderer.trailing < 2 {
		renderer.write("\n")
	}
}

func (renderer *markdownRenderer) tight() bool {
	return len(renderer.lists) > 0 && renderer.lists[len(renderer.lists)-1].tight
}

// emitBlock writes content line by line with prefixes applied.
func (renderer *markdownRenderer) emitBlock(content string) {
	for index, line := range strings.Split(content, "\n") {
		if index == 0 {
			renderer.write(renderer.firstPrefix() + line)
		} else {
			renderer.write("\n" + renderer.linePrefix() + line)
		}
	}
	renderer.newline()
}

func (renderer *markdownRenderer) flushParagraph() {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return
	}
	renderer.emitBlock(ansi.Wrap(content, renderer.contentWidth(), wrapBreakpoints))
	if !renderer.tight() {
		renderer.blankLine()
	}
}

func (renderer *markdownRenderer) styled(content string) string {
	style := renderer.style().Foreground(renderer.theme.NormalText)
	if renderer.bold > 0 {
		style = style.Bold(true)
	}
	if renderer.italic > 0 {
		style = style.Italic(true)
	}
	if renderer.strike > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (renderer *markdownRenderer) faint(content string) string {
	return renderer.style().Foreground(renderer.theme.FaintText).Render(content)
}

func (renderer *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.flushParagraph()
		}

	case ast.KindHeading:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.heading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			block := node.(*ast.FencedCodeBlock)
			renderer.code(renderer.lines(block), string(block.Language(renderer.source)))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindCodeBlock:
		if entering {
			renderer.code(renderer.lines(node), "")
		}
		return ast.WalkSkipChildren, nil

	case ast.KindBlockquote:
		if entering {
			renderer.pushPrefix(renderer.style().Foreground(renderer.theme.BorderColor).Render("│ "))
		} else {
			renderer.popPrefix()
			renderer.blankLine()
		}

	case ast.KindList:
		list := node.(*ast.List)
		if entering {
			renderer.lists = append(renderer.lists, listState{ordered: list.IsOrdered(), next: list.Start, tight: list.IsTight})
		} else {
			renderer.lists = renderer.lists[:len(renderer.lists)-1]
			if !renderer.tight() {
				renderer.blankLine()
			}
		}

	case ast.KindListItem:
		renderer.listItem(entering)

	case ast.KindThematicBreak:
		if entering {
			rule := strings.Repeat("─", renderer.contentWidth())
			renderer.blankLine()
			renderer.emitBlock(renderer.style().Foreground(renderer.theme.BorderColor).Render(rule))
			renderer.blankLine()
		}

	case ast.KindHTMLBlock:
		if entering {
			if stripped := strings.TrimSpace(stripTags(renderer.lines(node))); stripped != "" {
				renderer.emitBlock(renderer.faint(stripped))
				renderer.blankLine()
			}
		}
		return ast.WalkSkipChildren, nil

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			renderer.inline.WriteString(renderer.styled(string(textNode.Segment.Value(renderer.source))))
			if textNode.HardLineBreak() {
				renderer.inline.WriteString("\n")
			} else if textNode.SoftLineBreak() {
				renderer.inline.WriteString(" ")
			}
		}

	case ast.KindString:
		if entering {
			renderer.inline.WriteString(renderer.styled(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		counter := &renderer.italic
		if node.(*ast.Emphasis).Level >= 2 {
			counter = &renderer.bold
		}
		if entering {
			*counter++
		} else {
			*counter--
		}

	case extast.KindStrikethrough:
		if entering {
			renderer.strike++
		} else {
			renderer.strike--
		}

	case ast.KindCodeSpan:
		if entering {
			renderer.inline.WriteString(renderer.faint(string(node.Text(renderer.source))))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindLink:
		if entering {
			link := node.(*ast.Link)
			label := renderer.style().Foreground(renderer.theme.LinkForeground).Underline(true).
				Render(string(node.Text(renderer.source)))
			renderer.inline.WriteString(label)
			if destination := string(link.Destination); destination != "" && destination != string(node.Text(renderer.source)) {
				renderer.inline.WriteString(" " + renderer.faint("("+destination+")"))
			}
		}
		return ast.WalkSkipChildren, nil

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(renderer.source))
			renderer.inline.WriteString(renderer.style().Foreground(renderer.theme.LinkForeground).Render(url))
		}

	case ast.KindImage:
		if entering {
			image := node.(*ast.Image)
			renderer.inline.WriteString(renderer.faint("[image: " + string(node.Text(renderer.source)) + "] (" + string(image.Destination) + ")"))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindRawHTML:
		if entering {
			raw := node.(*ast.RawHTML)
			var html strings.Builder
			for index := range raw.Segments.Len() {
				segment := raw.Segments.At(index)
				html.Write(segment.Value(renderer.source))
			}
			renderer.inline.WriteString(renderer.faint(stripTags(html.String())))
		}

	case extast.KindTaskCheckBox:
		if entering {
			if node.(*extast.TaskCheckBox).IsChecked {
				renderer.inline.WriteString(renderer.style().Foreground(renderer.theme.LabelColor("green")).Render("[x]") + " ")
			} else {
				renderer.inline.WriteString(renderer.styled("[ ] "))
			}
		}

	case extast.KindTable:
		if entering {
			renderer.table(node)
		}
		return ast.WalkSkipChildren, nil
	}

	return ast.WalkContinue, nil
}

func (renderer *markdownRenderer) heading(heading *ast.Heading) {
	content := ansi.Strip(renderer.inline.String())
	renderer.inline.Reset()
	if content == "" {
		return
	}
	style := renderer.style().Bold(true).Foreground(renderer.theme.NormalText)
	if heading.Level <= 2 {
		style = style.Foreground(renderer.theme.Accent)
	}
	renderer.blankLine()
	renderer.emitBlock(ansi.Wrap(style.Render(content), renderer.contentWidth(), wrapBreakpoints))
	renderer.blankLine()
}

func (renderer *markdownRenderer) lines(node ast.Node) string {
	var builder strings.Builder
	lines := node.Lines()
	for index := range lines.Len() {
		segment := lines.At(index)
		builder.Write(segment.Value(renderer.source))
	}
	return builder.String()
}

func (renderer *markdownRenderer) code(source, language string) {
	highlighted := renderer.faint(strings.TrimRight(source, "\n"))
	if language != "" {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, source, language, "terminal256", "monokai"); err == nil {
			highlighted = strings.TrimRight(buffer.String(), "\n")
		}
	}
	renderer.blankLine()
	renderer.emitBlock(highlighted)
	renderer.blankLine()
}

func (renderer *markdownRenderer) listItem(entering bool) {
	if len(renderer.lists) == 0 {
		return
	}
	if !entering {
		renderer.popPrefix()
		if renderer.tight() {
			renderer.newline()
		} else {
			renderer.blankLine()
		}
		return
	}

	list := &renderer.lists[len(renderer.lists)-1]
	marker := "• "
	if list.ordered {
		marker = fmt.Sprintf("%d. ", list.next)
		list.next++
	}
	renderer.bullet = renderer.linePrefix() + renderer.style().Foreground(renderer.theme.Accent).Render(marker)
	renderer.pushPrefix(strings.Repeat(" ", ansi.StringWidth(marker)))
}

// table renders GFM tables as aligned columns separated by a thin bar.
// Cells that do not fit are truncated.
func (renderer *markdownRenderer) table(node ast.Node) {
	var rows [][]string
	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(string(cell.Text(renderer.source))))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}

	columns := 0
	for _, row := range rows {
		columns = max(columns, len(row))
	}
	widths := make([]int, columns)
	for _, row := range rows {
		for index, cell := range row {
			widths[index] = max(widths[index], ansi.StringWidth(cell))
		}
	}
	cellLimit := max((renderer.contentWidth()-3*(columns-1))/max(columns, 1), 3)

	separator := renderer.style().Foreground(renderer.theme.BorderColor).Render(" │ ")
	renderer.blankLine()
	for rowIndex, row := range rows {
		parts := make([]string, columns)
		for index := range columns {
			cell := ""
			if index < len(row) {
				cell = row[index]
			}
			width := min(widths[index], cellLimit)
			cell = ansi.Truncate(cell, width, "…")
			cell += strings.Repeat(" ", width-ansi.StringWidth(cell))
			if rowIndex == 0 {
				cell = renderer.style().Bold(true).Foreground(renderer.theme.NormalText).Render(cell)
			} else {
				cell = renderer.styled(cell)
			}
			parts[index] = cell
		}
		renderer.emitBlock(strings.Join(parts, separator))
	}
	renderer.blankLine()
}

func stripTags(html string) string {
	var result strings.Builder
	inTag := false
	for _, character := range html {
		switch {
		case character == '<':
			inTag = true
		case character == '>':
			inTag = false
		case !inTag:
			result.WriteRune(character)
		}
	}
	return result.String()
}
