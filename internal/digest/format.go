// Package digest renders the accepted papers and delivers the daily digest.
package digest

import (
	"fmt"
	"strings"

	"github.com/matsen/axd/internal/ansi"
	"github.com/matsen/axd/internal/paper"
)

// RuleWidth is the length of the line separating papers.
const RuleWidth = 80

const indent = "      "

// FormatPaper formats one accepted paper under its selection index.
func FormatPaper(i int, p paper.Paper, pal ansi.Palette) string {
	var sb strings.Builder

	sb.WriteString(pal.Wrap(padLeft(fmt.Sprint(i), 5), pal.Bold, pal.Underline, pal.Blue))
	sb.WriteString(" ")
	sb.WriteString(pal.Wrap(p.Title, pal.Italic, pal.White))
	sb.WriteString(pal.Wrap(" ("+p.ID+")", pal.Red))
	sb.WriteString("\n")

	sb.WriteString(indent + pal.Wrap("Authors: "+p.Authors, pal.Black) + "\n")
	sb.WriteString(indent + pal.Wrap("Subjects: "+p.Categories, pal.Black) + "\n")
	sb.WriteString(indent + pal.Wrap("Comments: "+p.Comments, pal.Black) + "\n\n")
	sb.WriteString(pal.Wrap(p.Abstract, pal.Blue) + "\n\n")
	sb.WriteString(pal.Wrap(strings.Repeat("-", RuleWidth), pal.Green) + "\n")

	return sb.String()
}

// FormatPapers formats the accepted papers in selection order.
func FormatPapers(papers []paper.Paper, pal ansi.Palette) string {
	var sb strings.Builder
	for i, p := range papers {
		sb.WriteString("\n")
		sb.WriteString(FormatPaper(i, p, pal))
	}
	return sb.String()
}

// padLeft pads s with leading spaces to width.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
