package util

import (
	"regexp"
	"strings"
)

// Exercise descriptions come out of the course's LaTeX sources. The bot sends
// Telegram MarkdownV2, so the common constructs are rewritten and everything
// else is escaped.

var (
	reSubsection = regexp.MustCompile(`\\subsection\*\{(.*?)\}`)
	reItemize    = regexp.MustCompile(`\\(begin|end)\{itemize\}\n?`)
	reItem       = regexp.MustCompile(`\\item (.*?)\\`)
	reTexttt     = regexp.MustCompile(`\\texttt\{(.*?)\}`)
	reTextttBare = regexp.MustCompile(`texttt\{(.*?)\}`)
	reVerb       = regexp.MustCompile(`\\verb\|(.*?)\|`)
	reExample    = regexp.MustCompile(`\\(begin|end)\{example\}`)

	// Every character MarkdownV2 reserves.
	markdownV2Escaper = strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]",
		"(", "\\(", ")", "\\)", "~", "\\~", "`", "\\`",
		">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
		"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}",
		".", "\\.", "!", "\\!",
	)

	// Same set minus '*' and '`', which the LaTeX conversion emits as
	// bold/inline-code entities that must stay live.
	entityPreservingEscaper = strings.NewReplacer(
		"_", "\\_", "[", "\\[", "]", "\\]",
		"(", "\\(", ")", "\\)", "~", "\\~",
		">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
		"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}",
		".", "\\.", "!", "\\!",
	)
)

// EscapeMarkdownV2 escapes every character Telegram MarkdownV2 reserves.
func EscapeMarkdownV2(text string) string {
	return markdownV2Escaper.Replace(text)
}

// LatexToMarkdownV2 rewrites the LaTeX subset used in the exercise corpus into
// Telegram MarkdownV2. Unhandled commands survive as escaped literal text;
// fenced code blocks are passed through verbatim.
func LatexToMarkdownV2(latex string) string {
	out := reSubsection.ReplaceAllString(latex, "\n**$1**")
	out = reItemize.ReplaceAllString(out, "")
	out = reItem.ReplaceAllString(out, "* $1")
	out = reTexttt.ReplaceAllString(out, "`$1`")
	out = reTextttBare.ReplaceAllString(out, "`$1`")
	out = reVerb.ReplaceAllString(out, "`$1`")
	out = reExample.ReplaceAllString(out, "```")
	out = strings.ReplaceAll(out, "\\\\", "\n")

	return formatSegments(out, entityPreservingEscaper)
}

// FormatWithCodeBlocks escapes plain text for MarkdownV2 while leaving fenced
// code blocks intact. Used for solutions, which embed ```-fenced code.
func FormatWithCodeBlocks(text string) string {
	return formatSegments(text, markdownV2Escaper)
}

func formatSegments(text string, escaper *strings.Replacer) string {
	parts := strings.Split(text, "```")
	var b strings.Builder

	for i, part := range parts {
		if i%2 == 0 {
			b.WriteString(escaper.Replace(part))
		} else {
			b.WriteString("```")
			b.WriteString(part)
			b.WriteString("```")
		}
	}

	return b.String()
}
