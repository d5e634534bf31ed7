package tui

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	renderhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	codeBlockRegex = regexp.MustCompile(`(?s)<pre><code(?: class="language-([a-zA-Z0-9]+)")?>(.*?)</code></pre>`)
	headingRegex   = regexp.MustCompile(`<h[1-6][^>]*>(.*?)</h[1-6]>`)
	strongRegex    = regexp.MustCompile(`<strong>(.*?)</strong>`)
	emRegex        = regexp.MustCompile(`<em>(.*?)</em>`)
	liRegex        = regexp.MustCompile(`<li>(.*?)</li>`)
	inlineCodeRe   = regexp.MustCompile(`<code>([^<]+)</code>`)
	htmlTagRegex   = regexp.MustCompile(`<[^>]+>`)
	multiNewline   = regexp.MustCompile(`\n{3,}`)
)

// MarkdownRenderer turns assistant markdown into styled terminal text with
// syntax-highlighted code blocks.
type MarkdownRenderer struct {
	md        goldmark.Markdown
	formatter chroma.Formatter
	style     *chroma.Style

	heading lipgloss.Style
	strong  lipgloss.Style
	em      lipgloss.Style
	code    lipgloss.Style
}

func NewMarkdownRenderer(theme Theme) *MarkdownRenderer {
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(renderhtml.WithHardWraps()),
		),
		formatter: formatters.Get("terminal256"),
		style:     style,
		heading:   lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		strong:    lipgloss.NewStyle().Bold(true),
		em:        lipgloss.NewStyle().Italic(true),
		code:      lipgloss.NewStyle().Foreground(theme.Gold),
	}
}

// Render converts markdown to terminal text wrapped to width.
func (r *MarkdownRenderer) Render(content string, width int) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	out := buf.String()

	out = codeBlockRegex.ReplaceAllStringFunc(out, func(block string) string {
		parts := codeBlockRegex.FindStringSubmatch(block)
		return "\n" + r.highlight(html.UnescapeString(parts[2]), parts[1]) + "\n"
	})
	out = headingRegex.ReplaceAllStringFunc(out, func(h string) string {
		inner := headingRegex.FindStringSubmatch(h)[1]
		return "\n" + r.heading.Render(htmlTagRegex.ReplaceAllString(inner, "")) + "\n"
	})
	out = strongRegex.ReplaceAllStringFunc(out, func(s string) string {
		return r.strong.Render(strongRegex.FindStringSubmatch(s)[1])
	})
	out = emRegex.ReplaceAllStringFunc(out, func(s string) string {
		return r.em.Render(emRegex.FindStringSubmatch(s)[1])
	})
	out = inlineCodeRe.ReplaceAllStringFunc(out, func(s string) string {
		return r.code.Render(html.UnescapeString(inlineCodeRe.FindStringSubmatch(s)[1]))
	})
	out = liRegex.ReplaceAllString(out, "  • $1\n")
	out = strings.ReplaceAll(out, "<br>", "\n")
	out = strings.ReplaceAll(out, "<br/>", "\n")
	out = htmlTagRegex.ReplaceAllString(out, "")
	out = html.UnescapeString(out)
	out = multiNewline.ReplaceAllString(out, "\n\n")
	out = strings.TrimSpace(out)

	if width > 0 {
		out = lipgloss.NewStyle().Width(width).Render(out)
	}
	return out
}

func (r *MarkdownRenderer) highlight(code, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var b strings.Builder
	if err := r.formatter.Format(&b, r.style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(b.String(), "\n")
}
