package compiler

import (
	"fmt"
	"strings"

	"surveygen/internal/rows"
)

// msgPrefix marks layout rows that carry application copy rather than
// questions. Their titles are rendered to HTML and exported as a flat
// id -> markup map for the host application.
const msgPrefix = "msg_"

// Inline messages are injected into inline contexts (buttons, chart
// labels, the page title). Block-level paragraph wrapping would break the
// host layout there, so the outer <p> element is stripped and escaped
// ampersands are restored for these ids. Button and chart copy comes in
// families (msg_button_next, msg_chart_label, ...) and matches by prefix;
// the title and the empty-state message are single ids and match exactly,
// so an unrelated id like msg_title_page2 keeps its paragraph markup.
var (
	inlineMessagePrefixes = []string{"msg_button", "msg_chart"}
	inlineMessageIDs      = []string{"msg_title", "msg_no_completed_checks"}
)

// Messages renders every message row of the table into HTML for the given
// language. Rows without a msg_ prefix are ignored. The table is the full
// normalized layout; message rows are shared across sessions.
func (c *Compiler) Messages(table []rows.Row, language string) (map[string]string, error) {
	out := make(map[string]string)
	for _, r := range table {
		if !strings.HasPrefix(r.ID, msgPrefix) {
			continue
		}
		html, err := c.renderMessage(r.ID, r.Title[language])
		if err != nil {
			return nil, err
		}
		// Sessions repeat shared copy; the last occurrence wins, matching
		// how a later layout row overrides an earlier one.
		out[r.ID] = html
	}
	return out, nil
}

func (c *Compiler) renderMessage(id, text string) (string, error) {
	html, err := c.deps.Markdown.Render(text)
	if err != nil {
		return "", fmt.Errorf("compiler: render message %s: %w", id, err)
	}
	if inlineMessage(id) {
		html = unwrapParagraph(html)
		// Inline copy is placed outside an HTML context by the host, so
		// ampersands must survive the round trip through markdown. Block
		// copy stays escaped.
		html = strings.ReplaceAll(html, "&amp;", "&")
	}
	return html, nil
}

func inlineMessage(id string) bool {
	for _, p := range inlineMessagePrefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	for _, exact := range inlineMessageIDs {
		if id == exact {
			return true
		}
	}
	return false
}

// unwrapParagraph removes a single outer <p>...</p> wrapper when the markup
// is exactly one paragraph. Multi-paragraph markup is left alone.
func unwrapParagraph(html string) string {
	inner, ok := strings.CutPrefix(html, "<p>")
	if !ok {
		return html
	}
	inner, ok = strings.CutSuffix(inner, "</p>")
	if !ok {
		return html
	}
	if strings.Contains(inner, "<p>") {
		return html
	}
	return inner
}
