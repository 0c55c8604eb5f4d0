package extract

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var xmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// DOCX extracts paragraph text in document order, one paragraph per line.
func DOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return flattenDocxContent(doc.Editable().GetContent()), nil
}

// flattenDocxContent turns the WordprocessingML body into plain text. Each
// closed paragraph element becomes one output line; all remaining markup is
// stripped and entities are unescaped.
func flattenDocxContent(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	lines := strings.Split(content, "\n")
	var sb strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
