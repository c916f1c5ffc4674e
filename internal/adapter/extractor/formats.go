package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"quizcraft/internal/domain"
)

var markdownRules = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile("(?s)```.*?\n(.*?)```"), "$1"},
	{regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`), ""},
	{regexp.MustCompile(`(?m)^\s{0,3}>\s?`), ""},
	{regexp.MustCompile(`(?m)^\s*([-*_]\s*){3,}$`), ""},
	{regexp.MustCompile(`(?m)^(\s*)[-*+]\s+`), "$1"},
	{regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "$1"},
	{regexp.MustCompile(`\b__([^_\n]+)__\b`), "$1"},
	{regexp.MustCompile(`\*([^*\n]+)\*`), "$1"},
	// Underscore emphasis only at word boundaries so snake_case survives.
	{regexp.MustCompile(`\b_([^_\n]+)_\b`), "$1"},
	{regexp.MustCompile("`([^`]+)`"), "$1"},
	{regexp.MustCompile(`~~(.+?)~~`), "$1"},
	{regexp.MustCompile(`<[^>]+>`), ""},
}

// StripMarkdown removes markdown syntax and keeps the readable text.
func StripMarkdown(md string) string {
	out := md
	for _, rule := range markdownRules {
		out = rule.pattern.ReplaceAllString(out, rule.replace)
	}
	return strings.TrimSpace(out)
}

// DocxText returns the paragraph text of a .docx file, one paragraph per line.
// The decompressed document.xml may not exceed maxBytes.
func DocxText(data []byte, maxBytes int64) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}

	var document *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("word/document.xml not found")
	}
	if document.UncompressedSize64 > uint64(maxBytes) {
		return "", documentTooLarge(maxBytes)
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	// The header size is not trusted; the stream is capped as well.
	xmlData, err := io.ReadAll(io.LimitReader(rc, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read document.xml: %w", err)
	}
	if int64(len(xmlData)) > maxBytes {
		return "", documentTooLarge(maxBytes)
	}

	return wordprocessingText(bytes.NewReader(xmlData))
}

func documentTooLarge(maxBytes int64) *domain.DomainError {
	return domain.NewInvalidInputError(fmt.Sprintf("docx document exceeds %d bytes when decompressed", maxBytes))
}

func wordprocessingText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		b         strings.Builder
		paragraph strings.Builder
		inText    bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				paragraph.WriteString("\t")
			case "br", "cr":
				paragraph.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString(paragraph.String())
				b.WriteString("\n")
				paragraph.Reset()
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}
	b.WriteString(paragraph.String())
	return strings.TrimSpace(b.String()), nil
}
