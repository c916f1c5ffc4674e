package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/logger"

	"go.uber.org/zap"
)

const (
	MIMEPDF      = "application/pdf"
	MIMEDocx     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText     = "text/plain"
	MIMEMarkdown = "text/markdown"
	MIMEPNG      = "image/png"
	MIMEJPEG     = "image/jpeg"

	defaultMaxBytes = 50 << 20
)

const transcribePrompt = "Transcribe all readable text from the attached lecture material. " +
	"Return only the text content in reading order, without commentary."

var extensions = map[string]string{
	MIMEPDF:      "pdf",
	MIMEDocx:     "docx",
	MIMEText:     "txt",
	MIMEMarkdown: "md",
	MIMEPNG:      "png",
	MIMEJPEG:     "jpg",
}

// ExtensionForMIME maps a Content-Type header to a supported file extension.
func ExtensionForMIME(contentType string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.ToLower(contentType))
	}
	ext, ok := extensions[mediaType]
	return ext, ok
}

// HTTPTextExtractor downloads a file and converts it to plain text. Text and
// Word documents are parsed locally; PDFs and images go to the transcriber.
type HTTPTextExtractor struct {
	client      *http.Client
	transcriber domain.MediaTranscriber
	maxBytes    int64
}

func NewHTTPTextExtractor(client *http.Client, transcriber domain.MediaTranscriber) *HTTPTextExtractor {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &HTTPTextExtractor{client: client, transcriber: transcriber, maxBytes: defaultMaxBytes}
}

func (e *HTTPTextExtractor) Extract(ctx context.Context, sourceURL string) (*domain.ExtractedText, error) {
	l := logger.Get()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid material url: %v", err))
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError("material download", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUpstreamError("material download", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	ext, ok := ExtensionForMIME(contentType)
	if !ok {
		l.Warn("Rejected material with unsupported MIME type", zap.String("content_type", contentType))
		return nil, domain.NewUnsupportedMediaTypeError(contentType)
	}
	mimeType, _, _ := mime.ParseMediaType(contentType)

	data, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes+1))
	if err != nil {
		return nil, domain.NewUpstreamError("material download", err)
	}
	if int64(len(data)) > e.maxBytes {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("material exceeds %d bytes", e.maxBytes))
	}

	var text string
	switch ext {
	case "txt":
		text = string(data)
	case "md":
		text = StripMarkdown(string(data))
	case "docx":
		text, err = DocxText(data, e.maxBytes)
		if err != nil {
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) {
				return nil, domainErr
			}
			return nil, domain.NewInvalidInputError(fmt.Sprintf("unreadable docx: %v", err))
		}
	case "pdf", "png", "jpg":
		text, err = e.transcriber.Transcribe(ctx, mimeType, data, transcribePrompt)
		if err != nil {
			return nil, domain.NewLLMServiceError(err)
		}
	}

	l.Info("Material text extracted",
		zap.String("file_type", ext),
		zap.Int("bytes", len(data)),
		zap.Int("text_length", len(text)))
	return &domain.ExtractedText{Text: text, FileType: mimeType, Size: len(data)}, nil
}

var _ domain.TextExtractor = (*HTTPTextExtractor)(nil)
