package extractor_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quizcraft/internal/adapter/extractor"
	"quizcraft/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriber struct {
	text     string
	err      error
	mimeType string
	calls    int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, mimeType string, data []byte, prompt string) (string, error) {
	f.calls++
	f.mimeType = mimeType
	return f.text, f.err
}

func serve(t *testing.T, contentType string, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func docxBytes(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_PlainText(t *testing.T) {
	srv := serve(t, "text/plain; charset=utf-8", []byte("Photosynthesis converts light to energy."))
	transcriber := &fakeTranscriber{}
	e := extractor.NewHTTPTextExtractor(srv.Client(), transcriber)

	out, err := e.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis converts light to energy.", out.Text)
	assert.Equal(t, extractor.MIMEText, out.FileType)
	assert.Equal(t, 0, transcriber.calls)
}

func TestExtract_Markdown(t *testing.T) {
	srv := serve(t, extractor.MIMEMarkdown, []byte("# Cells\n\n**Mitochondria** make [ATP](http://x).\n"))
	e := extractor.NewHTTPTextExtractor(srv.Client(), &fakeTranscriber{})

	out, err := e.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Cells\n\nMitochondria make ATP.", out.Text)
}

func TestExtract_Docx(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
<w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>
</w:body>
</w:document>`
	srv := serve(t, extractor.MIMEDocx, docxBytes(t, doc))
	e := extractor.NewHTTPTextExtractor(srv.Client(), &fakeTranscriber{})

	out, err := e.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph\nSecond paragraph", out.Text)
}

func TestExtract_PDFUsesTranscriber(t *testing.T) {
	srv := serve(t, extractor.MIMEPDF, []byte("%PDF-1.4"))
	transcriber := &fakeTranscriber{text: "transcribed"}
	e := extractor.NewHTTPTextExtractor(srv.Client(), transcriber)

	out, err := e.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "transcribed", out.Text)
	assert.Equal(t, 1, transcriber.calls)
	assert.Equal(t, extractor.MIMEPDF, transcriber.mimeType)
}

func TestExtract_TranscriberFailure(t *testing.T) {
	srv := serve(t, extractor.MIMEPNG, []byte{0x89, 'P', 'N', 'G'})
	e := extractor.NewHTTPTextExtractor(srv.Client(), &fakeTranscriber{err: errors.New("quota")})

	_, err := e.Extract(context.Background(), srv.URL)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
}

func TestExtract_UnsupportedMediaType(t *testing.T) {
	srv := serve(t, "application/zip", []byte("PK"))
	e := extractor.NewHTTPTextExtractor(srv.Client(), &fakeTranscriber{})

	_, err := e.Extract(context.Background(), srv.URL)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnsupportedMediaType, domainErr.Code)
}

func TestExtract_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	e := extractor.NewHTTPTextExtractor(srv.Client(), &fakeTranscriber{})

	_, err := e.Extract(context.Background(), srv.URL)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUpstream, domainErr.Code)
}

func TestExtensionForMIME(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
		ok          bool
	}{
		{"application/pdf", "pdf", true},
		{"text/plain; charset=utf-8", "txt", true},
		{"text/markdown", "md", true},
		{"image/png", "png", true},
		{"image/jpeg", "jpg", true},
		{extractor.MIMEDocx, "docx", true},
		{"image/gif", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			got, ok := extractor.ExtensionForMIME(tt.contentType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocxText_RejectsOversizedDocument(t *testing.T) {
	paragraph := "<w:p><w:r><w:t>" + strings.Repeat("a", 1024) + "</w:t></w:r></w:p>"
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		strings.Repeat(paragraph, 64) + `</w:body></w:document>`
	data := docxBytes(t, doc)
	require.Less(t, len(data), 4096)

	_, err := extractor.DocxText(data, 4096)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	assert.Contains(t, domainErr.Message, "4096")

	text, err := extractor.DocxText(data, int64(len(doc)))
	require.NoError(t, err)
	assert.Len(t, text, 64*1024+63)
}

func TestStripMarkdown_Emphasis(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"snake case and blanks untouched", "Call my_var_name and the ____ blank, a_b", "Call my_var_name and the ____ blank, a_b"},
		{"underscore emphasis", "An _important_ and __bold__ word", "An important and bold word"},
		{"asterisk emphasis", "An *important* and **bold** word", "An important and bold word"},
		{"code span keeps identifiers", "Use `max_len` here", "Use max_len here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.StripMarkdown(tt.in))
		})
	}
}
