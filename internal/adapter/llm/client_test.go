package llm

import (
	"context"
	"errors"
	"testing"

	"quizcraft/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	reply    string
	err      error
	messages []llms.MessageContent
	opts     llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, o := range options {
		o(&f.opts)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestClient_Generate(t *testing.T) {
	model := &fakeModel{reply: `{"summary":"ok"}`}
	client := NewClient(model, 0.2)

	out, err := client.Generate(context.Background(), "summarize")
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)
	assert.Equal(t, 0.2, model.opts.Temperature)
	require.Len(t, model.messages, 1)
	assert.Equal(t, llms.TextContent{Text: "summarize"}, model.messages[0].Parts[0])
}

func TestClient_GenerateWrapsErrors(t *testing.T) {
	client := NewClient(&fakeModel{err: errors.New("boom")}, 0)
	_, err := client.Generate(context.Background(), "p")
	assert.ErrorContains(t, err, "LLM call failed")

	client = NewClient(&fakeModel{err: context.DeadlineExceeded}, 0)
	_, err = client.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorContains(t, err, "timed out")
}

func TestClient_TranscribeSendsBinaryThenPrompt(t *testing.T) {
	model := &fakeModel{reply: "page one text"}
	client := NewClient(model, 0)

	out, err := client.Transcribe(context.Background(), "image/png", []byte{0x89, 'P', 'N', 'G'}, "transcribe")
	require.NoError(t, err)
	assert.Equal(t, "page one text", out)

	require.Len(t, model.messages, 1)
	parts := model.messages[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, llms.BinaryPart("image/png", []byte{0x89, 'P', 'N', 'G'}), parts[0])
	assert.Equal(t, llms.TextPart("transcribe"), parts[1])
}

func TestNewModel_UnsupportedProvider(t *testing.T) {
	_, err := NewModel(config.LLMConfig{Provider: "bard"})
	assert.ErrorContains(t, err, "unsupported llm provider")
}
