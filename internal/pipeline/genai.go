package pipeline

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GeminiSessionFactory creates chat sessions against the Gemini API. One
// chat is created per pipeline run and reused for every line in it.
type GeminiSessionFactory struct {
	// Model overrides DefaultModelName when set.
	Model string
}

// Availability reports ready only when an API key is configured. The genai
// client resolves the key from the environment, so this mirrors what
// NewSession would find.
func (f *GeminiSessionFactory) Availability(ctx context.Context) Availability {
	if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
		return AvailabilityNotReady
	}
	return AvailabilityReady
}

// NewSession creates a genai client and opens a chat on the configured model.
func (f *GeminiSessionFactory) NewSession(ctx context.Context) (Session, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("GeminiSessionFactory: create genai client: %w", err)
	}

	model := f.Model
	if model == "" {
		model = DefaultModelName
	}

	chat, err := client.Chats.Create(ctx, model, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("GeminiSessionFactory: create chat: %w", err)
	}

	return &geminiSession{chat: chat}, nil
}

type geminiSession struct {
	chat *genai.Chat
}

func (s *geminiSession) Prompt(ctx context.Context, message string) (string, error) {
	if s.chat == nil {
		return "", fmt.Errorf("geminiSession: session already closed")
	}

	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("geminiSession: send message: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("geminiSession: empty response from model")
	}
	return text, nil
}

func (s *geminiSession) Close() error {
	// The genai client holds no connection state that needs shutdown;
	// dropping the chat is enough to release the conversation.
	s.chat = nil
	return nil
}
