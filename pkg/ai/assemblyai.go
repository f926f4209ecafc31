package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/telehealth-assistant/pkg/config"
)

// AssemblyAIClient turns recorded voice commands into text
type AssemblyAIClient struct {
	sdk          *aai.Client
	languageCode string
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey, lang string
	if cfg != nil {
		apiKey = cfg.APIKey
		lang = cfg.LanguageCode
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	if lang == "" {
		lang = "en"
	}
	return newAssemblyAIClient(aai.NewClient(apiKey), lang)
}

func newAssemblyAIClient(sdk *aai.Client, languageCode string) *AssemblyAIClient {
	return &AssemblyAIClient{sdk: sdk, languageCode: languageCode}
}

// TranscribeURL transcribes the audio at audioURL and waits for the result
func (c *AssemblyAIClient) TranscribeURL(ctx context.Context, audioURL string) (string, error) {
	if strings.TrimSpace(audioURL) == "" {
		return "", fmt.Errorf("audio URL is required")
	}

	params := &aai.TranscriptOptionalParams{
		LanguageCode: aai.TranscriptLanguageCode(c.languageCode),
		Punctuate:    aai.Bool(true),
		FormatText:   aai.Bool(true),
	}

	transcript, err := c.sdk.Transcripts.TranscribeFromURL(ctx, strings.TrimSpace(audioURL), params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		return "", fmt.Errorf("assemblyai transcription error: %s", aai.ToString(transcript.Error))
	}
	return aai.ToString(transcript.Text), nil
}
