package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/SeongukCho/SeSAC-Diary/config"
)

// Classifier produces a coarse emotion label for a piece of text.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// emotionLabels is the closed label set the classifier may answer with.
var emotionLabels = map[string]bool{
	"joy":      true,
	"sadness":  true,
	"anger":    true,
	"fear":     true,
	"surprise": true,
	"neutral":  true,
}

const (
	classifyTimeout = 10 * time.Second
	cacheTTL        = 24 * time.Hour
)

// EmotionClassifier calls an OpenAI-compatible model and caches results in
// Redis keyed by a content hash, so re-saving unchanged text is free.
type EmotionClassifier struct {
	llm   llms.Model
	cache *redis.Client // nil disables caching
}

// NewEmotionClassifier builds the production classifier client.
func NewEmotionClassifier(apiKey, apiEndpoint, model string, cache *redis.Client) (*EmotionClassifier, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(apiEndpoint),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier client: %w", err)
	}

	return &EmotionClassifier{llm: llm, cache: cache}, nil
}

// Classify returns one label from the emotion set for the given text.
func (ec *EmotionClassifier) Classify(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "neutral", nil
	}

	key := cacheKey(text)
	if ec.cache != nil {
		if label, err := ec.cache.Get(ctx, key).Result(); err == nil && emotionLabels[label] {
			return label, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Classify the dominant emotion of the following diary entry. "+
			"Answer with exactly one word from this list: joy, sadness, anger, fear, surprise, neutral.\n\n%s",
		text,
	)

	completion, err := llms.GenerateFromSinglePrompt(ctx, ec.llm, prompt,
		llms.WithTemperature(0),
		llms.WithMaxTokens(8),
	)
	if err != nil {
		return "", fmt.Errorf("emotion classification failed: %w", err)
	}

	label := normalizeLabel(completion)

	if ec.cache != nil {
		if err := ec.cache.Set(ctx, key, label, cacheTTL).Err(); err != nil {
			config.Logger.Warnw("emotion cache write failed", "error", err)
		}
	}

	return label, nil
}

// normalizeLabel maps raw model output onto the label set; anything
// unrecognized becomes "neutral".
func normalizeLabel(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Trim(label, ".\"'` ")
	if idx := strings.IndexAny(label, " \n\t"); idx > 0 {
		label = label[:idx]
	}
	if !emotionLabels[label] {
		return "neutral"
	}
	return label
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "emotion:" + hex.EncodeToString(sum[:])
}
