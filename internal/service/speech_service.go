// FILE: internal/service/speech_service.go
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"ai-interviewer-be/internal/pkg/apperrors"
	"ai-interviewer-be/internal/pkg/logger"
	"ai-interviewer-be/pkg/speech"

	"github.com/redis/go-redis/v9"
)

type ISpeechService interface {
	TextToSpeech(ctx context.Context, text string) ([]byte, error)
	SpeechToText(ctx context.Context, audio []byte, filename string) (string, error)
}

// speechService fronts the voice collaborator. Synthesized question
// audio is cached in Redis: the same question text is spoken to every
// candidate, so the hit rate is high and the TTS quota is the expensive
// part. Redis being down just means every call goes to the provider.
type speechService struct {
	provider speech.SpeechProvider
	rdb      *redis.Client
	log      logger.ILogger
}

const ttsCacheTTL = 24 * time.Hour

func NewSpeechService(
	provider speech.SpeechProvider,
	rdb *redis.Client,
	log logger.ILogger,
) ISpeechService {
	return &speechService{
		provider: provider,
		rdb:      rdb,
		log:      log,
	}
}

func ttsCacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "tts:" + hex.EncodeToString(sum[:])
}

func (s *speechService) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	key := ttsCacheKey(text)

	if s.rdb != nil {
		if audio, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			return audio, nil
		}
	}

	audio, err := s.provider.Synthesize(ctx, text)
	if err != nil {
		return nil, apperrors.Collaborator("tts", err)
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, audio, ttsCacheTTL).Err(); err != nil {
			s.log.Warn("speech", "failed to cache tts audio", map[string]interface{}{"error": err.Error()})
		}
	}

	return audio, nil
}

func (s *speechService) SpeechToText(ctx context.Context, audio []byte, filename string) (string, error) {
	text, err := s.provider.Transcribe(ctx, audio, filename)
	if err != nil {
		return "", apperrors.Collaborator("stt", err)
	}
	return text, nil
}
