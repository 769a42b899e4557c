package speech

import "context"

// SpeechProvider is the voice collaborator: questions out as audio,
// answers back in as text. Pure I/O adapters, no logic worth testing
// beyond wiring.
type SpeechProvider interface {
	// Synthesize renders text to audio (mp3) bytes.
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Transcribe converts recorded answer audio to text.
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}
