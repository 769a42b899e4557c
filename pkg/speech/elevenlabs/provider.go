package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"ai-interviewer-be/pkg/speech"
)

const (
	defaultVoiceId   = "JBFqnCBsd6RMkjVDRZzb"
	ttsModelId       = "eleven_multilingual_v2"
	ttsOutputFormat  = "mp3_44100_128"
	sttModelId       = "scribe_v1"
	sttLanguageCode  = "eng"
	elevenLabsAPIURL = "https://api.elevenlabs.io"
)

type ElevenLabsProvider struct {
	ApiKey  string
	VoiceId string
	BaseURL string
	Client  *http.Client
}

var _ speech.SpeechProvider = &ElevenLabsProvider{}

func NewElevenLabsProvider(apiKey, voiceId string) *ElevenLabsProvider {
	if voiceId == "" {
		voiceId = defaultVoiceId
	}
	return &ElevenLabsProvider{
		ApiKey:  apiKey,
		VoiceId: voiceId,
		BaseURL: elevenLabsAPIURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type ttsRequest struct {
	Text    string `json:"text"`
	ModelId string `json:"model_id"`
}

func (p *ElevenLabsProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload := ttsRequest{
		Text:    text,
		ModelId: ttsModelId,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s", p.BaseURL, p.VoiceId, ttsOutputFormat)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	audio, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevenlabs tts error, code %d, body %s", res.StatusCode, string(audio))
	}

	return audio, nil
}

type sttResponse struct {
	Text string `json:"text"`
}

func (p *ElevenLabsProvider) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("model_id", sttModelId); err != nil {
		return "", err
	}
	if err := writer.WriteField("language_code", sttLanguageCode); err != nil {
		return "", err
	}
	if filename == "" {
		filename = "answer.webm"
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	endpoint := p.BaseURL + "/v1/speech-to-text"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", p.ApiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("elevenlabs stt error, code %d, body %s", res.StatusCode, string(resByte))
	}

	var parsed sttResponse
	if err := json.Unmarshal(resByte, &parsed); err != nil {
		return "", err
	}

	return parsed.Text, nil
}
