package dto

type TextToSpeechRequest struct {
	Text string `json:"text" validate:"required"`
}

type SpeechToTextResponse struct {
	Text string `json:"text"`
}
