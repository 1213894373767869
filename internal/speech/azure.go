package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

var localeMap = map[string]string{
	"en": "en-US",
	"es": "es-ES",
	"fr": "fr-FR",
	"de": "de-DE",
	"it": "it-IT",
}

// AzureTranscriber calls the Azure Speech short-audio REST endpoint.
// Every failure mode (missing credentials, transcode error, network
// error, non-recognition) falls back to the canned transcript; it
// never surfaces an error to the caller.
type AzureTranscriber struct {
	Key        string
	Region     string
	FFmpegPath string
	Client     *http.Client
}

func NewAzureTranscriber(key, region, ffmpegPath string) *AzureTranscriber {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &AzureTranscriber{
		Key:        key,
		Region:     region,
		FFmpegPath: ffmpegPath,
		Client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type azureSpeechResp struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

func (t *AzureTranscriber) Transcribe(ctx context.Context, audio []byte, fromLang string) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}
	if t.Key == "" || t.Region == "" || t.Client == nil {
		return CannedTranscript(fromLang), nil
	}

	wav, err := ConvertWebMToWAV(ctx, t.FFmpegPath, audio)
	if err != nil {
		log.Printf("speech: transcode failed, using canned transcript: %v", err)
		return CannedTranscript(fromLang), nil
	}

	text, err := t.recognize(ctx, wav, fromLang)
	if err != nil {
		log.Printf("speech: recognition failed, using canned transcript: %v", err)
		return CannedTranscript(fromLang), nil
	}
	return text, nil
}

func (t *AzureTranscriber) recognize(ctx context.Context, wav []byte, fromLang string) (string, error) {
	locale, ok := localeMap[strings.ToLower(strings.TrimSpace(fromLang))]
	if !ok {
		locale = "en-US"
	}

	url := fmt.Sprintf(
		"https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1?language=%s",
		t.Region, locale,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(wav))
	if err != nil {
		return "", err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", t.Key)
	req.Header.Set("Content-Type", "audio/wav; codecs=audio/pcm; samplerate=16000")
	req.Header.Set("Accept", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("azure speech: status %d", resp.StatusCode)
	}

	var decoded azureSpeechResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.RecognitionStatus != "Success" || decoded.DisplayText == "" {
		return "", fmt.Errorf("azure speech: no recognition (%s)", decoded.RecognitionStatus)
	}
	return decoded.DisplayText, nil
}
