package speech

import (
	"context"
	"strings"
)

// Transcriber converts uploaded audio into source-language text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, fromLang string) (string, error)
}

var cannedTranscripts = map[string]string{
	"en": "stub transcript 1",
	"es": "transcripción breve 1",
	"fr": "transcription courte 1",
	"it": "trascrizione breve 1",
	"de": "kurze Transkription 1",
}

// CannedTranscript returns the deterministic transcript for a language
// code, defaulting to the English entry for unrecognized codes.
func CannedTranscript(fromLang string) string {
	lang := strings.ToLower(strings.TrimSpace(fromLang))
	if t, ok := cannedTranscripts[lang]; ok {
		return t
	}
	return cannedTranscripts["en"]
}

// Stub produces canned transcripts without any external call.
type Stub struct{}

func (Stub) Transcribe(ctx context.Context, audio []byte, fromLang string) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}
	return CannedTranscript(fromLang), nil
}
