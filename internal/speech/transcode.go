package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// ConvertWebMToWAV shells out to ffmpeg to re-encode browser-captured
// audio into 16kHz mono WAV, the input the recognizer expects. Fails
// when ffmpeg is missing or the input container is unreadable; temp
// files are removed on every path.
func ConvertWebMToWAV(ctx context.Context, ffmpegPath string, input []byte) ([]byte, error) {
	src, err := os.CreateTemp("", "caption-*.webm")
	if err != nil {
		return nil, err
	}
	defer os.Remove(src.Name())

	if _, err := src.Write(input); err != nil {
		src.Close()
		return nil, err
	}
	if err := src.Close(); err != nil {
		return nil, err
	}

	dst, err := os.CreateTemp("", "caption-*.wav")
	if err != nil {
		return nil, err
	}
	dst.Close()
	defer os.Remove(dst.Name())

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-y",
		"-i", src.Name(),
		"-ar", "16000",
		"-ac", "1",
		dst.Name(),
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, out)
	}

	return os.ReadFile(dst.Name())
}
