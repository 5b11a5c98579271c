package pipeline

import (
	"context"
	"os"
)

// extractAudio converts the video's audio track to a mono 16kHz 16-bit PCM
// WAV at audioPath, the format the transcription engine expects.
func (p *implPipeline) extractAudio(ctx context.Context, videoPath, audioPath string) error {
	if _, err := os.Stat(videoPath); err != nil {
		return preconditionErr(StageExtraction, "video file not found: %s", videoPath)
	}

	p.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	// -vn drops the video stream; -y overwrites any existing output.
	args := []string{
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return externalErr(StageExtraction, "ffmpeg audio extraction failed", err)
	}

	p.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return nil
}
