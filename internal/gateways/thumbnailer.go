package gateways

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/verimedia/media-platform/internal/log"
)

// ThumbnailerConfig represents the video thumbnail extraction configuration
type ThumbnailerConfig struct {
	FFmpegPath string
	Offset     time.Duration
	Size       string
}

// FFmpegThumbnailer extracts a still jpeg frame from a video by invoking the
// ffmpeg binary as a subprocess, through temporary files.
type FFmpegThumbnailer struct {
	cfg ThumbnailerConfig
}

// NewFFmpegThumbnailer returns a thumbnailer backed by the ffmpeg binary
func NewFFmpegThumbnailer(cfg ThumbnailerConfig) *FFmpegThumbnailer {
	return &FFmpegThumbnailer{cfg: cfg}
}

// Thumbnail writes the video to a temp file, captures one frame at the
// configured offset and returns it as jpeg bytes.
func (t *FFmpegThumbnailer) Thumbnail(ctx context.Context, video []byte) ([]byte, error) {
	dir := os.TempDir()
	id := uuid.NewString()
	videoPath := filepath.Join(dir, fmt.Sprintf("video-%s.mp4", id))
	thumbPath := filepath.Join(dir, fmt.Sprintf("thumbnail-%s.jpg", id))

	if err := os.WriteFile(videoPath, video, 0o600); err != nil {
		return nil, errors.Wrap(err, "writing temporary video file")
	}
	defer func() {
		if err := os.Remove(videoPath); err != nil {
			log.Warn(ctx, "cannot remove temporary video file", "err", err, "path", videoPath)
		}
	}()

	offset := t.cfg.Offset.Seconds()
	cmd := exec.CommandContext(ctx, t.cfg.FFmpegPath,
		"-ss", fmt.Sprintf("%.3f", offset),
		"-i", videoPath,
		"-frames:v", "1",
		"-s", t.cfg.Size,
		"-y", thumbPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, errors.Wrapf(err, "ffmpeg failed: %s", string(out))
	}
	defer func() {
		if err := os.Remove(thumbPath); err != nil {
			log.Warn(ctx, "cannot remove temporary thumbnail file", "err", err, "path", thumbPath)
		}
	}()

	thumbnail, err := os.ReadFile(thumbPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading thumbnail file")
	}
	return thumbnail, nil
}
