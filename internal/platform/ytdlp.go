package platform

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/lrstanley/go-ytdlp"
)

// Executable names looked up on PATH
const (
	YTDLPBinary   = "yt-dlp"
	FFmpegBinary  = "ffmpeg"
	FFprobeBinary = "ffprobe"
)

// EnsureYTDLP makes sure yt-dlp and the ffmpeg tools it post-processes with
// are available, downloading cached copies of whatever is missing from PATH.
// It returns the yt-dlp executable in use.
func EnsureYTDLP(ctx context.Context) (string, error) {
	ytdlpPath, err := ensureBinary(YTDLPBinary, func() (*ytdlp.ResolvedInstall, error) {
		return ytdlp.Install(ctx, nil)
	})
	if err != nil {
		return "", err
	}

	// The cached ffmpeg directory is added to PATH when a command runs
	if _, err := ensureBinary(FFmpegBinary, func() (*ytdlp.ResolvedInstall, error) {
		return ytdlp.InstallFFmpeg(ctx, nil)
	}); err != nil {
		return "", err
	}
	if _, err := ensureBinary(FFprobeBinary, func() (*ytdlp.ResolvedInstall, error) {
		return ytdlp.InstallFFprobe(ctx, nil)
	}); err != nil {
		return "", err
	}

	return ytdlpPath, nil
}

// ensureBinary returns name from PATH, or runs install when it is missing
func ensureBinary(name string, install func() (*ytdlp.ResolvedInstall, error)) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	resolved, err := install()
	if err != nil {
		return "", fmt.Errorf("install %s: %w", name, err)
	}
	return resolved.Executable, nil
}
