// Package media retrieves remote media via yt-dlp into uniquely named
// local files.
package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"
)

// Kind selects the format preference for a fetch.
type Kind string

const (
	KindVideo Kind = "video"
	KindMusic Kind = "music"
)

// ErrMissingArtifact means yt-dlp reported success but no file showed up
// in the download directory.
var ErrMissingArtifact = errors.New("artifact missing after download")

// Install makes sure a yt-dlp binary is available, downloading one if not.
func Install(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, nil)
	return err
}

// YTDLP fetches media through the yt-dlp binary.
type YTDLP struct {
	dir string
	log *zap.Logger
}

func NewYTDLP(dir string, log *zap.Logger) *YTDLP {
	return &YTDLP{dir: dir, log: log}
}

// Fetch downloads the locator into the download directory and returns the
// produced file path. Each job gets a uuid-based name so concurrent jobs
// from different users never collide.
func (f *YTDLP) Fetch(ctx context.Context, locator string, kind Kind) (string, error) {
	if err := os.MkdirAll(f.dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("download dir: %w", err)
	}

	fileID := uuid.New().String()
	outputTemplate := filepath.Join(f.dir, fileID+".%(ext)s")

	dl := ytdlp.New().
		NoPlaylist().
		Output(outputTemplate)

	switch kind {
	case KindMusic:
		dl = dl.Format("bestaudio/best").
			ExtractAudio().
			AudioFormat("mp3")
	default:
		dl = dl.Format("best")
	}

	f.log.Info("fetching media",
		zap.String("kind", string(kind)),
		zap.String("file_id", fileID))

	if _, err := dl.Run(ctx, locator); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w", err)
	}

	// yt-dlp picks the extension; find what it actually wrote.
	matches, err := filepath.Glob(filepath.Join(f.dir, fileID+".*"))
	if err != nil || len(matches) == 0 {
		return "", ErrMissingArtifact
	}
	return matches[0], nil
}
