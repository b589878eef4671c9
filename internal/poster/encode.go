package poster

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/logging"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/util"
)

// SavePoster encodes the poster to outputPath in the configured format.
// The image is written to a temp file in the target directory and
// renamed into place, so a crashed write never leaves a truncated
// poster. Returns the final path, which may differ from outputPath when
// the format has no native encoder.
func SavePoster(img image.Image, outputPath string, settings *config.PosterSettings) (string, error) {
	fileType := settings.FileType
	if fileType == config.FileTypeWEBP {
		// No webp encoder is available, so the poster degrades to
		// lossless png rather than failing the episode.
		logging.Warn("webp encoding unavailable, writing png instead", "path", outputPath)
		fileType = config.FileTypePNG
		outputPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + fileType.Extension()
	}

	dir := filepath.Dir(outputPath)
	if err := util.EnsureDirectory(dir); err != nil {
		return "", errors.NewIOError("cannot create poster directory "+dir, err)
	}

	tmpPath, err := util.CreateTempFilePath(dir, ".poster", fileType.Extension())
	if err != nil {
		return "", errors.NewIOError("cannot create temp poster path in "+dir, err)
	}
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return "", errors.NewIOError("cannot create temp poster file in "+dir, err)
	}

	if err := encode(tmp, img, fileType, settings.Quality); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errors.NewRenderError("cannot encode poster "+outputPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.NewIOError("cannot finalize poster "+outputPath, err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.NewIOError("cannot move poster into place at "+outputPath, err)
	}
	return outputPath, nil
}

func encode(f *os.File, img image.Image, fileType config.FileType, quality int) error {
	switch fileType {
	case config.FileTypePNG:
		return png.Encode(f, img)
	case config.FileTypeGIF:
		return gif.Encode(f, img, nil)
	default:
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	}
}
