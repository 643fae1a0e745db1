package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Archive compresses srcPath into archiveDir/{chat-name}.txt.zst.
// Returns the archive path.
func Archive(srcPath, archiveDir string) (string, error) {
	name := ChatName(srcPath)
	if name == "" {
		return "", fmt.Errorf("cannot derive chat name from %s", srcPath)
	}

	destPath := ArchivePath(name, archiveDir)

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := io.Copy(encoder, src); err != nil {
		encoder.Close()
		return "", fmt.Errorf("compress: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}

	return destPath, nil
}

// Decompress decompresses archivePath to a temp file.
// Returns the temp file path and a cleanup function the caller must defer.
func Decompress(archivePath string) (string, func(), error) {
	src, err := os.Open(archivePath)
	if err != nil {
		return "", nil, fmt.Errorf("open archive: %w", err)
	}
	defer src.Close()

	decoder, err := zstd.NewReader(src)
	if err != nil {
		return "", nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	tmp, err := os.CreateTemp("", "wachat-decompress-*.txt")
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, decoder); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("decompress: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("close temp: %w", err)
	}

	cleanup := func() { os.Remove(tmp.Name()) }
	return tmp.Name(), cleanup, nil
}

// IsArchived returns true if an archive file exists for the given chat name.
func IsArchived(name, archiveDir string) bool {
	_, err := os.Stat(ArchivePath(name, archiveDir))
	return err == nil
}

// ArchivePath returns the deterministic archive path for a chat name.
func ArchivePath(name, archiveDir string) string {
	return filepath.Join(archiveDir, name+".txt.zst")
}

// ChatName derives the chat name from an export path.
func ChatName(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".txt.zst") {
		return strings.TrimSuffix(base, ".txt.zst")
	}
	if strings.HasSuffix(base, ".txt") {
		return strings.TrimSuffix(base, ".txt")
	}
	return ""
}
