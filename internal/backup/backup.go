// Package backup copies a file aside before it is overwritten.
package backup

import (
	"fmt"
	"io"
	"os"
	"time"
)

// timeFormat is the suffix stamp, second resolution.
const timeFormat = "20060102-150405"

// now is swappable for tests.
var now = time.Now

// Timestamped copies the file at path to path.<stamp>.bak and returns the
// new path. The copy keeps the original file's permission bits. A missing
// source file is an error; callers decide whether that matters.
func Timestamped(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file for backup: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat file for backup: %w", err)
	}

	dstPath := fmt.Sprintf("%s.%s.bak", path, now().Format(timeFormat))
	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("creating backup file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("copying to backup file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("closing backup file: %w", err)
	}
	return dstPath, nil
}
