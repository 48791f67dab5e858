// Package logs reads the daemon log file for the CLI logs command.
package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const followPollInterval = 500 * time.Millisecond

// TailLast returns up to limit trailing lines of the file and the offset of
// the file end. A missing file yields no lines and offset zero.
func TailLast(path string, limit int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat log file: %w", err)
	}
	size := info.Size()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, 0, fmt.Errorf("read log file: %w", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		lines = nil
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines, size, nil
}

// Follow streams lines appended after offset to fn until the context ends.
// Truncation (log rotation) restarts from the beginning of the file.
func Follow(ctx context.Context, path string, offset int64, fn func(string)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(followPollInterval):
		}

		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat log file: %w", err)
		}
		if info.Size() < offset {
			offset = 0
		}
		if info.Size() == offset {
			continue
		}

		next, err := readFrom(path, offset, fn)
		if err != nil {
			return err
		}
		offset = next
	}
}

func readFrom(path string, offset int64, fn func(string)) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return offset, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf("seek log file: %w", err)
	}

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err == nil {
			offset += int64(len(line))
			fn(strings.TrimRight(line, "\n"))
			continue
		}
		if errors.Is(err, io.EOF) {
			// Leave a torn trailing line for the next poll.
			return offset, nil
		}
		return offset, fmt.Errorf("read log file: %w", err)
	}
}
