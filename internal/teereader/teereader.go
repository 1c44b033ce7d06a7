// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrWrite is returned by Read when the copy to the writer fails.
var ErrWrite = errors.New("failed to write teed output")

// truncateSuffix is appended to lines shortened by LastLine.
const truncateSuffix = "..."

// LastLineTeeReader wraps an io.Reader, writes everything it reads to an io.Writer and
// tracks the last complete line. It is safe for concurrent use.
type LastLineTeeReader struct {
	reader   io.Reader
	writer   io.Writer
	lastLine string
	partial  strings.Builder
	mu       sync.RWMutex
}

// NewLastLineTeeReader creates a LastLineTeeReader reading from r and copying to w.
// A nil w discards the copy.
func NewLastLineTeeReader(r io.Reader, w io.Writer) *LastLineTeeReader {
	if w == nil {
		w = io.Discard
	}

	return &LastLineTeeReader{
		reader: r,
		writer: w,
	}
}

// Read implements io.Reader.
func (lt *LastLineTeeReader) Read(p []byte) (int, error) {
	n, err := lt.reader.Read(p)
	if n > 0 {
		lt.mu.Lock()
		lt.processNewData(string(p[:n]))
		lt.mu.Unlock()

		if _, werr := lt.writer.Write(p[:n]); werr != nil {
			return n, errors.Join(ErrWrite, werr)
		}
	}

	return n, err //nolint:wrapcheck
}

// processNewData must be called with the write lock held.
func (lt *LastLineTeeReader) processNewData(data string) {
	lt.partial.WriteString(data)

	lines := strings.Split(lt.partial.String(), "\n")
	if len(lines) == 1 {
		return
	}

	lt.lastLine = strings.TrimSuffix(lines[len(lines)-2], "\r")
	rest := lines[len(lines)-1]

	lt.partial.Reset()
	lt.partial.WriteString(rest)
}

// LastLine returns the last complete line read, or the trailing partial line if the output
// did not end with a newline. If maxLength > 0 longer lines are truncated to maxLength,
// ending in "...".
func (lt *LastLineTeeReader) LastLine(maxLength int) string {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	result := lt.lastLine
	if p := lt.partial.String(); p != "" {
		result = p
	}

	if maxLength > len(truncateSuffix) && len(result) > maxLength {
		result = result[:maxLength-len(truncateSuffix)] + truncateSuffix
	}

	return result
}

// PartialLine returns the data after the last newline.
func (lt *LastLineTeeReader) PartialLine() string {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return lt.partial.String()
}
