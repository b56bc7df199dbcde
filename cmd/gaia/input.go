// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// InputReader abstracts user input reading for testability.
//
// # Description
//
// InputReader enables mocking of stdin in unit tests. Production
// implementation wraps bufio.Reader; test implementation returns
// predetermined inputs.
//
// # Outputs
//
// ReadLine returns the line read (trimmed) and any error. Returns
// io.EOF when input is exhausted.
type InputReader interface {
	// ReadLine reads a single line of input, trimmed of surrounding
	// whitespace. Blocks until input is available.
	ReadLine() (string, error)
}

// StdinReader implements InputReader over a buffered stream.
//
// Not thread-safe. Single reader per input source.
type StdinReader struct {
	reader *bufio.Reader
}

var _ InputReader = (*StdinReader)(nil)

// NewStdinReader creates a reader over os.Stdin.
func NewStdinReader() *StdinReader {
	return &StdinReader{reader: bufio.NewReader(os.Stdin)}
}

// NewInputReader creates a reader over an arbitrary source.
func NewInputReader(r io.Reader) *StdinReader {
	return &StdinReader{reader: bufio.NewReader(r)}
}

// ReadLine implements InputReader.
func (r *StdinReader) ReadLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		// A final unterminated line is still usable input.
		if err == io.EOF && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// MockInputReader implements InputReader for tests, returning scripted
// lines and then io.EOF.
type MockInputReader struct {
	Lines []string
	index int
}

var _ InputReader = (*MockInputReader)(nil)

// ReadLine implements InputReader.
func (m *MockInputReader) ReadLine() (string, error) {
	if m.index >= len(m.Lines) {
		return "", io.EOF
	}
	line := m.Lines[m.index]
	m.index++
	return strings.TrimSpace(line), nil
}

// isExitCommand reports whether a line asks to leave the chat loop.
func isExitCommand(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}
