// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdinReader_ReadLine(t *testing.T) {
	reader := NewInputReader(strings.NewReader("  hello world  \nsecond\n"))

	line, err := reader.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "hello world", line)

	line, err = reader.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = reader.ReadLine()
	assert.Equal(t, io.EOF, err)
}

func TestStdinReader_UnterminatedFinalLine(t *testing.T) {
	reader := NewInputReader(strings.NewReader("no newline"))

	line, err := reader.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "no newline", line)

	_, err = reader.ReadLine()
	assert.Equal(t, io.EOF, err)
}

func TestMockInputReader(t *testing.T) {
	reader := &MockInputReader{Lines: []string{"first", "  second  "}}

	line, err := reader.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = reader.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = reader.ReadLine()
	assert.Equal(t, io.EOF, err)
}

func TestIsExitCommand(t *testing.T) {
	assert.True(t, isExitCommand("exit"))
	assert.True(t, isExitCommand("QUIT"))
	assert.True(t, isExitCommand("  /exit  "))
	assert.True(t, isExitCommand("/quit"))
	assert.False(t, isExitCommand("exits"))
	assert.False(t, isExitCommand("tell me about exit codes"))
	assert.False(t, isExitCommand(""))
}
