// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package sse

import (
	"bufio"
	"io"
	"strings"
)

// FrameScanner reassembles an SSE byte stream into complete frame
// payloads.
//
// SSE Format Reference (https://developer.mozilla.org/en-US/docs/Web/API/Server-sent_events):
//
//	data: {"token":"Hello"}\n
//	\n
//	data: {"token":" world"}\n
//	\n
//
// A frame is everything between blank-line delimiters. Lines starting
// with "data:" contribute their value to the frame; multiple data lines
// in one frame are joined with "\n" per the SSE convention. Comment
// lines (":") and unrecognized fields ("event:", "id:", "retry:") are
// ignored for forward compatibility.
//
// The scanner reads through bufio, so chunk boundaries in the
// underlying reader may fall anywhere (mid-line, mid-frame) without
// losing or duplicating data. A trailing frame that is not terminated
// by a blank line when the stream ends is discarded, not emitted: only
// blank-line-terminated frames are well-formed.
//
// Thread Safety:
//
//	FrameScanner is single-consumer and not restartable. Do not call
//	Next concurrently.
type FrameScanner struct {
	reader *bufio.Reader
	data   []string
}

// NewFrameScanner creates a FrameScanner reading from r.
//
// The caller retains ownership of r and is responsible for closing it.
func NewFrameScanner(r io.Reader) *FrameScanner {
	return &FrameScanner{
		reader: bufio.NewReader(r),
	}
}

// Next returns the next complete frame payload.
//
// Blocks until a blank-line delimiter completes a frame, the stream
// ends, or the underlying reader fails. Returns io.EOF once the stream
// is exhausted; any partially accumulated frame at that point is
// dropped.
func (f *FrameScanner) Next() (string, error) {
	for {
		line, err := f.reader.ReadString('\n')
		if err != nil {
			// A partial line or unterminated frame at stream end is
			// not a well-formed frame.
			f.data = nil
			if err == io.EOF {
				return "", io.EOF
			}
			return "", err
		}

		line = strings.TrimRight(line, "\r\n")

		// Blank line terminates the current frame.
		if line == "" {
			if len(f.data) == 0 {
				continue
			}
			frame := strings.Join(f.data, "\n")
			f.data = nil
			return frame, nil
		}

		// Comment line.
		if strings.HasPrefix(line, ":") {
			continue
		}

		if value, ok := strings.CutPrefix(line, "data:"); ok {
			// The space after the colon is optional in the wild.
			f.data = append(f.data, strings.TrimPrefix(value, " "))
			continue
		}

		// Unrecognized field - ignore.
	}
}
