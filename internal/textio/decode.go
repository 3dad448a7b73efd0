// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package textio reads playlist files in UTF-8 or a legacy fallback encoding
// and writes results atomically.
package textio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// UTF8 is the name reported for inputs that were already valid UTF-8.
const UTF8 = "utf-8"

// DefaultFallbacks lists the encodings tried after UTF-8 when none are configured.
var DefaultFallbacks = []string{"gbk"}

type namedEncoding struct {
	name string
	enc  encoding.Encoding
}

// Decoded is decoded input text and the encoding that produced it.
type Decoded struct {
	Text     string
	Encoding string
	Size     int
}

// Decoder turns raw bytes into text, trying UTF-8 first and then each
// fallback in order.
type Decoder struct {
	fallbacks []namedEncoding
}

// ResolveEncoding looks up a WHATWG encoding label such as "gbk", "gb18030"
// or "big5" and returns its canonical name.
func ResolveEncoding(label string) (encoding.Encoding, string, error) {
	label = strings.TrimSpace(label)
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(label)
	}
	return enc, name, nil
}

// NewDecoder resolves the fallback labels. An empty list means DefaultFallbacks.
func NewDecoder(fallbacks []string) (*Decoder, error) {
	if len(fallbacks) == 0 {
		fallbacks = DefaultFallbacks
	}
	d := &Decoder{fallbacks: make([]namedEncoding, 0, len(fallbacks))}
	for _, label := range fallbacks {
		enc, name, err := ResolveEncoding(label)
		if err != nil {
			return nil, err
		}
		d.fallbacks = append(d.fallbacks, namedEncoding{name: name, enc: enc})
	}
	return d, nil
}

// Encodings returns the encoding names in the order they are tried.
func (d *Decoder) Encodings() []string {
	names := make([]string, 0, len(d.fallbacks)+1)
	names = append(names, UTF8)
	for _, f := range d.fallbacks {
		names = append(names, f.name)
	}
	return names
}

// Decode returns the text of data. x/text decoders substitute U+FFFD for
// invalid sequences instead of failing, so any replacement rune in the output
// of a fallback is treated as a failed decode.
func (d *Decoder) Decode(data []byte) (Decoded, error) {
	if utf8.Valid(data) {
		return Decoded{Text: string(data), Encoding: UTF8, Size: len(data)}, nil
	}
	for _, f := range d.fallbacks {
		out, err := f.enc.NewDecoder().Bytes(data)
		if err != nil || !utf8.Valid(out) || strings.ContainsRune(string(out), utf8.RuneError) {
			continue
		}
		return Decoded{Text: string(out), Encoding: f.name, Size: len(data)}, nil
	}
	return Decoded{}, &DecodingError{Tried: d.Encodings()}
}

// ReadFile reads and decodes the file at path.
func (d *Decoder) ReadFile(path string) (Decoded, error) {
	// #nosec G304 -- input paths are provided by the operator via CLI/ENV/config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Decoded{}, &NotFoundError{Path: path, Err: err}
		}
		return Decoded{}, fmt.Errorf("read %s: %w", path, err)
	}

	dec, err := d.Decode(data)
	if err != nil {
		var de *DecodingError
		if errors.As(err, &de) {
			de.Path = path
		}
		return Decoded{}, err
	}
	return dec, nil
}
