package cid

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// String returns the decimal form of the ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Describe returns the decoded fields in a human readable form.
func (id ID) Describe() string {
	return Decode(id).String()
}

// Parse reads an ID in decimal or 0x-prefixed hexadecimal form.
func Parse(s string) (ID, error) {
	text := strings.TrimSpace(s)
	base := 10
	if len(text) > 2 && (text[:2] == "0x" || text[:2] == "0X") {
		text, base = text[2:], 16
	}

	// strconv would otherwise accept an underscore-separated or signed literal
	if text == "" || strings.ContainsAny(text, "+-_") {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
	}

	v, err := strconv.ParseUint(text, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrSyntax, s, err)
	}
	return ID(v), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// MarshalJSON encodes the ID as a JSON number.
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalJSON accepts a JSON number or a string holding the decimal or hex form.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	return id.UnmarshalText(data)
}
