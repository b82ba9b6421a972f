package govhdl

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// readFileText reads a whole source file as text.
func readFileText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return decodeText(content), nil
}

// decodeText interprets raw file bytes as text. Valid UTF-8 passes through
// unchanged; anything else is decoded as ISO 8859-1, the encoding older
// VHDL tooling emits, which accepts every byte value.
func decodeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(decoded)
}
