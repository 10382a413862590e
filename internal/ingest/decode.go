package ingest

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Encoding names reported for decoded content
const (
	EncodingUTF8      = "utf-8"
	EncodingEUCKR     = "euc-kr"
	EncodingUTF8Lossy = "utf-8-lossy"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode turns raw bytes into text. It tries UTF-8, then EUC-KR, and finally
// UTF-8 with invalid bytes replaced by U+FFFD. It never fails.
func Decode(data []byte) (string, string) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return string(data), EncodingUTF8
	}

	if decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data); err == nil {
		if s := string(decoded); !strings.ContainsRune(s, utf8.RuneError) {
			return s, EncodingEUCKR
		}
	}

	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), EncodingUTF8Lossy
}
