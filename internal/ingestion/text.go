package ingestion

import "strings"

// DecodeText interprets data as UTF-8, dropping byte sequences that do not decode.
func DecodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
