package fetch

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// Decode converts raw markup to a UTF-8 string. A charset declared in
// contentType or in a <meta> tag wins; without a content type, valid UTF-8 is
// returned unchanged and anything else goes through charset detection. On any
// conversion failure the bytes are returned as-is.
func Decode(data []byte, contentType string) string {
	if contentType == "" {
		if utf8.Valid(data) {
			return string(data)
		}
		return decodeLabel(data, DetectCharset(data))
	}

	r, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		log.Debug().Err(err).Str("content_type", contentType).Msg("charset reader unavailable")
		return string(data)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return string(data)
	}
	return string(out)
}

// DetectCharset guesses the charset of data, defaulting to utf-8.
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// fallbackCharset maps every byte to a rune, so its output is always valid.
const fallbackCharset = "windows-1252"

func decodeLabel(data []byte, label string) string {
	out, ok := transcode(data, label)
	if !ok || !utf8.Valid(out) {
		log.Debug().Str("charset", label).Msg("detected charset did not decode; using " + fallbackCharset)
		if out, ok = transcode(data, fallbackCharset); !ok {
			return strings.ToValidUTF8(string(data), "\uFFFD")
		}
	}
	return string(out)
}

func transcode(data []byte, label string) ([]byte, bool) {
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, false
	}
	return out, true
}
