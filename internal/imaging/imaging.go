// Package imaging turns uploaded image files into data URIs that can be
// embedded directly in an item record and shown as an <img> source.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when the data is not in a recognized image format.
var ErrNotImage = errors.New("not an image")

// FallbackMIME is used when neither the bytes nor the caller name a type.
const FallbackMIME = "application/octet-stream"

// Encode reads all of r and returns it as a base64 data URI. The MIME type
// is sniffed from the bytes. Formats the sniffer does not know (HEIC, AVIF)
// keep their bytes and use declared, or FallbackMIME when declared is empty.
// Only read errors are returned.
func Encode(r io.Reader, declared string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading image data: %w", err)
	}
	mimeType, err := DetectMIME(data)
	if err != nil {
		mimeType = cleanMIME(declared)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// cleanMIME strips parameters from a declared Content-Type.
func cleanMIME(declared string) string {
	t, _, err := mime.ParseMediaType(declared)
	if err != nil || t == "" {
		return FallbackMIME
	}
	return t
}

// DetectMIME returns the image MIME type of data.
func DetectMIME(data []byte) (string, error) {
	detected := http.DetectContentType(data)
	if strings.HasPrefix(detected, "image/") {
		return detected, nil
	}
	if isSVG(data, detected) {
		return "image/svg+xml", nil
	}

	// Formats the sniffer doesn't know (TIFF) are still decodable.
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		return "image/" + format, nil
	}
	return "", fmt.Errorf("%w: detected %s", ErrNotImage, detected)
}

// isSVG reports whether text data has an <svg> root element.
func isSVG(data []byte, detected string) bool {
	if !strings.HasPrefix(detected, "text/xml") && !strings.HasPrefix(detected, "text/plain") {
		return false
	}
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// Decode splits a base64 data URI into its payload and MIME type.
func Decode(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", errors.New("missing data: prefix")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", errors.New("missing data URI payload")
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", errors.New("data URI is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding data URI: %w", err)
	}
	return data, mime, nil
}

// Dimensions returns the pixel size of the image in a data URI without
// decoding the whole image.
func Dimensions(uri string) (width, height int, err error) {
	data, _, err := Decode(uri)
	if err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decoding image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
