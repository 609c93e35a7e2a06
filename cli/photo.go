// ABOUTME: Photo attachment helper for record commands
// ABOUTME: Encodes an image file as the data URI the records carry
package cli

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
)

// readPhoto loads an image file and encodes it as a data URI. An empty
// path yields an empty URI.
func readPhoto(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}

	mimeType := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}
