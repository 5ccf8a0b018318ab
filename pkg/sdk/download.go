package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/filozone/synapse-sdk-go/pkg/storage"
)

// Download retrieves a piece by CID. Retrieval goes through the FilCDN edge
// when CDN is enabled, with the storage provider as the direct path
// otherwise.
func (c *Core) Download(ctx context.Context, pieceCID string) ([]byte, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	dlCtx, cancel := withTimeout(ctx, c.Config.Timeouts.Download)
	defer cancel()

	return c.pieces.DownloadPiece(dlCtx, pieceCID)
}

// DownloadText retrieves a piece and decodes it as text.
func (c *Core) DownloadText(ctx context.Context, pieceCID string) (string, error) {
	data, err := c.Download(ctx, pieceCID)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DownloadJSON retrieves a piece and unmarshals it into v.
func (c *Core) DownloadJSON(ctx context.Context, pieceCID string, v any) error {
	data, err := c.Download(ctx, pieceCID)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode piece %s: %w", pieceCID, err)
	}
	return nil
}

// DownloadToFile retrieves a piece and writes it to path.
func (c *Core) DownloadToFile(ctx context.Context, pieceCID, path string) error {
	data, err := c.Download(ctx, pieceCID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write piece to file: %w", err)
	}
	return nil
}

// DownloadImage retrieves a piece into a temp file whose extension is derived
// from the sniffed content type, and returns the file's path. The caller owns
// the file; it is never removed by the SDK.
func (c *Core) DownloadImage(ctx context.Context, pieceCID string) (string, error) {
	data, err := c.Download(ctx, pieceCID)
	if err != nil {
		return "", err
	}

	ext := ""
	if exts, _ := mime.ExtensionsByType(http.DetectContentType(data)); len(exts) > 0 {
		ext = exts[0]
	}

	f, err := os.CreateTemp("", "synapse-image-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp image file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp image file: %w", err)
	}
	return f.Name(), nil
}

// FileExists reports whether a piece is retrievable. It performs a full
// download rather than a metadata probe, so a true result means the content
// was actually served.
func (c *Core) FileExists(ctx context.Context, pieceCID string) (bool, error) {
	if err := c.ready(); err != nil {
		return false, err
	}
	dlCtx, cancel := withTimeout(ctx, c.Config.Timeouts.Download)
	defer cancel()

	_, err := c.pieces.DownloadPiece(dlCtx, pieceCID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	case isNotFoundMessage(err):
		return false, nil
	default:
		return false, err
	}
}

// isNotFoundMessage sniffs common not-found phrasings in errors raised
// outside pkg/storage, which only carry a message. Structured
// storage.ErrNotFound is checked first and should be preferred.
func isNotFoundMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "404")
}
