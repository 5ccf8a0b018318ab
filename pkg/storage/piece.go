package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/ipfs/go-cid"
	"go.uber.org/zap"
)

// uploadResponse mirrors the provider's piece-upload reply.
type uploadResponse struct {
	PieceCID string `json:"pieceCid"`
}

// UploadPiece stores data with the provider and returns the piece CID it was
// assigned. The payload is sent as a multipart form with the given filename
// and content type; an empty content type defaults to application/octet-stream.
func (c *Client) UploadPiece(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", err
	}
	if _, err = part.Write(data); err != nil {
		return "", err
	}
	if err = mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ProviderURL+"/pdp/piece", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	zap.L().Debug("Uploading piece to provider",
		zap.String("provider", c.ProviderURL),
		zap.String("filename", filename),
		zap.Int("size", len(data)))

	resp, err := c.http().Do(req)
	if err != nil {
		return "", err
	}
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", statusError("provider", resp, body)
	}

	var out uploadResponse
	if err = json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if _, err = cid.Parse(out.PieceCID); err != nil {
		return "", fmt.Errorf("provider returned invalid piece CID %q: %w", out.PieceCID, err)
	}

	zap.L().Debug("Piece uploaded", zap.String("pieceCid", out.PieceCID))
	return out.PieceCID, nil
}

// fetchProvider downloads a piece directly from the storage provider.
// The pieceCID must already be sanitized.
func (c *Client) fetchProvider(ctx context.Context, pieceCID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ProviderURL+"/piece/"+pieceCID, nil)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("Fetching piece from provider", zap.String("pieceCid", pieceCID))

	resp, err := c.http().Do(req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return nil, fmt.Errorf("piece %s: %w", pieceCID, ErrNotFound)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, statusError("provider", resp, body)
	}

	return io.ReadAll(resp.Body)
}

// StatPiece checks piece existence on the storage provider and returns the
// reported size when known (-1 when the provider omits Content-Length).
// A missing piece yields ErrNotFound.
func (c *Client) StatPiece(ctx context.Context, pieceCID string) (int64, error) {
	clean, err := sanitizePieceCID(pieceCID)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.ProviderURL+"/piece/"+clean, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http().Do(req)
	if err != nil {
		return 0, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.ContentLength, nil
	case http.StatusNotFound, http.StatusGone:
		return 0, fmt.Errorf("piece %s: %w", clean, ErrNotFound)
	default:
		return 0, statusError("provider", resp, nil)
	}
}

// Ping verifies the storage provider is reachable and serving its PDP API.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ProviderURL+"/pdp/ping", nil)
	if err != nil {
		return err
	}

	resp, err := c.http().Do(req)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return statusError("provider", resp, nil)
	}
	return nil
}
