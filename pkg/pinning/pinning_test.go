package pinning

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testCID = "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"

func TestRemotePinnerPin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("authorization = %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}

		var body struct {
			HashToPin      string `json:"hashToPin"`
			PinataMetadata struct {
				Name string `json:"name"`
			} `json:"pinataMetadata"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.HashToPin != testCID {
			t.Errorf("hashToPin = %q, want %q", body.HashToPin, testCID)
		}
		if body.PinataMetadata.Name != "report.json" {
			t.Errorf("metadata name = %q", body.PinataMetadata.Name)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewRemotePinner(srv.URL, "https://ipfs.io/ipfs/")
	p.TokenFunc = func() string { return "test-token" }

	url, err := p.Pin(context.Background(), testCID, "report.json")
	if err != nil {
		t.Fatalf("Pin: %v", err)
	}
	if want := "https://ipfs.io/ipfs/" + testCID; url != want {
		t.Fatalf("gateway url = %q, want %q", url, want)
	}
}

func TestRemotePinnerNoCredentials(t *testing.T) {
	p := NewRemotePinner("http://unused", "https://ipfs.io/ipfs/")
	p.TokenFunc = func() string { return "" }

	if p.Enabled() {
		t.Fatal("expected pinner to be disabled")
	}
	if _, err := p.Pin(context.Background(), testCID, ""); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestRemotePinnerReadsTokenFromEnv(t *testing.T) {
	t.Setenv(TokenEnv, "env-token")

	p := NewRemotePinner("http://unused", "")
	if !p.Enabled() {
		t.Fatal("expected pinner enabled via environment")
	}

	t.Setenv(TokenEnv, "")
	if p.Enabled() {
		t.Fatal("expected pinner disabled after credential removal")
	}
}

func TestRemotePinnerServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewRemotePinner(srv.URL, "")
	p.TokenFunc = func() string { return "bad-token" }

	if _, err := p.Pin(context.Background(), testCID, ""); err == nil {
		t.Fatal("expected error from pinning service")
	}
}

func TestGatewayPath(t *testing.T) {
	tests := []struct {
		name    string
		gateway string
		want    string
	}{
		{name: "trailing slash", gateway: "https://ipfs.io/ipfs/", want: "https://ipfs.io/ipfs/" + testCID},
		{name: "no trailing slash", gateway: "https://gw.example.org/ipfs", want: "https://gw.example.org/ipfs/" + testCID},
		{name: "empty defaults", gateway: "", want: "https://ipfs.io/ipfs/" + testCID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GatewayPath(tc.gateway, testCID); got != tc.want {
				t.Fatalf("GatewayPath = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNodePinnerDisabledWhenNil(t *testing.T) {
	var n *NodePinner
	if n.Enabled() {
		t.Fatal("nil pinner must be disabled")
	}
	if _, err := n.Pin(context.Background(), testCID, ""); err == nil {
		t.Fatal("expected error from nil pinner")
	}
}

func TestNodePinnerRejectsInvalidCID(t *testing.T) {
	n, err := NewNodePinner("http://127.0.0.1:5001", "")
	if err != nil {
		t.Fatalf("NewNodePinner: %v", err)
	}
	if _, err := n.Pin(context.Background(), "not-a-cid", ""); err == nil {
		t.Fatal("expected invalid CID error")
	}
}
