package config

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type stubSigner struct{}

func (stubSigner) Address() common.Address { return common.Address{} }
func (stubSigner) SignTx(tx *types.Transaction, _ *big.Int) (*types.Transaction, error) {
	return tx, nil
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{PrivateKey: "aa"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Network.Name != Calibration.Name {
		t.Fatalf("default network = %q, want %q", cfg.Network.Name, Calibration.Name)
	}
	if cfg.RPCAddr != Calibration.RPCAddr {
		t.Fatalf("default RPCAddr = %q, want %q", cfg.RPCAddr, Calibration.RPCAddr)
	}
	if cfg.ProviderEndpoint != Calibration.ProviderEndpoint {
		t.Fatalf("default ProviderEndpoint = %q, want %q", cfg.ProviderEndpoint, Calibration.ProviderEndpoint)
	}
	if cfg.GatewayURL != "https://ipfs.io/ipfs/" {
		t.Fatalf("default GatewayURL = %q", cfg.GatewayURL)
	}
	if cfg.PinEndpoint != "https://api.pinata.cloud/pinning/pinByHash" {
		t.Fatalf("default PinEndpoint = %q", cfg.PinEndpoint)
	}
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Network:          Mainnet,
		RPCAddr:          "https://rpc.example.org",
		PrivateKey:       "aa",
		ProviderEndpoint: "https://provider.example.org",
		GatewayURL:       "https://gw.example.org/ipfs/",
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Network.ChainID != "314" {
		t.Fatalf("network ChainID = %q, want 314", cfg.Network.ChainID)
	}
	if cfg.RPCAddr != "https://rpc.example.org" {
		t.Fatalf("RPCAddr overwritten: %q", cfg.RPCAddr)
	}
	if cfg.ProviderEndpoint != "https://provider.example.org" {
		t.Fatalf("ProviderEndpoint overwritten: %q", cfg.ProviderEndpoint)
	}
	if cfg.GatewayURL != "https://gw.example.org/ipfs/" {
		t.Fatalf("GatewayURL overwritten: %q", cfg.GatewayURL)
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "neither key nor signer",
			cfg:     Config{},
			wantErr: "either PrivateKey or Signer is required",
		},
		{
			name:    "both key and signer",
			cfg:     Config{PrivateKey: "aa", Signer: stubSigner{}},
			wantErr: "mutually exclusive",
		},
		{
			name: "key only",
			cfg:  Config{PrivateKey: "aa"},
		},
		{
			name: "signer only",
			cfg:  Config{Signer: stubSigner{}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate: expected error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate error = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestNetworkByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "mainnet", want: "314"},
		{name: "calibration", want: "314159"},
		{name: "devnet", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, err := NetworkByName(tc.name)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("NetworkByName(%q): expected error", tc.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("NetworkByName(%q): %v", tc.name, err)
			}
			if n.ChainID != tc.want {
				t.Fatalf("ChainID = %q, want %q", n.ChainID, tc.want)
			}
		})
	}
}

func TestTimeoutsWithDefaults(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		tt := Timeouts{}.WithDefaults()
		if tt.Dial != 5*time.Second {
			t.Fatalf("Dial = %v", tt.Dial)
		}
		if tt.ChainRead != 12*time.Second {
			t.Fatalf("ChainRead = %v", tt.ChainRead)
		}
		if tt.ChainSubmit != 25*time.Second {
			t.Fatalf("ChainSubmit = %v", tt.ChainSubmit)
		}
		if tt.ReceiptWait != 90*time.Second {
			t.Fatalf("ReceiptWait = %v", tt.ReceiptWait)
		}
		if tt.Upload != 10*time.Minute {
			t.Fatalf("Upload = %v", tt.Upload)
		}
		if tt.Download != 10*time.Minute {
			t.Fatalf("Download = %v", tt.Download)
		}
		if tt.Pin != 30*time.Second {
			t.Fatalf("Pin = %v", tt.Pin)
		}
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		tt := Timeouts{Dial: time.Second, Upload: time.Minute}.WithDefaults()
		if tt.Dial != time.Second {
			t.Fatalf("Dial = %v, want 1s", tt.Dial)
		}
		if tt.Upload != time.Minute {
			t.Fatalf("Upload = %v, want 1m", tt.Upload)
		}
		if tt.Pin != 30*time.Second {
			t.Fatalf("Pin = %v, want default 30s", tt.Pin)
		}
	})
}
