package blockchain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

// The ABI constants are parsed at binding construction; a parse failure here
// would break every contract call, so each constructor is exercised once.
func TestBindingConstructorsParseABI(t *testing.T) {
	addr := common.HexToAddress("0x2222222222222222222222222222222222222222")

	token, err := NewToken(addr, nil)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if token.Address() != addr {
		t.Fatalf("token address = %s, want %s", token.Address(), addr)
	}

	payments, err := NewPayments(addr, nil)
	if err != nil {
		t.Fatalf("NewPayments: %v", err)
	}
	if payments.Address() != addr {
		t.Fatalf("payments address = %s, want %s", payments.Address(), addr)
	}

	warm, err := NewWarmStorage(addr, nil)
	if err != nil {
		t.Fatalf("NewWarmStorage: %v", err)
	}
	if warm.Address() != addr {
		t.Fatalf("warm storage address = %s, want %s", warm.Address(), addr)
	}
}
