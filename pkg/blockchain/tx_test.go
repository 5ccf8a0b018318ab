package blockchain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type fakeSigner struct {
	addr common.Address
}

func (f fakeSigner) Address() common.Address { return f.addr }
func (f fakeSigner) SignTx(tx *types.Transaction, _ *big.Int) (*types.Transaction, error) {
	return tx, nil
}

func TestGetTransactOpts(t *testing.T) {
	addr, pk, err := ParsePrivateKeyECDSA("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	if err != nil {
		t.Fatalf("ParsePrivateKeyECDSA: %v", err)
	}

	opts, err := GetTransactOpts(big.NewInt(314159), pk)
	if err != nil {
		t.Fatalf("GetTransactOpts: %v", err)
	}
	if opts.From != addr {
		t.Fatalf("From = %s, want %s", opts.From, addr)
	}
	if opts.Signer == nil {
		t.Fatal("expected signer function")
	}
}

func TestGetTransactOptsNilChainID(t *testing.T) {
	_, pk, err := ParsePrivateKeyECDSA("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	if err != nil {
		t.Fatalf("ParsePrivateKeyECDSA: %v", err)
	}
	if _, err := GetTransactOpts(nil, pk); err == nil {
		t.Fatal("expected error for nil chain ID")
	}
}

func TestEVMClientGetTransactOptsRequiresKey(t *testing.T) {
	evm := &EVMClient{}
	if _, err := evm.GetTransactOpts(nil); err == nil {
		t.Fatal("expected error for missing private key")
	}
}

func TestSignerTransactOpts(t *testing.T) {
	owner := common.HexToAddress("0x3333333333333333333333333333333333333333")
	signer := fakeSigner{addr: owner}

	opts := SignerTransactOpts(big.NewInt(314), signer)
	if opts.From != owner {
		t.Fatalf("From = %s, want %s", opts.From, owner)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    0,
		Gas:      21000,
		GasPrice: big.NewInt(1),
		To:       &owner,
		Value:    big.NewInt(0),
	})

	signed, err := opts.Signer(owner, tx)
	if err != nil {
		t.Fatalf("Signer: %v", err)
	}
	if signed != tx {
		t.Fatal("expected transaction passed through to external signer")
	}

	other := common.HexToAddress("0x4444444444444444444444444444444444444444")
	if _, err := opts.Signer(other, tx); !errors.Is(err, bind.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for foreign address, got %v", err)
	}
}
