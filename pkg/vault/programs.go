// Package vault builds the Solana transactions that move funds into the
// Orderly vault program and routes them through the LayerZero V2 messaging
// stack.
package vault

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58/base58"
)

// Chain identifiers used for off-chain message signing. These are Orderly
// protocol values, not Solana genesis hashes.
const (
	MainnetChainID uint64 = 900900900
	DevnetChainID  uint64 = 901901901
)

// SolanaMainnetEID is the LayerZero endpoint identifier for Solana mainnet.
const SolanaMainnetEID uint32 = 30109

// depositComputeUnitLimit is the compute allowance requested for a deposit.
// Cross-chain sends routinely exceed the default budget.
const depositComputeUnitLimit uint32 = 400_000

// https://explorer.solana.com/address/ErBmAD61mGFKvrFNaTJuxoPwqrS8GgtwtqJTJVjFWx9Q
var ProgramKey ed25519.PublicKey

var (
	EndpointProgramKey  ed25519.PublicKey
	SendLibProgramKey   ed25519.PublicKey
	TreasuryProgramKey  ed25519.PublicKey
	ExecutorProgramKey  ed25519.PublicKey
	PriceFeedProgramKey ed25519.PublicKey
	DVNProgramKey       ed25519.PublicKey
)

func init() {
	for _, program := range []struct {
		key     *ed25519.PublicKey
		address string
	}{
		{&ProgramKey, "ErBmAD61mGFKvrFNaTJuxoPwqrS8GgtwtqJTJVjFWx9Q"},
		{&EndpointProgramKey, "LzV2EndpointV211111111111111111111111111111"},
		{&SendLibProgramKey, "LzV2SendLib11111111111111111111111111111111"},
		{&TreasuryProgramKey, "LzV2Treasury1111111111111111111111111111111"},
		{&ExecutorProgramKey, "LzV2Executor1111111111111111111111111111111"},
		{&PriceFeedProgramKey, "LzV2PriceFeed111111111111111111111111111111"},
		{&DVNProgramKey, "LzV2DVN111111111111111111111111111111111111"},
	} {
		decoded, err := base58.Decode(program.address)
		if err != nil {
			panic(err)
		}
		*program.key = decoded
	}
}
