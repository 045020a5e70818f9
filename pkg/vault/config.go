package vault

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/orderlynetwork/orderly-connector-go/pkg/solana"
)

// Config carries the deployment-specific parameters of the vault.
type Config struct {
	// RPCEndpoint is the Solana JSON RPC node to build against.
	RPCEndpoint string

	// BrokerID is the broker identifier string, hashed into the on-chain
	// allow-list key.
	BrokerID string

	// TokenSymbol is the deposited token's symbol, e.g. "USDC".
	TokenSymbol string

	// TokenMint is the SPL mint of the deposited token.
	TokenMint ed25519.PublicKey

	// DstEid is the LayerZero destination endpoint for deposit messages.
	DstEid uint32

	// ChainID is the Orderly chain identifier used in signed messages.
	ChainID uint64

	// LookupTable optionally points at a protocol-maintained address
	// lookup table used to compress deposit transactions. Empty disables
	// table lookups.
	LookupTable ed25519.PublicKey
}

const envPrefix = "orderly"

// LoadConfig reads the vault configuration from the environment:
// ORDERLY_RPC_ENDPOINT, ORDERLY_BROKER_ID, ORDERLY_TOKEN_SYMBOL,
// ORDERLY_TOKEN_MINT, ORDERLY_DST_EID, ORDERLY_CHAIN_ID,
// ORDERLY_LOOKUP_TABLE.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("rpc_endpoint", string(solana.EnvironmentProd))
	v.SetDefault("token_symbol", "USDC")
	v.SetDefault("dst_eid", SolanaMainnetEID)
	v.SetDefault("chain_id", MainnetChainID)

	config := Config{
		RPCEndpoint: v.GetString("rpc_endpoint"),
		BrokerID:    v.GetString("broker_id"),
		TokenSymbol: v.GetString("token_symbol"),
		DstEid:      v.GetUint32("dst_eid"),
		ChainID:     v.GetUint64("chain_id"),
	}

	if config.BrokerID == "" {
		return Config{}, errors.New("broker id not configured")
	}

	mint := v.GetString("token_mint")
	if mint == "" {
		return Config{}, errors.New("token mint not configured")
	}

	decoded, err := base58.Decode(mint)
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid base58 encoded token mint")
	}
	config.TokenMint = decoded

	if table := v.GetString("lookup_table"); table != "" {
		decoded, err := base58.Decode(table)
		if err != nil {
			return Config{}, errors.Wrap(err, "invalid base58 encoded lookup table")
		}
		config.LookupTable = decoded
	}

	return config, nil
}
