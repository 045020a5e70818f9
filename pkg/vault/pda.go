package vault

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/orderlynetwork/orderly-connector-go/pkg/solana"
)

// Seed values are fixed by the deployed programs. String seeds are used
// verbatim (no null terminator), endpoint identifiers are big-endian u32.
const (
	vaultAuthoritySeed    = "vault_authority"
	allowedBrokerSeed     = "allowed_broker"
	allowedTokenSeed      = "allowed_token"
	oappConfigSeed        = "OAppConfig"
	peerSeed              = "Peer"
	enforcedOptionsSeed   = "Options"
	nonceSeed             = "Nonce"
	sendLibConfigSeed     = "SendLibConfig"
	defaultSendLibSeed    = "DefaultSendLib"
	sendLibInfoSeed       = "SendLibInfo"
	endpointSettingsSeed  = "EndpointSettings"
	ulnSettingsSeed       = "UlnSettings"
	sendConfigSeed        = "SendConfig"
	defaultSendConfigSeed = "DefaultSendConfig"
	executorConfigSeed    = "ExecutorConfig"
	priceFeedSeed         = "PriceFeed"
	dvnConfigSeed         = "DVNConfig"
)

func eidSeed(dstEid uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], dstEid)
	return b[:]
}

// GetVaultAuthority derives the custody authority for the vault program.
func GetVaultAuthority() (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(ProgramKey, []byte(vaultAuthoritySeed))
}

// GetAllowedBroker derives the allow-list entry for a broker hash.
func GetAllowedBroker(brokerHash [32]byte) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(ProgramKey, []byte(allowedBrokerSeed), brokerHash[:])
}

// GetAllowedToken derives the allow-list entry for a token hash.
func GetAllowedToken(tokenHash [32]byte) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(ProgramKey, []byte(allowedTokenSeed), tokenHash[:])
}

// GetOAppConfig derives the vault's LayerZero OApp configuration account.
func GetOAppConfig() (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(ProgramKey, []byte(oappConfigSeed))
}

// GetPeer derives the peer route configuration for a destination endpoint.
func GetPeer(dstEid uint32) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(ProgramKey, []byte(peerSeed), eidSeed(dstEid))
}

// GetEnforcedOptions derives the enforced options account for a destination
// endpoint. The trailing seed is an empty options buffer.
func GetEnforcedOptions(dstEid uint32) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(ProgramKey, []byte(enforcedOptionsSeed), eidSeed(dstEid), []byte{})
}

// GetNonceAccount derives the outbound nonce tracking account for a
// destination endpoint.
func GetNonceAccount(dstEid uint32) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(ProgramKey, []byte(nonceSeed), eidSeed(dstEid))
}

// GetSendLibConfig derives the send library selection for a destination.
func GetSendLibConfig(dstEid uint32) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(SendLibProgramKey, []byte(sendLibConfigSeed), eidSeed(dstEid))
}

// GetDefaultSendLib derives the default send library for a destination.
func GetDefaultSendLib(dstEid uint32) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(SendLibProgramKey, []byte(defaultSendLibSeed), eidSeed(dstEid))
}

// GetSendLibInfo derives the send library registration account.
func GetSendLibInfo() (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(SendLibProgramKey, []byte(sendLibInfoSeed))
}

// GetEndpointSettings derives the endpoint program settings account.
func GetEndpointSettings() (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(EndpointProgramKey, []byte(endpointSettingsSeed))
}

// GetUlnSettings derives the ultra light node settings account.
func GetUlnSettings() (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(EndpointProgramKey, []byte(ulnSettingsSeed))
}

// GetSendConfig derives the send configuration for a destination.
func GetSendConfig(dstEid uint32) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(EndpointProgramKey, []byte(sendConfigSeed), eidSeed(dstEid))
}

// GetDefaultSendConfig derives the default send configuration for a destination.
func GetDefaultSendConfig(dstEid uint32) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(EndpointProgramKey, []byte(defaultSendConfigSeed), eidSeed(dstEid))
}

// GetExecutorConfig derives the executor program's configuration account.
func GetExecutorConfig() (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(ExecutorProgramKey, []byte(executorConfigSeed))
}

// GetPriceFeedConfig derives the price feed program's configuration account.
func GetPriceFeedConfig() (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(PriceFeedProgramKey, []byte(priceFeedSeed))
}

// GetDVNConfig derives the verifier network's configuration account.
func GetDVNConfig() (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(DVNProgramKey, []byte(dvnConfigSeed))
}

// GetEventAuthority derives the endpoint program's event authority. The
// derivation uses an empty seed list, which is a valid input to the PDA
// algorithm (only the bump byte is appended).
func GetEventAuthority() (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(EndpointProgramKey)
}

// GetUlnEventAuthority derives the send library program's event authority,
// also from an empty seed list.
func GetUlnEventAuthority() (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(SendLibProgramKey)
}
