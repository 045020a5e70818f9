package vault

import (
	"crypto/sha256"
	"encoding/binary"
)

// DepositParams is the borsh-encoded argument block of the deposit
// instruction.
type DepositParams struct {
	AccountID   [32]byte
	BrokerHash  [32]byte
	TokenHash   [32]byte
	UserAddress [32]byte
	TokenAmount uint64
}

// OAppSendParams carries the cross-chain delivery fees paid alongside a
// deposit.
type OAppSendParams struct {
	NativeFee  uint64
	LzTokenFee uint64
}

// instructionDiscriminator returns the 8 byte anchor method discriminator,
// sha256("global:<name>")[0:8].
func instructionDiscriminator(name string) []byte {
	h := sha256.Sum256([]byte("global:" + name))
	return h[:8]
}

// depositInstructionData serializes the deposit call: discriminator, then
// params and send params in declaration order, integers little-endian.
func depositInstructionData(params DepositParams, sendParams OAppSendParams) []byte {
	data := make([]byte, 0, 8+4*32+3*8)

	data = append(data, instructionDiscriminator("deposit")...)
	data = append(data, params.AccountID[:]...)
	data = append(data, params.BrokerHash[:]...)
	data = append(data, params.TokenHash[:]...)
	data = append(data, params.UserAddress[:]...)
	data = binary.LittleEndian.AppendUint64(data, params.TokenAmount)
	data = binary.LittleEndian.AppendUint64(data, sendParams.NativeFee)
	data = binary.LittleEndian.AppendUint64(data, sendParams.LzTokenFee)

	return data
}
