package vault

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/orderlynetwork/orderly-connector-go/pkg/solana"
)

// FeeQuote is the cross-chain delivery fee for a single send, as reported
// by the endpoint program.
type FeeQuote struct {
	NativeFee  uint64
	LzTokenFee uint64
}

const feeQuoteReturnSize = 16

// quoteDepositFee asks the endpoint program for the current delivery fee by
// simulating a read-only quote call. The simulation never lands on chain.
func (b *Builder) quoteDepositFee(payer ed25519.PublicKey, accounts *depositAccounts) (FeeQuote, error) {
	instruction := solana.NewInstruction(
		EndpointProgramKey,
		quoteInstructionData(b.config.DstEid),
		solana.NewReadonlyAccountMeta(payer, true),
		solana.NewReadonlyAccountMeta(accounts.oappConfig, false),
		solana.NewReadonlyAccountMeta(accounts.endpointSettings, false),
		solana.NewReadonlyAccountMeta(accounts.sendLibConfig, false),
		solana.NewReadonlyAccountMeta(accounts.defaultSendLib, false),
		solana.NewReadonlyAccountMeta(accounts.sendConfig, false),
		solana.NewReadonlyAccountMeta(accounts.defaultSendConfig, false),
		solana.NewReadonlyAccountMeta(accounts.executorConfig, false),
		solana.NewReadonlyAccountMeta(accounts.priceFeedConfig, false),
		solana.NewReadonlyAccountMeta(accounts.dvnConfig, false),
	)

	result, err := b.client.SimulateTransaction(solana.NewTransaction(payer, instruction))
	if err != nil {
		return FeeQuote{}, errors.Wrap(ErrFeeQuoteUnavailable, err.Error())
	}
	if result.Err != nil {
		return FeeQuote{}, errors.Wrap(ErrFeeQuoteUnavailable, result.Err.Error())
	}
	if len(result.ReturnData) < feeQuoteReturnSize {
		return FeeQuote{}, errors.Wrapf(ErrFeeQuoteUnavailable, "short return data: %d bytes", len(result.ReturnData))
	}

	return FeeQuote{
		NativeFee:  binary.LittleEndian.Uint64(result.ReturnData[0:8]),
		LzTokenFee: binary.LittleEndian.Uint64(result.ReturnData[8:16]),
	}, nil
}

func quoteInstructionData(dstEid uint32) []byte {
	data := make([]byte, 0, 8+4)
	data = append(data, instructionDiscriminator("quote")...)
	data = binary.BigEndian.AppendUint32(data, dstEid)
	return data
}
