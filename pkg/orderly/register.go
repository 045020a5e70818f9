package orderly

import (
	"encoding/hex"
	"strconv"

	"github.com/mr-tron/base58/base58"

	"github.com/orderlynetwork/orderly-connector-go/pkg/auth"
	"github.com/orderlynetwork/orderly-connector-go/pkg/message"
)

// Register performs the account registration flow: fetch a registration
// nonce, encode and sign the registration message, and submit it. Returns
// the account identifier assigned by the service.
func Register(client *Client, signer auth.Signer, brokerID string, chainID uint64) (string, error) {
	nonce, err := client.GetRegistrationNonce()
	if err != nil {
		return "", err
	}

	msg := message.Registration{
		BrokerID:          brokerID,
		ChainID:           chainID,
		Timestamp:         auth.GetTimestampMs(),
		RegistrationNonce: nonce,
	}

	digest := msg.Digest()
	signature, err := signer.Sign(digest[:])
	if err != nil {
		return "", err
	}

	return client.RegisterAccount(RegisterAccountRequest{
		Message: RegisterAccountMessage{
			BrokerID:          brokerID,
			ChainID:           chainID,
			ChainType:         chainTypeSolana,
			Timestamp:         msg.Timestamp,
			RegistrationNonce: strconv.FormatUint(nonce, 10),
		},
		Signature:   hex.EncodeToString(signature),
		UserAddress: base58.Encode(signer.Public()),
	})
}
