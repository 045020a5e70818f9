package orderly

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/orderlynetwork/orderly-connector-go/pkg/auth"
	"github.com/orderlynetwork/orderly-connector-go/pkg/message"
)

// WithdrawalState is the position of a withdrawal in its lifecycle.
type WithdrawalState uint8

const (
	StateIdle WithdrawalState = iota
	StateNonceRequested
	StateMessageEncoded
	StateSigned
	StateSubmitted
	StateAccepted
	StateRejected
)

func (s WithdrawalState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNonceRequested:
		return "nonce_requested"
	case StateMessageEncoded:
		return "message_encoded"
	case StateSigned:
		return "signed"
	case StateSubmitted:
		return "submitted"
	case StateAccepted:
		return "accepted"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

var ErrInvalidTransition = errors.New("invalid withdrawal state transition")

// WithdrawalDetails are the caller-supplied fields of a withdrawal.
type WithdrawalDetails struct {
	BrokerID string
	ChainID  uint64
	Receiver ed25519.PublicKey
	Token    string
	Amount   uint64
}

// WithdrawalFlow walks one withdrawal through
// idle -> nonce_requested -> message_encoded -> signed -> submitted and
// ends in accepted or rejected. A flow is single use; an abandoned flow's
// nonce is burned remotely and a new flow must fetch a fresh one.
//
// The flow never retries: rejections are final for this nonce, and retry
// policy on transport failures belongs to the caller.
type WithdrawalFlow struct {
	log    *logrus.Entry
	client *Client
	signer auth.Signer

	state WithdrawalState
	nonce uint64

	msg       message.Withdrawal
	signature []byte

	// nowMs is swapped out in tests.
	nowMs func() uint64
}

func NewWithdrawalFlow(client *Client, signer auth.Signer) *WithdrawalFlow {
	return &WithdrawalFlow{
		log:    logrus.StandardLogger().WithField("type", "orderly/withdrawal"),
		client: client,
		signer: signer,
		state:  StateIdle,
		nowMs:  auth.GetTimestampMs,
	}
}

func (f *WithdrawalFlow) State() WithdrawalState {
	return f.state
}

// FetchNonce requests a fresh withdrawal nonce. On failure the flow stays
// idle and can be retried by the caller; no nonce has been consumed yet
// from this flow's perspective.
func (f *WithdrawalFlow) FetchNonce() error {
	if f.state != StateIdle {
		return errors.Wrapf(ErrInvalidTransition, "cannot fetch nonce from %s", f.state)
	}

	nonce, err := f.client.GetWithdrawNonce()
	if err != nil {
		return err
	}

	f.nonce = nonce
	f.state = StateNonceRequested

	return nil
}

// EncodeMessage binds the withdrawal fields to the fetched nonce and the
// current wall clock. The message is immutable once encoded.
func (f *WithdrawalFlow) EncodeMessage(details WithdrawalDetails) error {
	if f.state != StateNonceRequested {
		return errors.Wrapf(ErrInvalidTransition, "cannot encode message from %s", f.state)
	}

	msg := message.Withdrawal{
		BrokerID:      details.BrokerID,
		ChainID:       details.ChainID,
		Receiver:      details.Receiver,
		Token:         details.Token,
		Amount:        details.Amount,
		WithdrawNonce: f.nonce,
		Timestamp:     f.nowMs(),
	}

	// Encode up front so malformed fields surface here, not at signing.
	if _, err := msg.Encode(); err != nil {
		return err
	}

	f.msg = msg
	f.state = StateMessageEncoded

	return nil
}

// SignMessage signs the encoded message's digest.
func (f *WithdrawalFlow) SignMessage() error {
	if f.state != StateMessageEncoded {
		return errors.Wrapf(ErrInvalidTransition, "cannot sign from %s", f.state)
	}

	digest, err := f.msg.Digest()
	if err != nil {
		return err
	}

	signature, err := f.signer.Sign(digest[:])
	if err != nil {
		return err
	}

	f.signature = signature
	f.state = StateSigned

	return nil
}

// Submit transmits the message fields and signature. An accepted request
// consumes the nonce remotely; a rejection is surfaced verbatim and also
// ends the flow, since the nonce can no longer be trusted.
func (f *WithdrawalFlow) Submit() error {
	if f.state != StateSigned {
		return errors.Wrapf(ErrInvalidTransition, "cannot submit from %s", f.state)
	}

	f.state = StateSubmitted

	withdrawID, err := f.client.SubmitWithdrawRequest(WithdrawRequest{
		Message: WithdrawMessagePayload{
			BrokerID:      f.msg.BrokerID,
			ChainID:       f.msg.ChainID,
			ChainType:     chainTypeSolana,
			Receiver:      base58.Encode(f.msg.Receiver),
			Token:         f.msg.Token,
			Amount:        f.msg.Amount,
			WithdrawNonce: f.msg.WithdrawNonce,
			Timestamp:     f.msg.Timestamp,
		},
		Signature:   hex.EncodeToString(f.signature),
		UserAddress: base58.Encode(f.signer.Public()),
	})
	if err != nil {
		f.state = StateRejected
		return err
	}

	f.state = StateAccepted

	f.log.
		WithField("withdraw_id", withdrawID).
		WithField("nonce", f.msg.WithdrawNonce).
		Debug("withdrawal accepted")

	return nil
}

// Withdraw runs a complete withdrawal flow.
func Withdraw(client *Client, signer auth.Signer, details WithdrawalDetails) (*WithdrawalFlow, error) {
	flow := NewWithdrawalFlow(client, signer)

	for _, step := range []func() error{
		flow.FetchNonce,
		func() error { return flow.EncodeMessage(details) },
		flow.SignMessage,
		flow.Submit,
	} {
		if err := step(); err != nil {
			return flow, err
		}
	}

	return flow, nil
}
