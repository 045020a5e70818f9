// Package message implements the canonical message encodings that the
// Orderly Network verifies on the settlement side. Every field occupies a
// 32 byte word, with integers written big-endian and left padded, so the
// resulting byte string matches the solidity abi.encode() of the same tuple.
package message

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// WordSize is the width of every encoded field.
const WordSize = 32

const (
	withdrawalWords   = 7
	registrationWords = 4
)

var ErrInvalidReceiver = errors.New("receiver must be a 32 byte public key")

// Keccak256 returns the legacy Keccak-256 digest of data. This is the hash
// the EVM uses, not the NIST standardized SHA3-256.
func Keccak256(data []byte) [WordSize]byte {
	var digest [WordSize]byte

	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(digest[:0])

	return digest
}

// HashBrokerID hashes a broker identifier string into its on-chain word.
func HashBrokerID(brokerID string) [WordSize]byte {
	return Keccak256([]byte(brokerID))
}

// HashTokenSymbol hashes a token symbol string into its on-chain word.
func HashTokenSymbol(symbol string) [WordSize]byte {
	return Keccak256([]byte(symbol))
}

// Withdrawal is a withdrawal request to be signed by the account owner and
// verified by the Orderly settlement contracts.
type Withdrawal struct {
	BrokerID      string
	ChainID       uint64
	Receiver      ed25519.PublicKey
	Token         string
	Amount        uint64
	WithdrawNonce uint64
	Timestamp     uint64
}

// Encode returns the canonical 224 byte encoding of the withdrawal. Field
// order is fixed: broker hash, chain id, receiver, token hash, amount,
// withdraw nonce, timestamp.
func (m Withdrawal) Encode() ([]byte, error) {
	if len(m.Receiver) != ed25519.PublicKeySize {
		return nil, ErrInvalidReceiver
	}

	buf := make([]byte, 0, withdrawalWords*WordSize)

	brokerHash := HashBrokerID(m.BrokerID)
	tokenHash := HashTokenSymbol(m.Token)

	buf = append(buf, brokerHash[:]...)
	buf = appendUintWord(buf, m.ChainID)
	buf = append(buf, m.Receiver...)
	buf = append(buf, tokenHash[:]...)
	buf = appendUintWord(buf, m.Amount)
	buf = appendUintWord(buf, m.WithdrawNonce)
	buf = appendUintWord(buf, m.Timestamp)

	return buf, nil
}

// Digest returns the Keccak-256 hash of the encoded withdrawal. This is the
// exact byte string submitted to the signer.
func (m Withdrawal) Digest() ([WordSize]byte, error) {
	encoded, err := m.Encode()
	if err != nil {
		return [WordSize]byte{}, err
	}

	return Keccak256(encoded), nil
}

// Registration is an account registration request.
type Registration struct {
	BrokerID          string
	ChainID           uint64
	Timestamp         uint64
	RegistrationNonce uint64
}

// Encode returns the canonical 128 byte encoding of the registration. Field
// order is fixed: broker hash, chain id, timestamp, registration nonce.
func (m Registration) Encode() []byte {
	buf := make([]byte, 0, registrationWords*WordSize)

	brokerHash := HashBrokerID(m.BrokerID)

	buf = append(buf, brokerHash[:]...)
	buf = appendUintWord(buf, m.ChainID)
	buf = appendUintWord(buf, m.Timestamp)
	buf = appendUintWord(buf, m.RegistrationNonce)

	return buf
}

// Digest returns the Keccak-256 hash of the encoded registration.
func (m Registration) Digest() [WordSize]byte {
	return Keccak256(m.Encode())
}

func appendUintWord(buf []byte, v uint64) []byte {
	var word [WordSize]byte
	binary.BigEndian.PutUint64(word[WordSize-8:], v)
	return append(buf, word[:]...)
}
