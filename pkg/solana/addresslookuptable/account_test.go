package address_lookup_table

import (
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAccountData(t *testing.T, addressCount int) ([]byte, ed25519.PublicKey) {
	authority, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	data := make([]byte, metadataSize+addressCount*ed25519.PublicKeySize)
	binary.LittleEndian.PutUint32(data[0:], altDescriminator)
	binary.LittleEndian.PutUint64(data[4:], 12345)  // deactivation slot
	binary.LittleEndian.PutUint64(data[12:], 67890) // last extended slot
	data[20] = 7                                    // last extended slot start index
	data[21] = 1                                    // authority option
	copy(data[22:], authority)

	for i := 0; i < addressCount; i++ {
		data[metadataSize+i*ed25519.PublicKeySize] = byte(i + 1)
	}

	return data, authority
}

func TestAddressLookupTableAccount_Unmarshal(t *testing.T) {
	data, authority := makeAccountData(t, 3)

	var account AddressLookupTableAccount
	require.NoError(t, account.Unmarshal(data))

	assert.EqualValues(t, 12345, account.DeactivationSlot)
	assert.EqualValues(t, 67890, account.LastExtendedSlot)
	assert.EqualValues(t, 7, account.LastExtendedSlotStartIndex)
	assert.EqualValues(t, authority, account.Authority)

	require.Len(t, account.Addresses, 3)
	for i, address := range account.Addresses {
		assert.EqualValues(t, byte(i+1), address[0])
	}
}

func TestAddressLookupTableAccount_Invalid(t *testing.T) {
	var account AddressLookupTableAccount

	// Truncated metadata
	assert.Equal(t, ErrInvalidAccountSize, account.Unmarshal(make([]byte, metadataSize-1)))

	// Wrong discriminator
	data, _ := makeAccountData(t, 1)
	data[0] = 42
	assert.Equal(t, ErrInvalidAccountType, account.Unmarshal(data))

	// Partial trailing address
	data, _ = makeAccountData(t, 2)
	assert.Equal(t, ErrInvalidAccountSize, account.Unmarshal(data[:len(data)-5]))
}
