package vault

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/orderlynetwork/orderly-connector-go/pkg/solana"
	"github.com/orderlynetwork/orderly-connector-go/pkg/solana/system"
	"github.com/orderlynetwork/orderly-connector-go/pkg/solana/token"
)

// depositAccounts holds every derived account a deposit instruction touches.
type depositAccounts struct {
	vaultAuthority    ed25519.PublicKey
	allowedBroker     ed25519.PublicKey
	allowedToken      ed25519.PublicKey
	oappConfig        ed25519.PublicKey
	peer              ed25519.PublicKey
	enforcedOptions   ed25519.PublicKey
	nonce             ed25519.PublicKey
	sendLibConfig     ed25519.PublicKey
	defaultSendLib    ed25519.PublicKey
	sendLibInfo       ed25519.PublicKey
	endpointSettings  ed25519.PublicKey
	ulnSettings       ed25519.PublicKey
	sendConfig        ed25519.PublicKey
	defaultSendConfig ed25519.PublicKey
	executorConfig    ed25519.PublicKey
	priceFeedConfig   ed25519.PublicKey
	dvnConfig         ed25519.PublicKey
	eventAuthority    ed25519.PublicKey
	ulnEventAuthority ed25519.PublicKey

	userTokenAccount  ed25519.PublicKey
	vaultTokenAccount ed25519.PublicKey
}

// deriveDepositAccounts derives the full account set for a deposit routed to
// dstEid, for the given broker and token hashes.
func deriveDepositAccounts(depositor, mint ed25519.PublicKey, brokerHash, tokenHash [32]byte, dstEid uint32) (*depositAccounts, error) {
	var accounts depositAccounts

	for _, derivation := range []struct {
		target *ed25519.PublicKey
		derive func() (ed25519.PublicKey, error)
		name   string
	}{
		{&accounts.vaultAuthority, GetVaultAuthority, "vault authority"},
		{&accounts.allowedBroker, func() (ed25519.PublicKey, error) { return GetAllowedBroker(brokerHash) }, "allowed broker"},
		{&accounts.allowedToken, func() (ed25519.PublicKey, error) { return GetAllowedToken(tokenHash) }, "allowed token"},
		{&accounts.oappConfig, GetOAppConfig, "oapp config"},
		{&accounts.peer, func() (ed25519.PublicKey, error) { return GetPeer(dstEid) }, "peer"},
		{&accounts.enforcedOptions, func() (ed25519.PublicKey, error) { return GetEnforcedOptions(dstEid) }, "enforced options"},
		{&accounts.nonce, func() (ed25519.PublicKey, error) { return GetNonceAccount(dstEid) }, "nonce"},
		{&accounts.sendLibConfig, func() (ed25519.PublicKey, error) { return GetSendLibConfig(dstEid) }, "send lib config"},
		{&accounts.defaultSendLib, func() (ed25519.PublicKey, error) { return GetDefaultSendLib(dstEid) }, "default send lib"},
		{&accounts.sendLibInfo, GetSendLibInfo, "send lib info"},
		{&accounts.endpointSettings, GetEndpointSettings, "endpoint settings"},
		{&accounts.ulnSettings, GetUlnSettings, "uln settings"},
		{&accounts.sendConfig, func() (ed25519.PublicKey, error) { return GetSendConfig(dstEid) }, "send config"},
		{&accounts.defaultSendConfig, func() (ed25519.PublicKey, error) { return GetDefaultSendConfig(dstEid) }, "default send config"},
		{&accounts.executorConfig, GetExecutorConfig, "executor config"},
		{&accounts.priceFeedConfig, GetPriceFeedConfig, "price feed config"},
		{&accounts.dvnConfig, GetDVNConfig, "dvn config"},
		{&accounts.eventAuthority, GetEventAuthority, "event authority"},
		{&accounts.ulnEventAuthority, GetUlnEventAuthority, "uln event authority"},
	} {
		derived, err := derivation.derive()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive %s", derivation.name)
		}
		*derivation.target = derived
	}

	var err error
	accounts.userTokenAccount, err = token.GetAssociatedAccount(depositor, mint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive depositor token account")
	}

	accounts.vaultTokenAccount, err = token.GetAssociatedAccount(accounts.vaultAuthority, mint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive vault token account")
	}

	return &accounts, nil
}

// namedMetas returns the instruction's declared accounts in the order the
// vault program expects.
func (a *depositAccounts) namedMetas(depositor, mint ed25519.PublicKey) []solana.AccountMeta {
	return []solana.AccountMeta{
		solana.NewAccountMeta(a.userTokenAccount, false),
		solana.NewReadonlyAccountMeta(a.vaultAuthority, false),
		solana.NewAccountMeta(a.vaultTokenAccount, false),
		solana.NewReadonlyAccountMeta(mint, false),
		solana.NewAccountMeta(depositor, true),
		solana.NewReadonlyAccountMeta(a.peer, false),
		solana.NewReadonlyAccountMeta(a.enforcedOptions, false),
		solana.NewReadonlyAccountMeta(a.oappConfig, false),
		solana.NewReadonlyAccountMeta(a.allowedBroker, false),
		solana.NewReadonlyAccountMeta(a.allowedToken, false),
		solana.NewReadonlyAccountMeta(token.AssociatedTokenAccountProgramKey, false),
		solana.NewReadonlyAccountMeta(system.ProgramKey[:], false),
		solana.NewReadonlyAccountMeta(token.ProgramKey, false),
	}
}

// remainingAccountSpec is one entry of the messaging tail: the key it
// resolves to and its access flags.
type remainingAccountSpec struct {
	key      func(a *depositAccounts, depositor ed25519.PublicKey) ed25519.PublicKey
	writable bool
	signer   bool
}

func programEntry(key *ed25519.PublicKey) remainingAccountSpec {
	return remainingAccountSpec{key: func(*depositAccounts, ed25519.PublicKey) ed25519.PublicKey {
		return *key
	}}
}

func accountEntry(field func(*depositAccounts) ed25519.PublicKey) remainingAccountSpec {
	return remainingAccountSpec{key: func(a *depositAccounts, _ ed25519.PublicKey) ed25519.PublicKey {
		return field(a)
	}}
}

func writableEntry(field func(*depositAccounts) ed25519.PublicKey) remainingAccountSpec {
	entry := accountEntry(field)
	entry.writable = true
	return entry
}

// depositRemainingAccountsV1 is version 1 of the remaining-accounts tail
// appended to every deposit instruction.
//
// The ordering and membership below are a wire contract with the vault
// program's LayerZero send path. It cannot be reconstructed from local
// rules, so any change must be validated against known-good fixtures.
// The endpoint program and the price feed pair appear twice on purpose.
var depositRemainingAccountsV1 = []remainingAccountSpec{
	programEntry(&EndpointProgramKey),
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.oappConfig }),
	programEntry(&SendLibProgramKey),
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.sendLibConfig }),
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.defaultSendLib }),
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.sendLibInfo }),
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.endpointSettings }),
	writableEntry(func(a *depositAccounts) ed25519.PublicKey { return a.nonce }),
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.eventAuthority }),
	programEntry(&EndpointProgramKey),
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.ulnSettings }),
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.sendConfig }),
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.defaultSendConfig }),
	{
		key:    func(_ *depositAccounts, depositor ed25519.PublicKey) ed25519.PublicKey { return depositor },
		signer: true,
	},
	programEntry(&TreasuryProgramKey),
	{key: func(*depositAccounts, ed25519.PublicKey) ed25519.PublicKey { return system.ProgramKey[:] }},
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.ulnEventAuthority }),
	programEntry(&SendLibProgramKey),
	programEntry(&ExecutorProgramKey),
	writableEntry(func(a *depositAccounts) ed25519.PublicKey { return a.executorConfig }),
	programEntry(&PriceFeedProgramKey),
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.priceFeedConfig }),
	programEntry(&DVNProgramKey),
	writableEntry(func(a *depositAccounts) ed25519.PublicKey { return a.dvnConfig }),
	programEntry(&PriceFeedProgramKey),
	accountEntry(func(a *depositAccounts) ed25519.PublicKey { return a.priceFeedConfig }),
}

// remainingMetas resolves depositRemainingAccountsV1 against the derived
// account set.
func (a *depositAccounts) remainingMetas(depositor ed25519.PublicKey) []solana.AccountMeta {
	metas := make([]solana.AccountMeta, len(depositRemainingAccountsV1))
	for i, entry := range depositRemainingAccountsV1 {
		key := entry.key(a, depositor)
		if entry.writable {
			metas[i] = solana.NewAccountMeta(key, entry.signer)
		} else {
			metas[i] = solana.NewReadonlyAccountMeta(key, entry.signer)
		}
	}

	return metas
}
