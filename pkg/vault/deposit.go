package vault

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/orderlynetwork/orderly-connector-go/pkg/message"
	"github.com/orderlynetwork/orderly-connector-go/pkg/solana"
	address_lookup_table "github.com/orderlynetwork/orderly-connector-go/pkg/solana/addresslookuptable"
	compute_budget "github.com/orderlynetwork/orderly-connector-go/pkg/solana/computebudget"
	"github.com/orderlynetwork/orderly-connector-go/pkg/solana/token"
)

var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidAccountID    = errors.New("account id must be 32 hex encoded bytes")
	ErrFeeQuoteUnavailable = errors.New("delivery fee quote unavailable")
)

// Builder assembles partially signed deposit transactions. It never
// broadcasts; callers submit the returned transaction themselves.
type Builder struct {
	log    *logrus.Entry
	client solana.Client
	config Config
}

func NewBuilder(client solana.Client, config Config) *Builder {
	return &Builder{
		log:    logrus.StandardLogger().WithField("type", "vault/builder"),
		client: client,
		config: config,
	}
}

// NewBuilderFromConfig constructs a builder with an RPC client pointed at
// the configured endpoint.
func NewBuilderFromConfig(config Config) *Builder {
	return NewBuilder(solana.New(config.RPCEndpoint), config)
}

type buildOptions struct {
	dryRun bool
}

type BuildOption func(*buildOptions)

// WithDryRunFees skips the fee quote simulation and uses zero fees. The
// resulting transaction is rejected on chain, so this is only useful for
// inspecting transaction structure without network access.
func WithDryRunFees() BuildOption {
	return func(o *buildOptions) {
		o.dryRun = true
	}
}

// BuildDepositTransaction validates the request, derives the full account
// set, quotes the delivery fee, and returns a versioned transaction signed
// by the depositor. Validation failures happen before any network access.
func (b *Builder) BuildDepositTransaction(depositor ed25519.PrivateKey, amount uint64, accountIDHex string, opts ...BuildOption) (*solana.Transaction, error) {
	var options buildOptions
	for _, opt := range opts {
		opt(&options)
	}

	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	accountID, err := hex.DecodeString(accountIDHex)
	if err != nil || len(accountID) != 32 {
		return nil, ErrInvalidAccountID
	}

	depositorPub := depositor.Public().(ed25519.PublicKey)

	brokerHash := message.HashBrokerID(b.config.BrokerID)
	tokenHash := message.HashTokenSymbol(b.config.TokenSymbol)

	accounts, err := deriveDepositAccounts(depositorPub, b.config.TokenMint, brokerHash, tokenHash, b.config.DstEid)
	if err != nil {
		return nil, err
	}

	params := DepositParams{
		BrokerHash:  brokerHash,
		TokenHash:   tokenHash,
		TokenAmount: amount,
	}
	copy(params.AccountID[:], accountID)
	copy(params.UserAddress[:], depositorPub)

	var fee FeeQuote
	if !options.dryRun {
		fee, err = b.quoteDepositFee(depositorPub, accounts)
		if err != nil {
			return nil, err
		}
	}

	metas := accounts.namedMetas(depositorPub, b.config.TokenMint)
	metas = append(metas, accounts.remainingMetas(depositorPub)...)

	depositInstruction := solana.NewInstruction(
		ProgramKey,
		depositInstructionData(params, OAppSendParams{
			NativeFee:  fee.NativeFee,
			LzTokenFee: fee.LzTokenFee,
		}),
		metas...,
	)

	// A first time depositor has no token account for the mint yet. The
	// idempotent create is a no-op once it exists.
	createTokenAccount, _, err := token.CreateAssociatedTokenAccountIdempotent(depositorPub, depositorPub, b.config.TokenMint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build token account instruction")
	}

	tables, err := b.loadLookupTables()
	if err != nil {
		return nil, err
	}

	txn := solana.NewVersionedTransaction(
		depositorPub,
		tables,
		[]solana.Instruction{
			createTokenAccount,
			depositInstruction,
			compute_budget.SetComputeUnitLimit(depositComputeUnitLimit),
		},
	)

	blockhash, err := b.client.GetLatestBlockhash()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch latest blockhash")
	}
	txn.SetBlockhash(blockhash)

	if err := txn.Sign(depositor); err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	b.log.
		WithField("depositor", depositorPub).
		WithField("amount", amount).
		Debug("built deposit transaction")

	return &txn, nil
}

// loadLookupTables fetches the configured address lookup table, if any.
// The fetch is an extra network read but shrinks the serialized message
// considerably.
func (b *Builder) loadLookupTables() ([]solana.AddressLookupTable, error) {
	if len(b.config.LookupTable) == 0 {
		return nil, nil
	}

	info, err := b.client.GetAccountInfo(b.config.LookupTable, solana.CommitmentFinalized)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch lookup table")
	}

	var account address_lookup_table.AddressLookupTableAccount
	if err := account.Unmarshal(info.Data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal lookup table")
	}

	return []solana.AddressLookupTable{{
		PublicKey: b.config.LookupTable,
		Addresses: account.Addresses,
	}}, nil
}
