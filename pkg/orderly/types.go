package orderly

// envelope is the common wrapper around settlement service responses.
type envelope struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Code      int64  `json:"code"`
	Message   string `json:"message"`
	Timestamp uint64 `json:"timestamp"`
}

type withdrawNonceData struct {
	WithdrawNonce string `json:"withdrawNonce"`
}

type registrationNonceData struct {
	RegistrationNonce string `json:"registrationNonce"`
}

// WithdrawMessagePayload is the plain-field echo of a signed withdrawal
// message. The service re-encodes and re-hashes these fields to verify the
// attached signature, so they must match the signed encoding exactly.
type WithdrawMessagePayload struct {
	BrokerID      string `json:"brokerId"`
	ChainID       uint64 `json:"chainId"`
	ChainType     string `json:"chainType"`
	Receiver      string `json:"receiver"`
	Token         string `json:"token"`
	Amount        uint64 `json:"amount"`
	WithdrawNonce uint64 `json:"withdrawNonce"`
	Timestamp     uint64 `json:"timestamp"`
}

// WithdrawRequest is the POST /v1/withdraw_request body.
type WithdrawRequest struct {
	Message     WithdrawMessagePayload `json:"message"`
	Signature   string                 `json:"signature"`
	UserAddress string                 `json:"userAddress"`
}

type withdrawResponseData struct {
	WithdrawID uint64 `json:"withdraw_id"`
}

// RegisterAccountMessage is the plain-field echo of a signed registration
// message.
type RegisterAccountMessage struct {
	BrokerID          string `json:"brokerId"`
	ChainID           uint64 `json:"chainId"`
	ChainType         string `json:"chainType"`
	Timestamp         uint64 `json:"timestamp"`
	RegistrationNonce string `json:"registrationNonce"`
}

// RegisterAccountRequest is the POST /v1/register_account body.
type RegisterAccountRequest struct {
	Message     RegisterAccountMessage `json:"message"`
	Signature   string                 `json:"signature"`
	UserAddress string                 `json:"userAddress"`
}

type registerAccountData struct {
	AccountID string `json:"account_id"`
}

// chainTypeSolana marks Solana-origin messages in REST payloads.
const chainTypeSolana = "SOL"
