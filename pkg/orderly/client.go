// Package orderly talks to the Orderly settlement service's REST API and
// drives the withdrawal and registration flows against it.
package orderly

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/orderlynetwork/orderly-connector-go/pkg/auth"
)

const (
	withdrawNoncePath     = "/v1/withdraw_nonce"
	withdrawRequestPath   = "/v1/withdraw_request"
	registrationNoncePath = "/v1/registration_nonce"
	registerAccountPath   = "/v1/register_account"
)

// Client is a thin signed-request client for the settlement service. It
// performs no retries; retry policy belongs to the caller.
type Client struct {
	log     *logrus.Entry
	baseURL string
	http    *http.Client
	creds   auth.Credentials

	// nowMs is swapped out in tests.
	nowMs func() uint64
}

func NewClient(baseURL string, creds auth.Credentials) *Client {
	return NewClientWithHTTP(baseURL, creds, &http.Client{Timeout: 30 * time.Second})
}

func NewClientWithHTTP(baseURL string, creds auth.Credentials, httpClient *http.Client) *Client {
	return &Client{
		log:     logrus.StandardLogger().WithField("type", "orderly/client"),
		baseURL: baseURL,
		http:    httpClient,
		creds:   creds,
		nowMs:   auth.GetTimestampMs,
	}
}

// GetWithdrawNonce fetches a fresh single-use withdrawal nonce for the
// authenticated account. Every attempt consumes the previous nonce, so
// callers must fetch again after any aborted flow.
func (c *Client) GetWithdrawNonce() (uint64, error) {
	var data withdrawNonceData
	if err := c.do(http.MethodGet, withdrawNoncePath, nil, &data); err != nil {
		return 0, err
	}

	nonce, err := strconv.ParseUint(data.WithdrawNonce, 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrRemoteUnavailable, "malformed withdraw nonce in response")
	}

	return nonce, nil
}

// GetRegistrationNonce fetches a fresh registration nonce.
func (c *Client) GetRegistrationNonce() (uint64, error) {
	var data registrationNonceData
	if err := c.do(http.MethodGet, registrationNoncePath, nil, &data); err != nil {
		return 0, err
	}

	nonce, err := strconv.ParseUint(data.RegistrationNonce, 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrRemoteUnavailable, "malformed registration nonce in response")
	}

	return nonce, nil
}

// SubmitWithdrawRequest submits a signed withdrawal. A service rejection is
// returned as an *APIError with the service's code and message untouched.
func (c *Client) SubmitWithdrawRequest(req WithdrawRequest) (uint64, error) {
	var data withdrawResponseData
	if err := c.do(http.MethodPost, withdrawRequestPath, req, &data); err != nil {
		return 0, err
	}

	return data.WithdrawID, nil
}

// RegisterAccount submits a signed registration and returns the new
// account identifier.
func (c *Client) RegisterAccount(req RegisterAccountRequest) (string, error) {
	var data registerAccountData
	if err := c.do(http.MethodPost, registerAccountPath, req, &data); err != nil {
		return "", err
	}

	return data.AccountID, nil
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
	}

	timestamp := c.nowMs()
	headers, err := c.creds.RequestHeaders(timestamp, method, path, string(payload))
	if err != nil {
		return err
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(ErrRemoteUnavailable, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(ErrRemoteUnavailable, err.Error())
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Wrapf(ErrRemoteUnavailable, "unparseable response (http %d)", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		c.log.
			WithField("method", method).
			WithField("path", path).
			WithField("code", env.Code).
			Info("request rejected")

		return &APIError{
			HTTPStatus: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Message,
		}
	}

	if out != nil {
		var result struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &result); err != nil {
			return errors.Wrap(ErrRemoteUnavailable, "malformed response data")
		}
		if err := json.Unmarshal(result.Data, out); err != nil {
			return errors.Wrap(ErrRemoteUnavailable, "malformed response data")
		}
	}

	return nil
}
