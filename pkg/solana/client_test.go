package solana

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRPCServer answers each JSON RPC method with a canned result.
func newTestRPCServer(t *testing.T, results map[string]string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, ok := results[req.Method]
		require.True(t, ok, req.Method)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, result)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestClient_GetAccountInfo_EmptyData(t *testing.T) {
	server := newTestRPCServer(t, map[string]string{
		"getAccountInfo": `{"context":{"slot":1},"value":{"lamports":1,"owner":"11111111111111111111111111111111","data":[],"executable":false}}`,
	})

	client := New(server.URL)

	keys := generateKeys(t, 1)
	_, err := client.GetAccountInfo(public(keys[0]), CommitmentFinalized)
	assert.Error(t, err)
}

func TestClient_SimulateTransaction_EmptyReturnData(t *testing.T) {
	server := newTestRPCServer(t, map[string]string{
		"simulateTransaction": `{"context":{"slot":1},"value":{"err":null,"logs":[],"returnData":{"data":[],"programId":"11111111111111111111111111111111"}}}`,
	})

	client := New(server.URL)

	keys := generateKeys(t, 2)
	txn := NewTransaction(
		public(keys[0]),
		NewInstruction(public(keys[1]), []byte{0}, NewAccountMeta(public(keys[0]), true)),
	)

	_, err := client.SimulateTransaction(txn)
	assert.Error(t, err)
}
