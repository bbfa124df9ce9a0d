// Package neoledger implements the wallet client port against the ledger's
// JSON-RPC wallet service. The burn is a two-call exchange: the wallet service
// prepares and signs the transaction (no network side effect yet), then the
// signed transaction is broadcast. The split matters for failure semantics:
// a signing failure is clean and retryable, a broadcast failure is ambiguous
// because the ledger may have accepted the transaction even though the call
// errored. The transaction identifier is derived at signing time, so every
// ambiguous failure carries the identifier needed for reconciliation.
package neoledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"redemption/internal/core/ports"
	"redemption/internal/pkg/errs"
)

// unknownTransactionCode is returned by the wallet service when the queried
// transaction is not known to the ledger.
const unknownTransactionCode = -100

// Client is a JSON-RPC wallet service client implementing ports.WalletClient.
type Client struct {
	rpcURL     string
	httpClient *http.Client
}

// NewClient creates a wallet service client. Every call is bounded by the
// given timeout in addition to any deadline on the caller's context.
func NewClient(rpcURL string, timeout time.Duration) *Client {
	return &Client{
		rpcURL: rpcURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// rpcRequest is a JSON-RPC request.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

// rpcResponse is a JSON-RPC response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// rpcError is a JSON-RPC error.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// call makes one JSON-RPC call.
func (c *Client) call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}

	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var rpcResp rpcResponse
	if err = json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	return rpcResp.Result, nil
}

// QueryBalance returns the account's burnable balance of the given token.
// Amounts travel as decimal strings to avoid JSON number precision loss.
func (c *Client) QueryBalance(ctx context.Context, accountID, tokenID string) (int64, error) {
	result, err := c.call(ctx, "getwalletbalance", accountID, tokenID)
	if err != nil {
		return 0, errs.NewExternalCallError("neoledger.QueryBalance", errs.PhaseBalance, err)
	}

	var payload struct {
		Balance string `json:"balance"`
	}
	if err = json.Unmarshal(result, &payload); err != nil {
		return 0, errs.NewExternalCallError("neoledger.QueryBalance", errs.PhaseBalance, err)
	}

	balance, err := strconv.ParseInt(payload.Balance, 10, 64)
	if err != nil {
		return 0, errs.NewExternalCallError("neoledger.QueryBalance", errs.PhaseBalance,
			fmt.Errorf("parse balance %q: %w", payload.Balance, err))
	}

	return balance, nil
}

// Burn signs and broadcasts a burn of amount tokens from the account.
// Returns the ledger transaction identifier on success.
//
// A failure during preparesignedburn is tagged PhaseSigning: nothing reached
// the network and the caller may retry cleanly. A failure during
// sendrawtransaction is tagged PhaseBroadcast and carries the transaction
// identifier derived at signing time: the outcome is ambiguous and must be
// reconciled before any retry.
func (c *Client) Burn(ctx context.Context, accountID, tokenID string, amount int64) (string, error) {
	result, err := c.call(ctx, "preparesignedburn",
		accountID, tokenID, strconv.FormatInt(amount, 10))
	if err != nil {
		return "", errs.NewExternalCallError("neoledger.Burn", errs.PhaseSigning, err)
	}

	var signed struct {
		TransactionID     string `json:"transactionId"`
		SignedTransaction string `json:"signedTransaction"`
	}
	if err = json.Unmarshal(result, &signed); err != nil {
		return "", errs.NewExternalCallError("neoledger.Burn", errs.PhaseSigning, err)
	}
	if signed.TransactionID == "" || signed.SignedTransaction == "" {
		return "", errs.NewExternalCallError("neoledger.Burn", errs.PhaseSigning,
			fmt.Errorf("wallet service returned incomplete signing result"))
	}

	if _, err = c.call(ctx, "sendrawtransaction", signed.SignedTransaction); err != nil {
		return "", errs.NewExternalCallErrorWithTransaction(
			"neoledger.Burn", errs.PhaseBroadcast, signed.TransactionID, err)
	}

	return signed.TransactionID, nil
}

// TransactionStatus polls the ledger for a transaction's state. A ledger that
// does not know the transaction yields TransactionStateNotFound without an
// error: not-found is an answer, not a failure.
func (c *Client) TransactionStatus(ctx context.Context, transactionID string) (ports.TransactionState, error) {
	result, err := c.call(ctx, "gettransactionstatus", transactionID)
	if err != nil {
		var callErr *rpcError
		if errors.As(err, &callErr) && callErr.Code == unknownTransactionCode {
			return ports.TransactionStateNotFound, nil
		}
		return ports.TransactionStateNotFound,
			errs.NewExternalCallError("neoledger.TransactionStatus", errs.PhaseConfirm, err)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err = json.Unmarshal(result, &payload); err != nil {
		return ports.TransactionStateNotFound,
			errs.NewExternalCallError("neoledger.TransactionStatus", errs.PhaseConfirm, err)
	}

	switch payload.Status {
	case "pending":
		return ports.TransactionStatePending, nil
	case "confirmed":
		return ports.TransactionStateConfirmed, nil
	case "faulted":
		return ports.TransactionStateFaulted, nil
	default:
		return ports.TransactionStateNotFound,
			errs.NewExternalCallError("neoledger.TransactionStatus", errs.PhaseConfirm,
				fmt.Errorf("unknown transaction status %q", payload.Status))
	}
}
