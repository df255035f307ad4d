package wallet

import (
	"errors"
	"fmt"
	"net"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// CodeUserRejected is the EIP-1193 error code for a declined request
const CodeUserRejected = 4001

var (
	// ErrProviderMissing means no wallet provider is configured or reachable
	ErrProviderMissing = errors.New("wallet provider not found")
	// ErrUserRejected means the user declined the request in their wallet
	ErrUserRejected = errors.New("user rejected the request")
)

// ProviderError is any other failure reported by the wallet provider
type ProviderError struct {
	Op   string
	Code int
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: provider error %d: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// classify maps transport and JSON-RPC failures onto the wallet error taxonomy
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrProviderMissing) {
		return err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Errorf("%s: %w: %v", op, ErrProviderMissing, err)
	}

	var rpcErr gethrpc.Error
	if errors.As(err, &rpcErr) {
		if rpcErr.ErrorCode() == CodeUserRejected {
			return fmt.Errorf("%s: %w", op, ErrUserRejected)
		}
		return &ProviderError{Op: op, Code: rpcErr.ErrorCode(), Err: err}
	}

	return &ProviderError{Op: op, Err: err}
}
