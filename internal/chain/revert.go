package chain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// RevertError is a call rejected by the EVM, with its revert data when the node returns it.
type RevertError struct {
	Message string
	Data    []byte
	Reason  string
}

func (e *RevertError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("execution reverted: %s", e.Reason)
	}
	if len(e.Data) > 0 {
		return fmt.Sprintf("%s (data %s)", e.Message, hexutil.Encode(e.Data))
	}
	return e.Message
}

// IsRevert reports whether err carries a *RevertError.
func IsRevert(err error) bool {
	var revertErr *RevertError
	return errors.As(err, &revertErr)
}

func asRevertError(err error) error {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return err
	}

	revertErr := &RevertError{Message: err.Error()}
	switch data := dataErr.ErrorData().(type) {
	case string:
		if decoded, decErr := hexutil.Decode(data); decErr == nil {
			revertErr.Data = decoded
		}
	case []byte:
		revertErr.Data = data
	}
	if len(revertErr.Data) > 0 {
		if reason, unpackErr := abi.UnpackRevert(revertErr.Data); unpackErr == nil {
			revertErr.Reason = reason
		}
	}
	return revertErr
}
