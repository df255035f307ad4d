package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	// ErrValidation is matched by every field validation failure
	ErrValidation = errors.New("validation failed")
	// ErrNoTokens means there is nothing to transfer from step 2
	ErrNoTokens = errors.New("no tokens to transfer")
	// ErrBusy means a token fetch is already outstanding
	ErrBusy = errors.New("a fetch is already in progress")
)

// ValidationError carries a message per failing field
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	fields := make([]Field, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e.Fields[f])
	}
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

const (
	msgAddressFormat   = "Enter a valid address: 0x followed by 40 hex characters"
	msgAddressChecksum = "Address checksum does not match"
)

// ValidateAddress checks the 0x-prefixed 40 hex character format. Case is not
// significant unless strict is set, in which case mixed-case input must carry
// a valid EIP-55 checksum.
func ValidateAddress(s string, strict bool) error {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required"); err != nil {
		return errors.New("Address is required")
	}
	if err := validate.Var(s, "eth_addr"); err != nil {
		return errors.New(msgAddressFormat)
	}
	if strict && !isSingleCase(s[2:]) && common.HexToAddress(s).Hex() != s {
		return errors.New(msgAddressChecksum)
	}
	return nil
}

func isSingleCase(hex string) bool {
	return hex == strings.ToLower(hex) || hex == strings.ToUpper(hex)
}

func required(v string) bool {
	return validate.Var(strings.TrimSpace(v), "required") == nil
}
