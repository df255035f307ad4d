package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		strict  bool
		wantErr bool
	}{
		{name: "checksummed", input: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{name: "lower case", input: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"},
		{name: "upper case hex", input: "0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"},
		{name: "surrounding spaces", input: "  0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed "},
		{name: "lower case strict", input: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", strict: true},
		{name: "checksummed strict", input: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", strict: true},
		{name: "bad checksum strict", input: "0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", strict: true, wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "too short", input: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1bea", wantErr: true},
		{name: "too long", input: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed00", wantErr: true},
		{name: "missing prefix", input: "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed00", wantErr: true},
		{name: "non hex", input: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beagg", wantErr: true},
		{name: "ens name", input: "vitalik.eth", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.input, tt.strict)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[Field]string{
		FieldLastName:  "Last name is required",
		FieldFirstName: "First name is required",
	}}
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, strings.HasSuffix(err.Error(), "First name is required; Last name is required"))
}
