package budget

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{name: "valid", entry: Entry{Month: "2024-03", Amount: decimal.NewFromInt(2000)}},
		{name: "fractional amount", entry: Entry{Month: "1999-12", Amount: decimal.RequireFromString("0.01")}},
		{name: "empty month", entry: Entry{Month: "", Amount: decimal.NewFromInt(1)}, wantErr: ErrInvalidMonth},
		{name: "month 13", entry: Entry{Month: "2024-13", Amount: decimal.NewFromInt(1)}, wantErr: ErrInvalidMonth},
		{name: "single digit month", entry: Entry{Month: "2024-3", Amount: decimal.NewFromInt(1)}, wantErr: ErrInvalidMonth},
		{name: "full date", entry: Entry{Month: "2024-03-01", Amount: decimal.NewFromInt(1)}, wantErr: ErrInvalidMonth},
		{name: "signed month", entry: Entry{Month: "2024-+3", Amount: decimal.NewFromInt(1)}, wantErr: ErrInvalidMonth},
		{name: "signed year", entry: Entry{Month: "+024-03", Amount: decimal.NewFromInt(1)}, wantErr: ErrInvalidMonth},
		{name: "negative year", entry: Entry{Month: "-001-03", Amount: decimal.NewFromInt(1)}, wantErr: ErrInvalidMonth},
		{name: "year zero", entry: Entry{Month: "0000-01", Amount: decimal.NewFromInt(1)}, wantErr: ErrInvalidMonth},
		{name: "zero amount", entry: Entry{Month: "2024-03", Amount: decimal.Zero}, wantErr: ErrInvalidAmount},
		{name: "negative amount", entry: Entry{Month: "2024-03", Amount: decimal.NewFromInt(-5)}, wantErr: ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.entry)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))
		})
	}
}
