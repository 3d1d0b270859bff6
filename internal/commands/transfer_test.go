package commands

import (
	"bytes"
	"testing"

	"github.com/pennywise/pennywise/pkg/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintImportResult(t *testing.T) {
	var b bytes.Buffer

	err := printImportResult(&b, transfer.ImportResult{
		SuccessCount: 4,
		Errors:       []transfer.RowError{{Row: 3, Reason: "amount must be positive"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Imported 4 rows successfully.\nSkipped 1 rows due to errors:\nRow 3: amount must be positive\n", b.String())
}

func TestRootCommand(t *testing.T) {
	t.Run("should reject an unknown table before touching the database", func(t *testing.T) {
		root := NewRootCommand()
		root.SetArgs([]string{"export", "savings", "-"})
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})

		err := root.Execute()

		assert.ErrorIs(t, err, transfer.ErrUnknownTable)
	})

	t.Run("should require a file for import", func(t *testing.T) {
		root := NewRootCommand()
		root.SetArgs([]string{"import", "expenses"})
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})

		err := root.Execute()

		assert.Error(t, err)
	})
}
