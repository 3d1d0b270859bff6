package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults when config file is missing", func(t *testing.T) {
		// when
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.NoError(t, err)
		assert.Equal(t, ":8181", cfg.Server.Addr)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "pennywise", cfg.Database.Schema)
		assert.Equal(t, []string{"Yateesh", "Prasanna"}, cfg.Entry.Persons)
		assert.Equal(t, "Yateesh", cfg.Entry.DefaultPerson)
		assert.Contains(t, cfg.Entry.ExpenseCategories, "Groceries")
		assert.Contains(t, cfg.Entry.RevenueSources, "Salary")
		assert.False(t, cfg.Sheets.Enabled())
	})

	t.Run("should override defaults with yaml file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "application.yaml")
		content := []byte("db:\n  host: db.internal\n  port: 6543\nentry:\n  persons: [Ann, Bob]\n  defaultperson: \"\"\nsheets:\n  spreadsheetid: abc\n")
		require.NoError(t, os.WriteFile(path, content, 0o600))

		// when
		cfg, err := Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 6543, cfg.Database.Port)
		assert.Equal(t, []string{"Ann", "Bob"}, cfg.Entry.Persons)
		assert.Equal(t, "Ann", cfg.Entry.DefaultPerson)
		assert.True(t, cfg.Sheets.Enabled())
	})

	t.Run("should override file values with environment variables", func(t *testing.T) {
		// given
		t.Setenv("PENNYWISE_DB_NAME", "ledger_test")
		t.Setenv("PENNYWISE_SERVER_ADDR", ":9999")

		// when
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.NoError(t, err)
		assert.Equal(t, "ledger_test", cfg.Database.Name)
		assert.Equal(t, ":9999", cfg.Server.Addr)
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "application.yaml")
		require.NoError(t, os.WriteFile(path, []byte("db: [unterminated"), 0o600))

		// when
		_, err := Load(path)

		// then
		assert.Error(t, err)
	})
}
