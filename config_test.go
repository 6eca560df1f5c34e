package webmd_test

import (
	"testing"

	"github.com/fwojciec/webmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := webmd.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "_", cfg.EmDelimiter)
	assert.Equal(t, "**", cfg.StrongDelimiter)
	assert.Equal(t, "*", cfg.BulletMarker)
	assert.Equal(t, "```", cfg.Fence)
	assert.Equal(t, webmd.TableFlatten, cfg.Tables)
	assert.False(t, cfg.NumberOrderedLists)
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	t.Run("zero config becomes default", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, webmd.DefaultConfig(), webmd.Config{}.WithDefaults())
	})

	t.Run("keeps set fields", func(t *testing.T) {
		t.Parallel()

		cfg := webmd.Config{Fence: "~~~", Tables: webmd.TableGrid, NumberOrderedLists: true}.WithDefaults()

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "~~~", cfg.Fence)
		assert.Equal(t, webmd.TableGrid, cfg.Tables)
		assert.True(t, cfg.NumberOrderedLists)
		assert.Equal(t, "_", cfg.EmDelimiter)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*webmd.Config)
	}{
		{"emphasis delimiter", func(c *webmd.Config) { c.EmDelimiter = "~" }},
		{"strong delimiter", func(c *webmd.Config) { c.StrongDelimiter = "*" }},
		{"bullet marker", func(c *webmd.Config) { c.BulletMarker = "#" }},
		{"fence", func(c *webmd.Config) { c.Fence = "``" }},
		{"table mode", func(c *webmd.Config) { c.Tables = "html" }},
	}

	for _, tt := range tests {
		t.Run("rejects invalid "+tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := webmd.DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, webmd.EINVALID, webmd.ErrorCode(err))
		})
	}

	t.Run("accepts alternative delimiters", func(t *testing.T) {
		t.Parallel()

		cfg := webmd.Config{
			EmDelimiter:     "*",
			StrongDelimiter: "__",
			BulletMarker:    "-",
			Fence:           "~~~",
			Tables:          webmd.TableGrid,
		}

		assert.NoError(t, cfg.Validate())
	})
}
