package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, "database/propwell.db", cfg.Server.DatabasePath)
	assert.InDelta(t, 250, cfg.Analysis.VacancyCarryCost, 1e-9)
	assert.Equal(t, 10, cfg.Analysis.RecentLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("VACANCY_CARRY_COST", "400")
	t.Setenv("RECENT_LIMIT", "25")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.InDelta(t, 400, cfg.Analysis.VacancyCarryCost, 1e-9)
	assert.Equal(t, 25, cfg.Analysis.RecentLimit)
}
