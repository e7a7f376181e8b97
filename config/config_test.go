package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {

	cfg, err := Load([]string{"listings.xlsx"})
	require.NoError(t, err)

	assert.Equal(t, "listings.xlsx", cfg.InputPath)
	assert.Equal(t, 1000.0, cfg.PriceCeiling)
	assert.Equal(t, 50, cfg.HistogramBins)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, 5, cfg.PreviewRows)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.True(t, cfg.RenderCharts)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EDA_INPUT_PATH", "from-env.csv")
	t.Setenv("EDA_PRICE_CEILING", "500")
	t.Setenv("EDA_RENDER_CHARTS", "false")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", cfg.InputPath)
	assert.Equal(t, 500.0, cfg.PriceCeiling)
	assert.False(t, cfg.RenderCharts)
}

func TestLoadArgOverridesEnv(t *testing.T) {
	t.Setenv("EDA_INPUT_PATH", "from-env.csv")

	cfg, err := Load([]string{"from-arg.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "from-arg.xlsx", cfg.InputPath)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"no input", nil, nil},
		{"bad driver", map[string]string{"EDA_SOURCE_DRIVER": "oracle"}, nil},
		{"bad log level", map[string]string{"EDA_LOG_LEVEL": "loud"}, []string{"a.csv"}},
		{"zero bins", map[string]string{"EDA_HISTOGRAM_BINS": "0"}, []string{"a.csv"}},
		{"sqlite without dsn", map[string]string{"EDA_SOURCE_DRIVER": "sqlite"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "rental_db", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=rental_db sslmode=disable", cfg.DSN())

	cfg.SourceDSN = "file:listings.db"
	assert.Equal(t, "file:listings.db", cfg.DSN())
}
