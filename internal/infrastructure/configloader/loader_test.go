package configloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
endpoints:
  polkadot: ["ws://relay:9944"]
  pah: ["http://pah:8545"]
  pcl: ["http://pcl:8545"]
  pbh: ["http://pbh:8545"]
  ppl: ["http://ppl:8545"]
  pct: ["http://pct:8545"]
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "polkadot", cfg.Network.Relay)
	assert.Equal(t, 10*time.Second, cfg.RpcClient.DialTimeout())
	assert.Equal(t, 15*time.Second, cfg.RpcClient.CallTimeout())
	assert.Equal(t, 20, cfg.RpcClient.RateLimit)
	assert.Equal(t, 5, cfg.RpcClient.BurstLimit)
	assert.Equal(t, 256, cfg.RpcClient.MaxKeysPerCall)
	assert.Equal(t, 4, cfg.RpcClient.MaxConcurrentDials)
	assert.Equal(t, time.Hour, cfg.Accounts.TTL())
	assert.Equal(t, 10*time.Minute, cfg.Accounts.CleanupInterval())
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown relay",
			yaml:    "network: {relay: rococo}",
			wantErr: `unknown relay network "rococo"`,
		},
		{
			name:    "chain outside network",
			yaml:    "network: {relay: kusama, chains: [pah]}\nendpoints: {pah: [http://x]}",
			wantErr: `chain "pah" is not part of network kusama`,
		},
		{
			name:    "missing endpoints",
			yaml:    "network: {relay: kusama, chains: [kusama, kah]}\nendpoints: {kusama: [ws://k]}",
			wantErr: "no endpoints configured for chains: kah",
		},
		{
			name:    "custom chain without endpoints",
			yaml:    "network: {relay: westend, chains: [wah]}\nendpoints: {wah: [http://w]}\ncustomChains: [{id: foo, name: Foo}]",
			wantErr: "no endpoints configured for chains: foo",
		},
		{
			name: "subset with custom chain",
			yaml: "network: {relay: Westend, chains: [wah]}\nendpoints: {wah: [http://w]}\n" +
				"customChains: [{id: foo, name: Foo, paraId: 2000, endpoints: [http://foo]}]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			sel := cfg.Selection()
			assert.Equal(t, "westend", sel.Network)
			require.Len(t, sel.Custom, 1)
			assert.Equal(t, uint32(2000), sel.Custom[0].ParaID)
			assert.Equal(t, []string{"http://foo"}, sel.Custom[0].Endpoints)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(minimal+"logging:\n  level: debug\n  loggers: {Connector: warn}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "warn", cfg.Logging.Loggers["Connector"])

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, DefaultPath, Path())
	t.Setenv(EnvConfigPath, "/etc/hub.yml")
	assert.Equal(t, "/etc/hub.yml", Path())
}
