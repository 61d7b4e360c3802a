package walletloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hub_balance/internal/pkg/logger"
)

func TestWalletFileLoader_GetAccount(t *testing.T) {
	content := `# treasury
5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY

not-an-address
5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty
5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY
0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d
`
	path := filepath.Join(t.TempDir(), "wallets.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	account, err := NewWalletFileLoader(path, logger.Nop()).GetAccount()
	require.NoError(t, err)
	assert.Equal(t, DefaultAccountID, account.ID)
	assert.Equal(t, []string{
		"5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY",
		"5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty",
		"0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d",
	}, account.Addresses())
}

func TestWalletFileLoader_MissingFile(t *testing.T) {
	_, err := NewWalletFileLoader(filepath.Join(t.TempDir(), "none.txt"), logger.Nop()).GetAccount()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open wallet file")
}
