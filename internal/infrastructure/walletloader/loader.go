package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
	"hub_balance/internal/pkg/ss58"
)

// DefaultAccountID is the id of the account built from the wallet file.
const DefaultAccountID = "default"

// WalletFileLoader implements the port.AccountProvider interface by loading addresses from a file,
// one per line. Blank lines and lines starting with '#' are ignored.
type WalletFileLoader struct {
	filePath string
	logger   port.Logger
}

// NewWalletFileLoader creates a new WalletFileLoader.
func NewWalletFileLoader(filePath string, logger port.Logger) port.AccountProvider {
	return &WalletFileLoader{
		filePath: filePath,
		logger:   logger,
	}
}

// GetAccount reads the addresses of the wallet file into one account. Lines that are
// neither SS58 addresses nor 0x public keys are skipped.
func (l *WalletFileLoader) GetAccount() (*entity.Account, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", l.filePath, err)
	}
	defer file.Close()

	account := entity.NewAccount(DefaultAccountID)
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := ss58.AddressPubkey(line); err != nil {
			l.logger.Warn("Skipping invalid wallet address", "file", l.filePath, "line_number", lineNum, "address", line, "error", err)
			continue
		}
		if account.Add(line) == 0 {
			l.logger.Debug("Skipping duplicate wallet address", "file", l.filePath, "line_number", lineNum)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", l.filePath, err)
	}

	l.logger.Info("Wallets loaded successfully from file", "count", account.Len(), "path", l.filePath)
	return account, nil
}
