package sources

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stacklok/game-catalog-server/internal/config"
)

// postgresConfigFromURL converts a container connection string into a database source config
func postgresConfigFromURL(t *testing.T, connStr string) (*config.DatabaseConfig, error) {
	t.Helper()

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return nil, err
	}

	password, _ := u.User.Password()
	passwordFile := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(passwordFile, []byte(password), 0600); err != nil {
		return nil, err
	}

	return &config.DatabaseConfig{
		Driver:       config.DatabaseDriverPostgres,
		Host:         u.Hostname(),
		Port:         port,
		User:         u.User.Username(),
		PasswordFile: passwordFile,
		Database:     u.Path[1:],
		SSLMode:      "disable",
	}, nil
}
