package storage

import (
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
)

// LoadCredentials returns the raw service-account JSON. The inline blob takes
// priority over the file path so hosted deployments can inject it through the
// environment without shipping a key file.
func LoadCredentials(cfg Config) ([]byte, error) {
	if cfg.ServiceAccountJSON != "" {
		return []byte(cfg.ServiceAccountJSON), nil
	}

	data, err := os.ReadFile(cfg.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("service account credentials not found: set GOOGLE_SERVICE_ACCOUNT_JSON or provide %s: %w",
			cfg.ServiceAccountFile, err)
	}
	return data, nil
}

// ServiceAccountEmail extracts the client email from the credential material.
// Used by diagnostics to tell the operator which identity needs folder access.
func ServiceAccountEmail(data []byte) (string, error) {
	jwtCfg, err := google.JWTConfigFromJSON(data, drive.DriveScope)
	if err != nil {
		return "", fmt.Errorf("failed to parse service account JSON: %w", err)
	}
	return jwtCfg.Email, nil
}
