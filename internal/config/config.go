package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds all process configuration. It is loaded once at startup and
// passed explicitly into constructors; nothing mutates it afterwards.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port" validate:"min=1,max=65535"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Storage struct {
		Type     string `yaml:"type" validate:"oneof=drive local"`
		BasePath string `yaml:"base_path"` // For local storage
		BaseURL  string `yaml:"base_url"`  // Public URL base for local storage
	} `yaml:"storage"`

	Drive struct {
		FolderID           string        `yaml:"folder_id" validate:"omitempty,folderid"` // Destination folder, required
		ServiceAccountJSON string        `yaml:"service_account_json"`                    // Inline credential blob
		ServiceAccountFile string        `yaml:"service_account_file"`                    // Credential file path
		Timeout            time.Duration `yaml:"-"`                                       // Per remote call
		TimeoutText        string        `yaml:"timeout"`                                 // Duration string, e.g. "10m"
	} `yaml:"drive"`

	Upload struct {
		// MaxFileMB is the advertised per-file ceiling. The batch ceiling is
		// MaxFileMB * file count; tighten here if that policy ever changes.
		MaxFileMB int `yaml:"max_file_mb" validate:"min=1"`
		MaxFiles  int `yaml:"max_files" validate:"min=1"`
	} `yaml:"upload"`
}

const (
	defaultMaxFileMB    = 500
	defaultMaxFiles     = 10
	defaultDriveTimeout = 10 * time.Minute
	defaultConfigPath   = "config/config.yaml"
)

// Load reads the optional yaml file, then applies environment overrides.
// Environment wins so hosted deployments need no file at all. It fails when the
// destination folder ID is absent: the process must not start without it.
func Load() (*Config, error) {
	var cfg Config

	// A missing file is only tolerated at the default path; an operator who
	// set CONFIG_PATH explicitly gets an error instead of silent defaults.
	configPath := os.Getenv("CONFIG_PATH")
	explicitPath := configPath != ""
	if !explicitPath {
		configPath = defaultConfigPath
	}
	if f, err := os.Open(configPath); err != nil {
		if explicitPath {
			return nil, fmt.Errorf("failed to open config file %s: %w", configPath, err)
		}
	} else {
		decoder := yaml.NewDecoder(f)
		decodeErr := decoder.Decode(&cfg)
		f.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, decodeErr)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Drive.Timeout == 0 && cfg.Drive.TimeoutText != "" {
		d, err := time.ParseDuration(cfg.Drive.TimeoutText)
		if err != nil {
			return nil, fmt.Errorf("invalid drive.timeout %q in %s: %w", cfg.Drive.TimeoutText, configPath, err)
		}
		cfg.Drive.Timeout = d
	}
	applyDefaults(&cfg)

	if cfg.Storage.Type == "drive" && cfg.Drive.FolderID == "" {
		return nil, fmt.Errorf("FOLDER_ID is required (set it in the environment or %s)", configPath)
	}

	return &cfg, nil
}

// applyEnv overlays environment values. A set-but-malformed value is an error:
// the operator asked for something specific and must not get a silent default.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("STORAGE_BASE_PATH"); v != "" {
		cfg.Storage.BasePath = v
	}
	if v := os.Getenv("FOLDER_ID"); v != "" {
		cfg.Drive.FolderID = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"); v != "" {
		cfg.Drive.ServiceAccountJSON = v
	}
	if v := os.Getenv("SERVICE_ACCOUNT_FILE"); v != "" {
		cfg.Drive.ServiceAccountFile = v
	}
	if v := os.Getenv("DRIVE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DRIVE_TIMEOUT %q: %w", v, err)
		}
		cfg.Drive.Timeout = d
	}
	if v := os.Getenv("MAX_MB"); v != "" {
		mb, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_MB %q: %w", v, err)
		}
		cfg.Upload.MaxFileMB = mb
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "drive"
	}
	if cfg.Drive.ServiceAccountFile == "" {
		cfg.Drive.ServiceAccountFile = "service_account.json"
	}
	if cfg.Drive.Timeout == 0 {
		cfg.Drive.Timeout = defaultDriveTimeout
	}
	if cfg.Upload.MaxFileMB <= 0 {
		cfg.Upload.MaxFileMB = defaultMaxFileMB
	}
	if cfg.Upload.MaxFiles <= 0 {
		cfg.Upload.MaxFiles = defaultMaxFiles
	}
}
