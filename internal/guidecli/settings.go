package guidecli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Settings is the CLI configuration, stored as YAML.
type Settings struct {
	SiteURL          string        `mapstructure:"site_url" yaml:"site_url"`
	OutDir           string        `mapstructure:"out_dir" yaml:"out_dir"`
	AssetPath        string        `mapstructure:"asset_path" yaml:"asset_path"`
	DownloadFilename string        `mapstructure:"download_filename" yaml:"download_filename"`
	SourceLabel      string        `mapstructure:"source_label" yaml:"source_label"`
	Brevo            BrevoSettings `mapstructure:"brevo" yaml:"brevo"`
}

type BrevoSettings struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	ListID  int    `mapstructure:"list_id" yaml:"list_id"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

func defaults() *Settings {
	return &Settings{
		SiteURL:          "http://localhost:4002",
		OutDir:           ".",
		AssetPath:        "guide.pdf",
		DownloadFilename: "ResQX-Emergency-Guide.pdf",
		SourceLabel:      "Emergency Guide CLI",
		Brevo: BrevoSettings{
			BaseURL: "https://api.brevo.com",
		},
	}
}

// applyDefaults fills every empty field from defaults.
func (s *Settings) applyDefaults() {
	d := defaults()
	if s.SiteURL == "" {
		s.SiteURL = d.SiteURL
	}
	if s.OutDir == "" {
		s.OutDir = d.OutDir
	}
	if s.AssetPath == "" {
		s.AssetPath = d.AssetPath
	}
	if s.DownloadFilename == "" {
		s.DownloadFilename = d.DownloadFilename
	}
	if s.SourceLabel == "" {
		s.SourceLabel = d.SourceLabel
	}
	if s.Brevo.BaseURL == "" {
		s.Brevo.BaseURL = d.Brevo.BaseURL
	}
}

// LoadSettings reads path, returning defaults when the file does not exist.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults(), nil
	}
	if err != nil {
		return nil, err
	}

	s := &Settings{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	s.applyDefaults()
	return s, nil
}

// SaveSettings writes s to path, creating the parent directory.
// The file holds an API key, so it is only readable by the owner.
func SaveSettings(s *Settings, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// DiscoverPath resolves the config file: the flag, then RESQX_CONFIG, then
// $HOME/.resqx/config.yaml.
func DiscoverPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if envPath := os.Getenv("RESQX_CONFIG"); envPath != "" {
		return envPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".resqx", "config.yaml")
	}
	return filepath.Join(homeDir, ".resqx", "config.yaml")
}

// LoadSettingsWithEnv reads path and overlays RESQX_* environment variables,
// e.g. RESQX_BREVO_API_KEY for brevo.api_key.
func LoadSettingsWithEnv(path string) (*Settings, error) {
	v := viper.New()

	v.SetEnvPrefix("RESQX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"site_url",
		"out_dir",
		"asset_path",
		"download_filename",
		"source_label",
		"brevo.api_key",
		"brevo.list_id",
		"brevo.base_url",
	} {
		_ = v.BindEnv(key)
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, err
	}
	s.applyDefaults()
	return s, nil
}
