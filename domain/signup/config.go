package signup

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ealfred1/ResQ-X-checklist/internal/config"
)

// Config holds the fixed parameters of the workflow.
type Config struct {
	// Credential is the provider API key. It may be empty here; Submit then
	// fails with a ConfigurationError without contacting anyone.
	Credential string
	// ListID is the list every contact joins. Values <= 0 fail like a missing credential.
	ListID           int
	SourceLabel      string
	AssetPath        string
	DownloadFilename string
	SuccessDisplayMs int
}

// ConfigFrom extracts the workflow settings from the application config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Credential:       cfg.Contacts.Credential(),
		ListID:           cfg.Contacts.ListID(),
		SourceLabel:      cfg.Signup.SourceLabel,
		AssetPath:        cfg.Signup.AssetPath,
		DownloadFilename: cfg.Signup.DownloadFilename,
		SuccessDisplayMs: cfg.Signup.SuccessDisplayMs,
	}
}

// SuccessDisplay returns the success window as a Duration.
func (c Config) SuccessDisplay() time.Duration {
	return time.Duration(c.SuccessDisplayMs) * time.Millisecond
}

// Validate checks the settings that must hold before any submission.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.SourceLabel) == "" {
		problems = append(problems, "source label is empty")
	}
	if strings.TrimSpace(c.AssetPath) == "" {
		problems = append(problems, "asset path is empty")
	}
	if strings.TrimSpace(c.DownloadFilename) == "" {
		problems = append(problems, "download filename is empty")
	}
	if c.SuccessDisplayMs <= 0 {
		problems = append(problems, fmt.Sprintf("success display %dms is not positive", c.SuccessDisplayMs))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// usable reports why a submission cannot be attempted, or nil.
func (c Config) usable() error {
	if c.Credential == "" {
		return ErrMissingCredential
	}
	if c.ListID <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidListID, c.ListID)
	}
	return nil
}
