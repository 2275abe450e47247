package contacts

import (
	"fmt"
	"log/slog"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/fx"

	"github.com/Ealfred1/ResQ-X-checklist/internal/config"
	"github.com/Ealfred1/ResQ-X-checklist/internal/version"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/brevo"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/logger"
)

var Module = fx.Module("contacts",
	fx.Provide(NewRegistrar),
)

// NewRegistrar returns the Registrar for CONTACTS_PROVIDER.
func NewRegistrar(cfg *config.Config, log *slog.Logger) (Registrar, error) {
	cc := cfg.Contacts
	log = log.With(logger.Scope("contacts"), slog.String("provider", cc.Provider))

	switch cc.Provider {
	case config.ProviderBrevo:
		client := brevo.New(cc.Brevo.BaseURL, cc.Brevo.APIKey, brevo.WithUserAgent(version.UserAgent("landing")))
		return NewBrevoRegistrar(client, log), nil
	case config.ProviderMailgun:
		mg := mailgun.NewMailgun(cc.Mailgun.Domain, cc.Mailgun.APIKey)
		if cc.Mailgun.APIBase != "" {
			mg.SetAPIBase(cc.Mailgun.APIBase)
		}
		return NewMailgunRegistrar(mg, cc.Mailgun.Lists, log), nil
	default:
		return nil, fmt.Errorf("unknown contacts provider %q", cc.Provider)
	}
}
