package contacts

import (
	"context"
	"log/slog"

	"github.com/Ealfred1/ResQ-X-checklist/pkg/brevo"
)

type contactCreator interface {
	CreateContact(ctx context.Context, req brevo.CreateContactRequest) (*brevo.CreateContactResponse, error)
}

// BrevoRegistrar upserts contacts through the Brevo contacts API.
type BrevoRegistrar struct {
	client contactCreator
	log    *slog.Logger
}

func NewBrevoRegistrar(client contactCreator, log *slog.Logger) *BrevoRegistrar {
	return &BrevoRegistrar{client: client, log: log}
}

func (r *BrevoRegistrar) Register(ctx context.Context, c Contact) error {
	resp, err := r.client.CreateContact(ctx, brevo.CreateContactRequest{
		Email: c.Email,
		Attributes: map[string]any{
			brevo.AttrSignupDate: c.FormattedSignupDate(),
			brevo.AttrSource:     c.Source,
		},
		ListIDs:       c.ListIDs,
		UpdateEnabled: c.UpdateEnabled,
	})
	if err != nil {
		return err
	}
	r.log.Debug("contact upserted", slog.Int64("brevo_id", resp.ID), slog.Any("list_ids", c.ListIDs))
	return nil
}
