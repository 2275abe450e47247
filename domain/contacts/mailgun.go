package contacts

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mailgun/mailgun-go/v4"
)

type memberCreator interface {
	CreateMember(ctx context.Context, merge bool, addr string, prototype mailgun.Member) error
}

// MailgunRegistrar subscribes contacts to Mailgun mailing lists. Numeric list
// IDs are translated to list addresses through the configured map.
type MailgunRegistrar struct {
	client memberCreator
	lists  map[string]string
	log    *slog.Logger
}

func NewMailgunRegistrar(client memberCreator, lists map[string]string, log *slog.Logger) *MailgunRegistrar {
	return &MailgunRegistrar{client: client, lists: lists, log: log}
}

func (r *MailgunRegistrar) Register(ctx context.Context, c Contact) error {
	addrs := make([]string, 0, len(c.ListIDs))
	for _, id := range c.ListIDs {
		addr, ok := r.lists[strconv.Itoa(id)]
		if !ok || addr == "" {
			return fmt.Errorf("list %d: %w", id, ErrUnknownList)
		}
		addrs = append(addrs, addr)
	}

	member := mailgun.Member{
		Address:    c.Email,
		Subscribed: mailgun.Subscribed,
		Vars: map[string]any{
			"SIGNUP_DATE": c.FormattedSignupDate(),
			"SOURCE":      c.Source,
		},
	}
	for _, addr := range addrs {
		if err := r.client.CreateMember(ctx, c.UpdateEnabled, addr, member); err != nil {
			return fmt.Errorf("mailgun: add member to %s: %w", addr, err)
		}
		r.log.Debug("list member upserted", slog.String("list", addr))
	}
	return nil
}
