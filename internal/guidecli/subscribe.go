package guidecli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ealfred1/ResQ-X-checklist/domain/asset"
	"github.com/Ealfred1/ResQ-X-checklist/domain/contacts"
	"github.com/Ealfred1/ResQ-X-checklist/domain/signup"
	"github.com/Ealfred1/ResQ-X-checklist/internal/version"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/brevo"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/logger"
)

// successDisplayMs is unused by a one-shot run but must be positive.
const successDisplayMs = 5000

func newSubscribeCmd(root *rootOptions) *cobra.Command {
	var siteURL, outDir string

	cmd := &cobra.Command{
		Use:   "subscribe EMAIL",
		Short: "Register an email and save the guide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := signup.CheckEmail(args[0])
			if err != nil {
				return err
			}

			s, err := LoadSettingsWithEnv(DiscoverPath(root.cfgFile))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if siteURL != "" {
				s.SiteURL = siteURL
			}
			if outDir != "" {
				s.OutDir = outDir
			}

			log := root.logger(cmd.ErrOrStderr()).With(logger.Scope("guide"))
			ua := version.UserAgent("guide")

			client := brevo.New(s.Brevo.BaseURL, s.Brevo.APIKey, brevo.WithUserAgent(ua))
			wf, err := signup.NewWorkflow(signup.Config{
				Credential:       s.Brevo.APIKey,
				ListID:           s.Brevo.ListID,
				SourceLabel:      s.SourceLabel,
				AssetPath:        s.AssetPath,
				DownloadFilename: s.DownloadFilename,
				SuccessDisplayMs: successDisplayMs,
			},
				contacts.NewBrevoRegistrar(client, log),
				asset.NewHTTPSource(s.SiteURL, ua),
				signup.WithLogger(log),
			)
			if err != nil {
				return err
			}

			ctrl := wf.NewController()
			defer ctrl.Close()

			saver := asset.NewFileSaver(s.OutDir)
			res, err := ctrl.Submit(cmd.Context(), email, saver)
			if err != nil {
				return err
			}
			if !res.OK() {
				return errors.New(signup.GenericErrorMessage)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Guide saved to: %s\n", saver.LastPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&siteURL, "site", "", "landing site URL the guide is downloaded from")
	cmd.Flags().StringVar(&outDir, "out", "", "directory the guide is saved into")
	return cmd
}
