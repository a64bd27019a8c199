package cli

import (
	"fmt"

	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/robiweb74/makupovalni-seznam/internal/share"
)

func newShareCmd(app *App) *cobra.Command {
	var (
		copyLink   bool
		toTelegram bool
		asQR       bool
	)
	cmd := &cobra.Command{
		Use:   "share <list>",
		Short: "Print a share link for a list",
		Long: `Encodes the list into the #share= fragment of the configured base URL.
With --telegram the list is posted to the configured chat; if that fails the
link is copied to the clipboard instead. With --qr the link is printed as a QR
code for scanning with a phone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, _, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			l, err := resolveList(snap, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			token := share.EncodeList(*l)
			link := share.Link(app.cfg.Share.BaseURL, token)
			out := map[string]any{"link": link, "token": token}

			if toTelegram {
				sendErr := func() error {
					sender, err := app.newSender(app.cfg)
					if err != nil {
						return err
					}
					return sender.SendList(ctx, *l, link)
				}()
				out["telegram"] = sendErr == nil
				if sendErr != nil {
					pslog.Ctx(ctx).Warn("telegram share failed, copying link instead", "list", l.ID, "err", sendErr)
					copyLink = true
				}
			}
			if copyLink {
				if err := app.copyClipboard(link); err != nil {
					return writeErr(cmd, fmt.Errorf("copy to clipboard: %w", err))
				}
				out["copied"] = true
			}
			if asQR {
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(w, link)
				qrterminal.GenerateHalfBlock(link, qrterminal.L, w)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().BoolVar(&asQR, "qr", false, "Print the link as a terminal QR code instead of JSON")
	cmd.Flags().BoolVar(&copyLink, "copy", false, "Copy the link to the clipboard")
	cmd.Flags().BoolVar(&toTelegram, "telegram", false, "Send the list to the configured Telegram chat")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <link|token>",
		Short: "Import a shared list as a new list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := share.DecodeLink(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			next, ch := app.engine().ImportList(*snap, p.Name, p.Items)
			if ch.Empty() {
				return writeErr(cmd, share.ErrDecode)
			}
			if err := s.Commit(cmd.Context(), &next, ch); err != nil {
				return writeErr(cmd, err)
			}
			l, _ := next.FindList(ch.ListID)
			return writeOut(cmd, app, map[string]any{"data": l})
		},
	}
}
