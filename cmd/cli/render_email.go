package main

import (
	"fmt"
	"io"

	"github.com/akeren/waitlist-api/domain/waitlist"
	"github.com/akeren/waitlist-api/internal/notify"
	"github.com/spf13/cobra"
)

func newRenderEmailCmd() *cobra.Command {
	var htmlOnly bool

	cmd := &cobra.Command{
		Use:   "render-email <name>",
		Short: "Print the confirmation email a submitter would receive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderEmail(cmd.OutOrStdout(), args[0], htmlOnly)
		},
	}
	cmd.Flags().BoolVar(&htmlOnly, "html", false, "Print only the HTML body")
	return cmd
}

func renderEmail(out io.Writer, name string, htmlOnly bool) error {
	content, err := notify.RenderConfirmation(waitlist.NormalizeName(name))
	if err != nil {
		return err
	}

	if htmlOnly {
		_, err = fmt.Fprint(out, content.HTML)
		return err
	}

	_, err = fmt.Fprintf(out, "Subject: %s\n\n%s\n---\n%s", content.Subject, content.Text, content.HTML)
	return err
}
