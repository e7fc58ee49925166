package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/service/fortune"
	service "fortune_cookie/internal/domain/service/phrase"
	"fortune_cookie/internal/domain/service/phraselist"
	"fortune_cookie/internal/domain/value"
)

type opener func(ctx context.Context) (*service.PhraseService, func(context.Context), error)

type cli struct {
	open    opener
	phrases *service.PhraseService
	close   func(context.Context)
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:   "phrasectl",
		Short: "Manage fortune cookie phrases",
		Long: `Manage fortune cookie phrases in the configured store.

The store is selected by STORE_DRIVER and the same environment the
service reads (.env is loaded if present).`,
		SilenceUsage:       true,
		PersistentPreRunE:  c.connect,
		PersistentPostRunE: c.disconnect,
	}

	root.AddCommand(
		c.listCmd(),
		c.addCmd(),
		c.editCmd(),
		c.deleteCmd(),
		c.drawCmd(),
	)

	return root
}

func (c *cli) connect(cmd *cobra.Command, _ []string) error {
	phrases, closeFn, err := c.open(cmd.Context())
	if err != nil {
		return err
	}

	c.phrases = phrases
	c.close = closeFn

	return nil
}

func (c *cli) disconnect(cmd *cobra.Command, _ []string) error {
	if c.close != nil {
		c.close(cmd.Context())
	}

	return nil
}

func (c *cli) listCmd() *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List phrases page by page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := c.phrases.List(cmd.Context(), page, size)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(items) == 0 {
				fmt.Fprintln(out, phraselist.EmptyStateLabel)
				return nil
			}

			for _, p := range items {
				fmt.Fprintf(out, "%s\t%s\n", p.ID, p.Text)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	cmd.Flags().IntVarP(&size, "size", "s", phraselist.DefaultLimit, "page size")

	return cmd
}

func (c *cli) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add TEXT",
		Short: "Add a phrase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.phrases.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.ID, phraselist.MsgCreated)

			return nil
		},
	}
}

func (c *cli) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID TEXT",
		Short: "Replace the text of a phrase",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := value.ParsePhraseID(args[0])
			if err != nil {
				return err
			}

			if err := c.phrases.Update(cmd.Context(), id, args[1]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), phraselist.MsgUpdated)

			return nil
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a phrase after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := value.ParsePhraseID(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			confirmed := false

			confirm := func(prompt string) bool {
				if yes {
					confirmed = true
					return true
				}

				confirmed = ask(cmd.InOrStdin(), out, prompt)

				return confirmed
			}

			controller := phraselist.NewController(c.phrases)
			if err := controller.Remove(cmd.Context(), entity.Phrase{ID: id}, confirm); err != nil {
				return err
			}

			if confirmed {
				fmt.Fprintln(out, phraselist.MsgDeleted)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (c *cli) drawCmd() *cobra.Command {
	var sampleSize int

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Open a fortune cookie the way the storefront does",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := fortune.NewService(c.phrases, fortune.WithSampleSize(sampleSize)).Draw(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, f.Phrase)

			if f.LuckyNumber != nil {
				fmt.Fprintln(out, f.LuckyNumber.String())
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&sampleSize, "sample", fortune.DefaultSampleSize, "how many phrases to sample")

	return cmd
}

// ask печатает вопрос и ждёт "s", "si", "y" или "yes".
func ask(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [s/N] ", prompt)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "si", "sí", "y", "yes":
		return true
	default:
		return false
	}
}
