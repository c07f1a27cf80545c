package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"contentbrowser/internal/domain"
	"contentbrowser/internal/loader"
	"contentbrowser/internal/related"
)

func newRelatedCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "related <kind> <id>",
		Short: "Load the related content of one catalog item",
		Long: `Load what the detail pane shows below an item: the newest posts of a
blog, or the entries and blog posts referencing a person or company.

Examples:
  contentbrowser related company dlsc
  contentbrowser related person dlemmermann`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if !cfg.Related.Enabled {
				return fmt.Errorf("related content is disabled in the configuration")
			}
			a, err := newApp(cfg, nil)
			if err != nil {
				return err
			}
			item, ok := a.catalog.Get(kind, args[1])
			if !ok {
				return fmt.Errorf("%s not found", domain.ItemRef{Kind: kind, ID: args[1]})
			}
			if !a.related.Supports(kind) {
				return fmt.Errorf("%s: %w", item.Ref(), related.ErrNoSource)
			}

			records, err := fetchRelated(cmd.Context(), a.related, item, cfg.Related.Timeout.Std())
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.Header(fmt.Sprintf("Related to %s (%d)", item.Title, len(records)))
			if len(records) == 0 {
				p.Print("%s", p.Dim("nothing related"))
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				date := "-"
				if !r.Date.IsZero() {
					date = r.Date.Format("2006-01-02")
				}
				link := r.Link
				if r.Ref != nil {
					link = r.Ref.String()
				}
				rows = append(rows, []string{r.Title, date, link})
			}
			return p.Table([]string{"TITLE", "DATE", "LINK"}, rows)
		},
	}
}

// fetchRelated runs one loader task the same way the detail pane does
func fetchRelated(ctx context.Context, src related.Source, item domain.Item, timeout time.Duration) ([]domain.Related, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	slot := loader.NewSlot(src.FetchRelated, timeout)

	done := make(chan loader.Result[[]domain.Related], 1)
	slot.Go(item.Ref().String(), item, func(r loader.Result[[]domain.Related]) {
		done <- r
	})

	select {
	case res := <-done:
		return res.Value, res.Err
	case <-ctx.Done():
		slot.Cancel()
		return nil, ctx.Err()
	}
}
