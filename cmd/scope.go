package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlegrand-dev/obslens/internal/domain"
)

func newScopeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scope",
		Short: "Inspect and switch the active project or team",
	}

	cmd.AddCommand(
		newScopeListCmd(app),
		newScopeActiveCmd(app),
		newScopeSwitchCmd(app),
		newScopeRefreshCmd(app),
	)

	return cmd
}

func addKindFlag(cmd *cobra.Command, kind *string) {
	cmd.Flags().StringVar(kind, "kind", string(domain.ScopeKindProject), "Scope kind (project or team)")
}

func parseKind(raw string) (domain.ScopeKind, error) {
	kind := domain.ScopeKind(raw)
	if !kind.Valid() {
		return "", fmt.Errorf("unknown scope kind %q (expected project or team)", raw)
	}
	return kind, nil
}

func newScopeListCmd(app *app) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the scopes visible to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}

			if err := app.scopes.Refresh(cmd.Context(), kind); err != nil {
				return err
			}

			scopes := app.scopes.List(cmd.Context(), kind)
			active := app.scopes.Active(kind)
			for _, scope := range scopes {
				marker := " "
				if active != nil && active.ID == scope.ID {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", marker, scope.ID, scope.DisplayName)
			}

			return nil
		},
	}

	addKindFlag(cmd, &kindFlag)
	return cmd
}

func newScopeActiveCmd(app *app) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "active",
		Short: "Print the active scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}

			if err := app.scopes.Refresh(cmd.Context(), kind); err != nil {
				return err
			}

			active := app.scopes.Active(kind)
			if active == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no %s selected\n", kind)
				return nil
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", active.ID, active.DisplayName)
			return nil
		},
	}

	addKindFlag(cmd, &kindFlag)
	return cmd
}

func newScopeSwitchCmd(app *app) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "switch <scope-id>",
		Short: "Switch the active scope and invalidate its dependent queries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}

			if err := app.scopes.Refresh(cmd.Context(), kind); err != nil {
				return err
			}

			if err := app.coordinator.SwitchTo(cmd.Context(), kind, domain.ScopeID(args[0])); err != nil {
				return err
			}

			active := app.scopes.Active(kind)
			if active == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no %s selected\n", kind)
				return nil
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active %s: %s (%s)\n", kind, active.ID, active.DisplayName)
			return nil
		},
	}

	addKindFlag(cmd, &kindFlag)
	return cmd
}

func newScopeRefreshCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the scope lists of every kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			refresh := func(ctx context.Context) error {
				for _, kind := range domain.Kinds() {
					if err := app.scopes.Refresh(ctx, kind); err != nil {
						return err
					}
				}
				return nil
			}

			if err := runRefreshSpinner(cmd.Context(), cmd.ErrOrStderr(), refresh); err != nil {
				return err
			}

			for _, kind := range domain.Kinds() {
				active := app.scopes.Active(kind)
				if active == nil {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: none\n", kind)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", kind, active.ID, active.DisplayName)
			}

			return nil
		},
	}
}
