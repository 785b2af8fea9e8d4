// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/aiscout/internal/validation"
)

// NewProfileCmd creates the 'profile' command group.
func NewProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Read or write your user profile",
		Long: `The profile is a set of keys used for personalized recommendations.
List values may be comma separated or a JSON array.

Well-known keys: interests, skills, preferred_categories,
learning_style, experience_level, use_cases.`,
	}
	cmd.AddCommand(newProfileSetCmd(app))
	cmd.AddCommand(newProfileGetCmd(app))
	return cmd
}

func newProfileSetCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a profile key",
		Example: `  aiscout profile set interests "speech, agents"
  aiscout profile set skills '["python","react"]' --category technical`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileSet(cmd.Context(), app, validation.SetProfileRequest{
				Key:      args[0],
				Value:    args[1],
				Category: category,
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Optional grouping for the key")
	return cmd
}

func runProfileSet(ctx context.Context, app *App, req validation.SetProfileRequest) error {
	if err := validate(&req); err != nil {
		return err
	}
	db, err := app.DB()
	if err != nil {
		return err
	}
	if err := db.SetUserProfile(ctx, req.Key, req.Value, req.Category); err != nil {
		return withKind(kindDatabase, err)
	}
	if app.JSON {
		return app.printJSON(req)
	}
	fmt.Fprintf(app.stdout, "Set %s = %s\n", req.Key, req.Value)
	return nil
}

func newProfileGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Show one profile key, or all of them",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return runProfileGet(cmd.Context(), app, key)
		},
	}
}

func runProfileGet(ctx context.Context, app *App, key string) error {
	db, err := app.DB()
	if err != nil {
		return err
	}
	entries, err := db.GetUserProfile(ctx, key)
	if err != nil {
		return withKind(kindDatabase, err)
	}
	if app.JSON {
		return app.printJSON(nonNil(entries))
	}
	if len(entries) == 0 {
		if key != "" {
			fmt.Fprintf(app.stdout, "Profile key %q is not set.\n", key)
		} else {
			fmt.Fprintln(app.stdout, "Profile is empty.")
		}
		return nil
	}

	tw := app.table()
	fmt.Fprintln(tw, "KEY\tVALUE\tCATEGORY\tUPDATED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Key, truncate(e.Value, 60), e.Category, e.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}
