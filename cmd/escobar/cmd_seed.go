package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/escobarvape/backend/config"
	"github.com/escobarvape/backend/database/seeders"
	"github.com/escobarvape/backend/pkg/database"
)

// escobar seed [names...] — populate the database with baseline data.
var seedCmd = &cobra.Command{
	Use:   "seed [seeder...]",
	Short: "Seed the database (admins, catalog, orders); no args runs all",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := database.Connect(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		defer func() { _ = database.Disconnect(context.Background()) }()

		if err := seeders.Run(ctx, database.DB(), args...); err != nil {
			return err
		}
		fmt.Printf("Seeded: %s\n", strings.Join(seederNames(args), ", "))
		return nil
	},
}

func seederNames(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return seeders.Names()
}
