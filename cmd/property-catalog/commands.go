package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	envPath  string
	logLevel string
	locale   string

	rootCmd = &cobra.Command{
		Use:           "property-catalog",
		Short:         "Client for the property catalog REST API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Load the catalog and serve it over HTTP for the browser UI",
		Args:  cobra.NoArgs,
		RunE:  runServe, // cmd_serve.go
	}

	// --- Catalog ---
	listCmd = &cobra.Command{
		Use:     "list",
		Short:   "List properties matching the filter",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE:    runList, // cmd_catalog.go
	}
	getCmd = &cobra.Command{
		Use:   "get [id]",
		Short: "Show one property",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}
	categoriesCmd = &cobra.Command{
		Use:   "categories",
		Short: "List property categories",
		Args:  cobra.NoArgs,
		RunE:  runCategories,
	}

	// --- Mutations ---
	createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a property",
		Args:  cobra.NoArgs,
		RunE:  runCreate, // cmd_property.go
	}
	updateCmd = &cobra.Command{
		Use:   "update [id]",
		Short: "Update the given fields of a property",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}
	deleteCmd = &cobra.Command{
		Use:     "delete [id]",
		Short:   "Delete a property",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE:    runDelete,
	}
	uploadCmd = &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload an image and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpload,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "", "path to .env file (default ./.env)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level for CLI commands (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "en", "locale for price formatting, e.g. en, de, ru")

	listCmd.Flags().String("name", "", "filter by name substring")
	listCmd.Flags().String("address", "", "filter by address substring")
	listCmd.Flags().Float64("price-min", 0, "minimum price")
	listCmd.Flags().Float64("price-max", 0, "maximum price")
	listCmd.Flags().String("type", "", "filter by property type")
	listCmd.Flags().Bool("active", false, "filter by active flag")

	for _, cmd := range []*cobra.Command{createCmd, updateCmd} {
		cmd.Flags().String("name", "", "property name")
		cmd.Flags().String("description", "", "property description")
		cmd.Flags().String("address", "", "property address")
		cmd.Flags().String("type", "", "property type (category name)")
		cmd.Flags().Float64("price", 0, "price")
		cmd.Flags().String("image-url", "", "image URL returned by upload")
		cmd.Flags().Bool("active", true, "whether the listing is active")
		cmd.Flags().String("owner", "", "owner id")
	}

	rootCmd.AddCommand(serveCmd, listCmd, getCmd, categoriesCmd, createCmd, updateCmd, deleteCmd, uploadCmd)
}
