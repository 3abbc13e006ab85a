package main

import (
	"property-catalog/internal"

	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, args []string) error {
	// сервер пишет логи в stdout с уровнем из конфигурации
	app, err := internal.NewApp(internal.Options{EnvPath: envPath})
	if err != nil {
		return err
	}
	return app.Run()
}
