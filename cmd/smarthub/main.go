package main

import (
	"context"
	"fmt"
	"os"

	"smarthub/internal/app"

	_ "smarthub/docs"
)

// @title        Smart Hub API
// @version      1.0
// @description  Temperature and presence ingest with derived fan/light control.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := app.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "smarthub:", err)
		os.Exit(1)
	}
}
