// Package main is the entry point for the portfolio content service.
package main

import (
	"os"

	"github.com/kiuyha/portfolio-content/cmd/portfolio-content/app"
	"github.com/kiuyha/portfolio-content/internal/logger"
)

func main() {
	defer logger.Sync()

	if err := app.NewRootCmd().Execute(); err != nil {
		logger.Sync()
		os.Exit(1)
	}
}
