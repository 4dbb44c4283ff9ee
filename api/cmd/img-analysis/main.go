package main

import (
	"os"

	"img-analysis/api/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.GetLogger().Error(err)
		os.Exit(1)
	}
}
