package main

import (
	"log/slog"
	"os"

	"atm-service/internal/atm"
	"atm-service/internal/bank"
	"atm-service/internal/client"
	"atm-service/internal/config"
	"atm-service/internal/domain"
)

func main() {
	// Log to stderr so the interactive prompts on stdout stay clean
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var bankService domain.BankService
	if cfg.Bank.URL != "" {
		slog.Info("Using remote bank service", "url", cfg.Bank.URL)
		bankService = client.New(cfg.Bank.URL, logger)
	} else {
		inMemory := bank.NewService(logger)
		if cfg.Seed.Enabled {
			if err := bank.SeedDemoData(inMemory); err != nil {
				slog.Error("Failed to seed demo data", "error", err)
				os.Exit(1)
			}
		}
		bankService = inMemory
	}

	machine := atm.New(bankService, os.Stdin, os.Stdout, logger)
	if err := machine.Run(); err != nil {
		slog.Error("Session aborted", "error", err)
		os.Exit(1)
	}
}
