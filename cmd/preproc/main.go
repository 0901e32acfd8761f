package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"binance-preproc/internal/config"
	"binance-preproc/internal/domain"
	"binance-preproc/internal/gateway"
	"binance-preproc/internal/logger"
	"binance-preproc/internal/usecase"
)

func main() {
	cfg := config.Load()

	// Define command-line flags; environment values are the defaults
	outDir := flag.String("out-dir", cfg.OutDir, "Directory to store output files")
	holder := flag.String("holder", cfg.Holder, "Account holder name")
	exchange := flag.String("exchange", cfg.Exchange, "Exchange name")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Convert a Binance CSV export to DaLI manual CSV ledgers.\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] input_file.csv\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one input file is required.")
		flag.Usage()
		os.Exit(1)
	}
	inputFile := flag.Arg(0)

	logger.InitLogger(*logLevel)
	ctx := logger.ToContext(context.Background(), logger.L.With("input", inputFile))

	// --- Dependency Injection (Wiring the application) ---
	csvRepo := gateway.NewCSVRecordRepository()
	ledgerWriter := gateway.NewCSVLedgerWriter()
	ids := gateway.NewUUIDGenerator()

	conversionUseCase := usecase.NewConversionUseCase(csvRepo, ledgerWriter, ids)

	// --- Execute the Usecase ---
	account := domain.Account{Exchange: *exchange, Holder: *holder}
	summary, err := conversionUseCase.Convert(ctx, inputFile, *outDir, account)
	if err != nil {
		var recErr *domain.RecordError
		if errors.As(err, &recErr) {
			logger.L.Error("Conversion failed", "error", err, "records_processed", recErr.Index)
		} else {
			logger.L.Error("Conversion failed", "error", err)
		}
		os.Exit(1)
	}

	// --- Present the Output ---
	output, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		logger.L.Error("Failed to generate JSON summary", "error", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}
