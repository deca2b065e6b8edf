package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/flashdeck/flashdeck/internal/config"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/services"
	"github.com/flashdeck/flashdeck/internal/store"
)

func main() {
	var (
		decksDir       = pflag.StringP("decks-dir", "d", "", "Directory containing deck records")
		importCSV      = pflag.StringP("import", "i", "", "Import cards from a CSV file")
		importName     = pflag.String("import-name", "Imported Deck", "Name for the imported deck")
		importFolder   = pflag.StringP("import-folder", "f", "", "Import all CSV files from a folder")
		exportBackup   = pflag.StringP("export-backup", "x", "", "Export all decks to a backup file")
		importBackup   = pflag.StringP("import-backup", "b", "", "Import decks from a backup file")
		importAnki     = pflag.StringP("import-anki", "a", "", "Import from an Anki export (.apkg, .txt or .tsv)")
		importAnkiName = pflag.String("import-anki-name", "", "Name for Anki text imports (ignored for .apkg)")
		exportAnki     = pflag.StringP("export-anki", "A", "", "Export all decks to an Anki .apkg package")
	)
	pflag.Parse()

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)
	ctx := logger.NewContext(context.Background(), log)

	dir := cfg.DecksDir
	if *decksDir != "" {
		dir = *decksDir
	}
	log.Debug("decks_dir=%s", dir)

	st, err := store.New(ctx, dir)
	if err != nil {
		log.Error("failed to open deck store: %v", err)
		os.Exit(1)
	}
	interchange := services.NewInterchangeService(st)

	switch {
	case *importCSV != "":
		runImportCSV(ctx, st, interchange, *importCSV, *importName)
	case *importFolder != "":
		runImportFolder(ctx, interchange, *importFolder)
	case *exportBackup != "":
		runExportBackup(ctx, interchange, *exportBackup)
	case *importBackup != "":
		runImportBackup(ctx, interchange, *importBackup)
	case *importAnki != "":
		runImportForeign(ctx, interchange, *importAnki, *importAnkiName)
	case *exportAnki != "":
		runExportForeign(ctx, interchange, *exportAnki)
	default:
		runList(ctx, st)
	}
}

func fatal(format string, args ...any) {
	logger.Error(format, args...)
	os.Exit(1)
}

func runImportCSV(ctx context.Context, st *store.Store, svc services.InterchangeService, path, name string) {
	exists, err := st.NameExists(ctx, name)
	if err != nil {
		fatal("import failed: %v", err)
	}
	if exists {
		fmt.Printf("Skipped: deck %q already exists\n", name)
		return
	}
	deck, err := svc.ImportCSVFile(ctx, path, name)
	if err != nil {
		fatal("import failed: %v", err)
	}
	fmt.Printf("Imported %d cards into %q\n", len(deck.Cards), deck.Name)
}

func runImportFolder(ctx context.Context, svc services.InterchangeService, dir string) {
	imported, skipped, err := svc.ImportFolder(ctx, dir)
	if err != nil {
		fatal("folder import failed: %v", err)
	}
	if len(imported) == 0 && len(skipped) == 0 {
		fmt.Printf("No CSV files found in %s\n", dir)
		return
	}
	if len(imported) > 0 {
		fmt.Printf("Imported %d decks:\n", len(imported))
		for _, d := range imported {
			fmt.Printf("  %s (%d cards)\n", d.Name, d.CardCount)
		}
	}
	if len(skipped) > 0 {
		fmt.Printf("Skipped %d decks (already exist):\n", len(skipped))
		for _, name := range skipped {
			fmt.Printf("  %s\n", name)
		}
	}
}

func runExportBackup(ctx context.Context, svc services.InterchangeService, path string) {
	count, err := svc.ExportBackup(ctx, path)
	if err != nil {
		fatal("backup export failed: %v", err)
	}
	fmt.Printf("Exported %d decks to %s\n", count, path)
}

func runImportBackup(ctx context.Context, svc services.InterchangeService, path string) {
	imported, skipped, err := svc.ImportBackup(ctx, path)
	if err != nil {
		fatal("backup import failed: %v", err)
	}
	if skipped > 0 {
		fmt.Printf("Imported %d decks (%d skipped - already exist)\n", imported, skipped)
	} else {
		fmt.Printf("Imported %d decks\n", imported)
	}
}

func runImportForeign(ctx context.Context, svc services.InterchangeService, path, name string) {
	imported, skipped, err := svc.ImportForeign(ctx, path, name)
	if err != nil {
		fatal("import failed: %v", err)
	}
	totalCards := 0
	for _, d := range imported {
		totalCards += d.CardCount
		fmt.Printf("  %s (%d cards)\n", d.Name, d.CardCount)
	}
	if len(imported) > 0 {
		fmt.Printf("Imported %d deck(s) with %d total cards\n", len(imported), totalCards)
	}
	if len(skipped) > 0 {
		fmt.Printf("Skipped %d deck(s) (already exist):\n", len(skipped))
		for _, n := range skipped {
			fmt.Printf("  %s\n", n)
		}
	}
}

func runExportForeign(ctx context.Context, svc services.InterchangeService, path string) {
	count, err := svc.ExportForeign(ctx, path)
	if err != nil {
		fatal("export failed: %v", err)
	}
	fmt.Printf("Exported %d cards to %s (Anki format)\n", count, path)
}

func runList(ctx context.Context, st *store.Store) {
	summaries, err := st.List(ctx)
	if err != nil {
		fatal("failed to list decks: %v", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No decks found.")
		return
	}
	for _, s := range summaries {
		fmt.Printf("%-10s %-30s %d cards\n", s.ID, s.Name, s.CardCount)
	}
}
