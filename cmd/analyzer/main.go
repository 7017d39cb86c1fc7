package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vitals/internal/config"
	"vitals/internal/domain"
	"vitals/internal/logger"
	"vitals/internal/storage/sqlite"
	"vitals/internal/tui/analyzer"
)

func main() {
	windowFlag := flag.String("window", "", "pre-select a window: hour, day, week, all")
	plain := flag.Bool("plain", false, "print a textual summary instead of the TUI")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: invalid configuration: %v", err)
	}

	if !*plain && cfg.LogFile == "" {
		cfg.LogFile = "vitals-analyzer.log"
	}

	appLog := logger.New(cfg)

	db, err := sqlite.Open(cfg.DBPath, appLog)
	if err != nil {
		log.Fatalf("FATAL: cannot open metrics database: %v", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		log.Fatalf("FATAL: cannot migrate metrics database: %v", err)
	}

	repo := sqlite.NewSampleRepository(db)

	var window domain.Window
	if *windowFlag != "" {
		window, err = domain.ParseWindow(*windowFlag)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
	}

	if *plain {
		if window == "" {
			window = domain.WindowHour
		}
		if err := printSummary(repo, window); err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		return
	}

	var model analyzer.Model
	if window != "" {
		model = analyzer.NewModelWithWindow(repo, window)
	} else {
		model = analyzer.NewModel(repo)
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		appLog.Error("analyzer failed", "error", err)
		os.Exit(1)
	}
}

func printSummary(repo domain.SampleRepository, window domain.Window) error {
	samples, err := repo.QueryWindow(context.Background(), window, time.Now())
	if err != nil {
		return fmt.Errorf("query %s: %w", window, err)
	}

	fmt.Printf("%s: %d samples\n\n", window.Label(), len(samples))
	if len(samples) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMIN\tAVG\tMAX\tSAMPLES")

	for _, s := range analyzer.Summarize(samples) {
		if s.N == 0 {
			fmt.Fprintf(w, "%s\tn/a\tn/a\tn/a\t0\n", s.Name)
			continue
		}
		fmt.Fprintf(w, "%s\t%.2f%s\t%.2f%s\t%.2f%s\t%d\n",
			s.Name, s.Min, s.Unit, s.Avg, s.Unit, s.Max, s.Unit, s.N)
	}

	return w.Flush()
}
