package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zenhealth/hospital-analytics/internal/adapters/database"
	"github.com/zenhealth/hospital-analytics/internal/application/report"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/clients/postgres"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/observability"
	"github.com/zenhealth/hospital-analytics/pkg/config"
)

const previewChars = 1500

var (
	flagYear   int
	flagMonth  int
	flagBranch int
	flagOut    string
	flagXLSX   bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the monthly hospital performance report",
		Long: `Assembles the monthly performance report (summary metrics, occupancy,
department and doctor tables, revenue and outcomes) and writes it as text,
CSV and JSON files, optionally with an XLSX workbook. Missing year, month
and branch are prompted for interactively.`,
		RunE: runReport,
	}
	cmd.Flags().IntVar(&flagYear, "year", 0, "report year (e.g. 2026)")
	cmd.Flags().IntVar(&flagMonth, "month", 0, "report month (1-12)")
	cmd.Flags().IntVar(&flagBranch, "branch", 0, "branch id (0 for all branches)")
	cmd.Flags().StringVar(&flagOut, "out", ".", "output directory")
	cmd.Flags().BoolVar(&flagXLSX, "xlsx", false, "also write an XLSX workbook")
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	observability.InitLogger("hospital-analytics-report", cfg.App.Env)

	year, month, branchID, err := resolveParams(cmd, os.Stdin)
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()

	generator := report.NewGenerator(database.NewReportAdapter(pgClient))
	r, err := generator.Run(cmd.Context(), year, month, branchID)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	files, err := report.WriteFiles(r, report.ExportOptions{
		Dir:      flagOut,
		Currency: cfg.App.CurrencySymbol,
		XLSX:     flagXLSX,
	})
	if err != nil {
		return fmt.Errorf("export report: %w", err)
	}

	for _, file := range files {
		fmt.Printf("Saved: %s\n", file)
	}

	text := report.RenderText(r, cfg.App.CurrencySymbol)
	fmt.Println()
	fmt.Println("Preview:")
	fmt.Println()
	if len(text) > previewChars {
		fmt.Println(text[:previewChars])
		fmt.Println("\n... (see full report in file)")
	} else {
		fmt.Println(text)
	}
	return nil
}

// resolveParams fills missing year/month/branch from interactive prompts.
// An empty branch answer means all branches.
func resolveParams(cmd *cobra.Command, in io.Reader) (int, int, *int, error) {
	reader := bufio.NewReader(in)

	year := flagYear
	if year == 0 {
		value, err := promptInt(reader, fmt.Sprintf("Enter year (e.g., %d): ", time.Now().Year()))
		if err != nil {
			return 0, 0, nil, err
		}
		year = value
	}

	month := flagMonth
	if month == 0 {
		value, err := promptInt(reader, "Enter month (1-12): ")
		if err != nil {
			return 0, 0, nil, err
		}
		month = value
	}

	var branchID *int
	if cmd.Flags().Changed("branch") {
		if flagBranch > 0 {
			branchID = &flagBranch
		}
	} else {
		value, err := promptOptionalInt(reader, "Enter branch ID (press Enter for all branches): ")
		if err != nil {
			return 0, 0, nil, err
		}
		branchID = value
	}
	return year, month, branchID, nil
}

func promptInt(reader *bufio.Reader, prompt string) (int, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}
	value, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", strings.TrimSpace(line))
	}
	return value, nil
}

// promptOptionalInt reads an integer answer; a blank answer yields nil
func promptOptionalInt(reader *bufio.Reader, prompt string) (*int, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read input: %w", err)
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", trimmed)
	}
	if value <= 0 {
		return nil, nil
	}
	return &value, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
