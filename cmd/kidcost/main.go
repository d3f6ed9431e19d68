package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/kidcost/kidcost/internal/benefits"
	"github.com/kidcost/kidcost/internal/config"
	"github.com/kidcost/kidcost/internal/datasource"
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/kidcost/kidcost/internal/events"
	"github.com/kidcost/kidcost/internal/inflation"
	"github.com/kidcost/kidcost/internal/output"
	"github.com/kidcost/kidcost/internal/rates"
	"github.com/kidcost/kidcost/internal/sim"
	"github.com/kidcost/kidcost/internal/tax"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "kidcost %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "kidcost",
	Short: "Child-raising cost simulator",
	Long:  "Simulates the lifetime cost of raising a child under the Singapore fiscal regime",
}

// stack bundles the wired engines for one session.
type stack struct {
	tables    *rates.Tables
	generator *events.Generator
	taxEngine *tax.Engine
	benefits  *benefits.Engine
	adjuster  *inflation.Adjuster
	store     datasource.KVStore
}

func (s *stack) close() {
	if s.store != nil {
		s.store.Close()
	}
}

// buildStack loads rate tables, resolves CPI data through the fallback
// chain and wires the engines together.
func buildStack(ratesFile, cachePath string) (*stack, error) {
	var tables *rates.Tables
	var err error
	if ratesFile != "" {
		tables, err = rates.LoadFromFile(ratesFile)
		if err != nil {
			return nil, err
		}
	} else {
		tables = rates.NewTables2025()
	}

	opts, err := config.DataSourceOptions()
	if err != nil {
		return nil, err
	}

	var store datasource.KVStore
	if cachePath != "" {
		store, err = datasource.OpenStore(cachePath)
		if err != nil {
			return nil, err
		}
	}

	client := datasource.NewClient(opts, store, slog.Default())
	adjuster := inflation.NewFromSource(context.Background(), client)
	if adjuster.Degraded() {
		slog.Warn("running on embedded CPI reference data")
	}

	taxEngine := tax.NewEngine(tables)
	benefitEngine := benefits.NewEngine(tables)
	return &stack{
		tables:    tables,
		taxEngine: taxEngine,
		benefits:  benefitEngine,
		adjuster:  adjuster,
		generator: events.NewGenerator(taxEngine, benefitEngine, adjuster, tables),
		store:     store,
	}, nil
}

// decideIndex picks an option under a spending policy.
func decideIndex(ev domain.CostEvent, policy string) int {
	switch policy {
	case "median":
		return len(ev.Options) / 2
	case "expensive":
		best := 0
		for i, opt := range ev.Options {
			if opt.OneTimeCost.GreaterThan(ev.Options[best].OneTimeCost) {
				best = i
			}
		}
		return best
	default: // cheapest
		best := 0
		for i, opt := range ev.Options {
			if opt.OneTimeCost.LessThan(ev.Options[best].OneTimeCost) {
				best = i
			}
		}
		return best
	}
}

// runToCompletion drives a session non-interactively, resolving every
// event under the spending policy.
func runToCompletion(driver *sim.Driver, policy string) error {
	if err := driver.Start(); err != nil {
		return err
	}
	for driver.Status() != domain.StatusStopped {
		for {
			ev, ok := driver.NextPendingEvent()
			if !ok {
				break
			}
			var err error
			if len(ev.Options) > 0 {
				err = driver.Decide(ev.ID, decideIndex(ev, policy))
			} else {
				err = driver.Acknowledge(ev.ID)
			}
			if err != nil {
				return err
			}
		}
		if driver.Status() != domain.StatusRunning {
			break
		}
		if err := driver.Tick(); err != nil {
			return err
		}
	}
	return nil
}

func simulateCmd() *cobra.Command {
	var ratesFile, cachePath, policy, format, outFile string
	cmd := &cobra.Command{
		Use:   "simulate [profile-file]",
		Short: "Run a full simulation from birth to adulthood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			profile, err := parser.LoadProfile(args[0])
			if err != nil {
				return err
			}

			st, err := buildStack(ratesFile, cachePath)
			if err != nil {
				return err
			}
			defer st.close()

			driver, err := sim.New(profile, st.generator, slog.Default())
			if err != nil {
				return err
			}
			if err := runToCompletion(driver, policy); err != nil {
				return err
			}

			snap := driver.Snapshot()
			switch format {
			case "json":
				data, err := output.FormatJSON(&snap)
				if err != nil {
					return err
				}
				return writeOut(outFile, data)
			case "csv":
				data, err := output.FormatCSV(&snap)
				if err != nil {
					return err
				}
				return writeOut(outFile, data)
			default:
				output.WriteConsoleReport(os.Stdout, &snap)
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&ratesFile, "rates", "", "YAML rates file overriding the embedded 2025 tables")
	cmd.Flags().StringVar(&cachePath, "cache", "", "path to the persistent data cache (SQLite)")
	cmd.Flags().StringVar(&policy, "policy", "cheapest", "decision policy: cheapest, median or expensive")
	cmd.Flags().StringVar(&format, "format", "console", "output format: console, json or csv")
	cmd.Flags().StringVar(&outFile, "output", "", "write output to file instead of stdout")
	return cmd
}

func writeOut(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func profileCmd() *cobra.Command {
	var cachePath string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Save and inspect profiles in the persistent cache",
	}

	save := &cobra.Command{
		Use:   "save [id] [profile-file]",
		Short: "Validate a profile file and store it under an identifier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := config.NewInputParser().LoadProfile(args[1])
			if err != nil {
				return err
			}
			store, err := datasource.OpenStore(cachePath)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := config.SaveProfile(store, args[0], profile); err != nil {
				return err
			}
			fmt.Printf("Saved profile %q\n", args[0])
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show [id]",
		Short: "Print a stored profile as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := datasource.OpenStore(cachePath)
			if err != nil {
				return err
			}
			defer store.Close()
			profile, ok, err := config.LoadStoredProfile(store, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no profile stored under %q", args[0])
			}
			data, err := output.FormatProfileJSON(profile)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(append(data, '\n'))
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&cachePath, "cache", "kidcost.db", "path to the persistent data cache (SQLite)")
	cmd.AddCommand(save, show)
	return cmd
}

func taxCmd() *cobra.Command {
	var ratesFile string
	cmd := &cobra.Command{
		Use:   "tax [profile-file]",
		Short: "Compute the household's annual tax for the profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := config.NewInputParser().LoadProfile(args[0])
			if err != nil {
				return err
			}
			st, err := buildStack(ratesFile, "")
			if err != nil {
				return err
			}
			defer st.close()

			result := st.taxEngine.ComputeNetTax(profile, profile.ChildOrder, profile.ChildBornAfterCutoff)
			fmt.Printf("Gross tax:        %s\n", output.FormatCurrency(result.GrossTax()))
			fmt.Printf("Reliefs (capped): %s\n", output.FormatCurrency(result.CappedRelief))
			fmt.Printf("Rebate:           %s\n", output.FormatCurrency(result.Rebate))
			fmt.Printf("Net tax payable:  %s\n", output.FormatCurrency(result.NetTaxPayable))
			fmt.Printf("Effective rate:   %s%%\n", result.EffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&ratesFile, "rates", "", "YAML rates file overriding the embedded 2025 tables")
	return cmd
}

func subsidyCmd() *cobra.Command {
	var ratesFile string
	cmd := &cobra.Command{
		Use:   "subsidy [profile-file]",
		Short: "Show the monthly childcare subsidy for the profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := config.NewInputParser().LoadProfile(args[0])
			if err != nil {
				return err
			}
			st, err := buildStack(ratesFile, "")
			if err != nil {
				return err
			}
			defer st.close()

			scheme := st.benefits.ChildcareSubsidy()
			if !st.benefits.Eligible(scheme, profile, 24) {
				fmt.Println("Not eligible for the childcare subsidy")
				return nil
			}
			fmt.Printf("Monthly childcare subsidy: %s\n", output.FormatCurrency(st.benefits.Value(scheme, profile)))
			return nil
		},
	}
	cmd.Flags().StringVar(&ratesFile, "rates", "", "YAML rates file overriding the embedded 2025 tables")
	return cmd
}

func adjustCmd() *cobra.Command {
	var cachePath string
	cmd := &cobra.Command{
		Use:   "adjust [amount] [from-year] [to-year]",
		Short: "Convert a cost between reference years using CPI",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("amount %q: %w", args[0], err)
			}
			var fromYear, toYear int
			if _, err := fmt.Sscanf(args[1], "%d", &fromYear); err != nil {
				return fmt.Errorf("from-year %q: %w", args[1], err)
			}
			if _, err := fmt.Sscanf(args[2], "%d", &toYear); err != nil {
				return fmt.Errorf("to-year %q: %w", args[2], err)
			}

			st, err := buildStack("", cachePath)
			if err != nil {
				return err
			}
			defer st.close()

			adjusted := st.adjuster.Adjust(amount, fromYear, toYear)
			fmt.Printf("%s in %d ≈ %s in %d\n", output.FormatCurrency(amount), fromYear, output.FormatCurrency(adjusted), toYear)
			return nil
		},
	}
	cmd.Flags().StringVar(&cachePath, "cache", "", "path to the persistent data cache (SQLite)")
	return cmd
}

func main() {
	rootCmd.AddCommand(simulateCmd(), taxCmd(), subsidyCmd(), adjustCmd(), profileCmd(), versionCmd())
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
