// Command schedgen generates round-robin pool schedules offline from a
// YAML team list, without a database or server.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/piotronm/tourney-backend-sub001/scheduling"
)

const defaultConfigFile = "teams.yaml"

type teamConfig struct {
	Name     string `yaml:"name"`
	PoolHint *int   `yaml:"pool_hint,omitempty"`
}

type generateConfig struct {
	Teams           []teamConfig `yaml:"teams"`
	MaxPools        int          `yaml:"max_pools"`
	Seed            *uint32      `yaml:"seed,omitempty"`
	Shuffle         bool         `yaml:"shuffle"`
	PoolStrategy    string       `yaml:"pool_strategy,omitempty"`
	AvoidBackToBack bool         `yaml:"avoid_back_to_back"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "schedgen",
		Short: "Round-robin pool schedule generator",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter teams.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	var configFile string
	var outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule from a team list",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile)
		},
	}
	generateCmd.Flags().StringVar(&configFile, "config", "", "Path to config file (default: teams.yaml in current directory)")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.csv", "Output file path (.csv or .xlsx)")

	rootCmd.AddCommand(initCmd, generateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}
	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("Created %s\n", outputPath)
	return nil
}

func runGenerate(configPath, outputPath string) error {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	var cfg generateConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	entries := make([]scheduling.TeamEntry, len(cfg.Teams))
	for i, t := range cfg.Teams {
		entries[i] = scheduling.TeamEntry{Name: t.Name, PoolHint: t.PoolHint}
	}
	maxPools := cfg.MaxPools
	if maxPools == 0 {
		maxPools = 1
	}

	opts := scheduling.DefaultOptions()
	opts.Shuffle = cfg.Shuffle
	opts.AvoidBackToBack = cfg.AvoidBackToBack
	if cfg.PoolStrategy != "" {
		opts.PoolStrategy = scheduling.PoolStrategy(cfg.PoolStrategy)
	}
	if cfg.Seed != nil {
		opts.Seed = *cfg.Seed
	}

	schedule, err := scheduling.BuildSchedule(entries, maxPools, opts)
	if err != nil {
		return fmt.Errorf("generating schedule: %w", err)
	}

	rows := scheduleRows(schedule)
	if isXLSX(outputPath) {
		err = writeXLSX(outputPath, rows)
	} else {
		err = writeCSV(outputPath, rows)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d matches across %d pools to %s\n",
		len(schedule.Matches), len(schedule.Pools), outputPath)
	return nil
}

func scheduleRows(schedule *scheduling.Schedule) [][]string {
	teamName := make(map[int]string, len(schedule.Teams))
	for _, t := range schedule.Teams {
		teamName[t.ID] = t.Name
	}
	poolName := make(map[int]string, len(schedule.Pools))
	for _, p := range schedule.Pools {
		poolName[p.ID] = p.Name
	}

	rows := [][]string{{"match_number", "pool", "round", "team_a", "team_b", "slot"}}
	for _, m := range schedule.Matches {
		slot := ""
		if m.SlotIndex != nil {
			slot = strconv.Itoa(*m.SlotIndex)
		}
		rows = append(rows, []string{
			strconv.Itoa(m.MatchNumber),
			poolName[m.PoolID],
			strconv.Itoa(m.Round),
			teamName[m.TeamAID],
			teamName[m.TeamBID],
			slot,
		})
	}
	return rows
}

func isXLSX(path string) bool {
	return len(path) > 5 && path[len(path)-5:] == ".xlsx"
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func writeXLSX(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Schedule"
	f.SetSheetName(f.GetSheetName(0), sheet)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

const configTemplate = `# Schedule Generator Configuration
# ================================
# Teams are listed in registration order. An optional pool_hint groups
# teams into a specific pool when pool_strategy is respect-input.

teams:
  - name: "Hawks"
  - name: "Owls"
  - name: "Crows"
  - name: "Eagles"

# Upper bound on the number of pools.
max_pools: 1

# Seed for deterministic generation. Omit to use the default.
# seed: 42

# Shuffle team order before numbering.
shuffle: false

# Pool partitioning: respect-input (honor pool_hint) or balanced.
pool_strategy: "respect-input"

# Order matches into time slots so teams get rest between games.
avoid_back_to_back: false
`
