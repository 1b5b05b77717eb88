// Package titfortat implements the titfortat command: single games,
// round-robin tournaments, NEAT evolution and the run archive.
package titfortat

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/boyter/titfortat/internal/config"
)

// MaxRounds caps rounds per game on the command line.
const MaxRounds = 200

// Commands understood by Run.
const (
	CommandPlay       = "play"
	CommandTournament = "tournament"
	CommandEvolve     = "evolve"
	CommandScenarios  = "scenarios"
	CommandStrategies = "strategies"
	CommandHistory    = "history"
)

var commands = []string{
	CommandPlay,
	CommandTournament,
	CommandEvolve,
	CommandScenarios,
	CommandStrategies,
	CommandHistory,
}

// Config holds command configuration. Env tags are read with the
// TITFORTAT_ prefix.
type Config struct {
	Command string

	Scenario     string `env:"SCENARIO"      envDefault:"tariff-war"`
	ScenarioFile string `env:"SCENARIO_FILE"`
	Rounds       int    `env:"ROUNDS"        envDefault:"20"`
	Seed         uint64 `env:"SEED"`
	Runs         int    `env:"RUNS"          envDefault:"1"`
	Player1      string `env:"PLAYER1"       envDefault:"tit-for-tat"`
	Player2      string `env:"PLAYER2"       envDefault:"always-cooperate"`
	Strategies   string `env:"STRATEGIES"`
	ArchivePath  string `env:"ARCHIVE_PATH"`
	ExportPath   string `env:"EXPORT_PATH"`
	GenomeFile   string `env:"GENOME_FILE"`
	NeatConfig   string `env:"NEAT_CONFIG"`
	StartGenome  string `env:"START_GENOME"  envDefault:"configs/prisoners.startgenes"`
	Extras       bool   `env:"EXTRAS"`
	Verbose      bool   `env:"VERBOSE"`

	Limit int
	RunID string
}

// ParseConfig reads the environment, then the command name and flags
// from args. With no command the tournament runs.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.Command = CommandTournament
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cfg.Command, args = args[0], args[1:]
	}
	if !knownCommand(cfg.Command) {
		return Config{}, fmt.Errorf("unknown command %q (want one of %s)", cfg.Command, strings.Join(commands, ", "))
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "scenario id")
	fs.StringVar(&cfg.ScenarioFile, "scenario-file", cfg.ScenarioFile, "YAML file with extra scenarios")
	fs.IntVar(&cfg.Rounds, "rounds", cfg.Rounds, "rounds per game (1-200)")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for random strategies (0 = random)")
	fs.IntVar(&cfg.Runs, "runs", cfg.Runs, "tournaments to run for statistics")
	fs.StringVar(&cfg.Player1, "p1", cfg.Player1, "player 1 strategy id")
	fs.StringVar(&cfg.Player2, "p2", cfg.Player2, "player 2 strategy id")
	fs.StringVar(&cfg.Strategies, "strategies", cfg.Strategies, "comma-separated tournament line-up (default: all)")
	fs.StringVar(&cfg.ArchivePath, "archive", cfg.ArchivePath, "path to sqlite run archive")
	fs.StringVar(&cfg.ExportPath, "export", cfg.ExportPath, "write JSON export to this path (- for stdout)")
	fs.StringVar(&cfg.GenomeFile, "genome", cfg.GenomeFile, "plain NEAT genome to enter as a strategy")
	fs.StringVar(&cfg.NeatConfig, "neat-config", cfg.NeatConfig, "NEAT options file for evolve")
	fs.StringVar(&cfg.StartGenome, "start-genome", cfg.StartGenome, "plain NEAT genome evolution starts from")
	fs.BoolVar(&cfg.Extras, "extras", cfg.Extras, "also offer reverse-tit-for-tat, random-defect and often-random-defect")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log every round")
	fs.IntVar(&cfg.Limit, "limit", 20, "runs to list for history")
	fs.StringVar(&cfg.RunID, "id", "", "archived run to print for history")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Rounds < 1 || c.Rounds > MaxRounds {
		return fmt.Errorf("-rounds must be between 1 and %d", MaxRounds)
	}
	if c.Runs < 1 {
		return errors.New("-runs must be >= 1")
	}
	if c.Command == CommandHistory && strings.TrimSpace(c.ArchivePath) == "" {
		return errors.New("history requires -archive")
	}
	if c.Command == CommandEvolve && strings.TrimSpace(c.NeatConfig) == "" {
		return errors.New("evolve requires -neat-config")
	}
	return nil
}

// StrategyIDs splits the -strategies list.
func (c Config) StrategyIDs() []string {
	var ids []string
	for _, id := range strings.Split(c.Strategies, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func knownCommand(name string) bool {
	for _, c := range commands {
		if c == name {
			return true
		}
	}
	return false
}
