package titfortat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/text/language"

	"github.com/boyter/titfortat/internal/analysis"
	"github.com/boyter/titfortat/internal/bot"
	"github.com/boyter/titfortat/internal/evolve"
	"github.com/boyter/titfortat/internal/export"
	"github.com/boyter/titfortat/internal/game"
	"github.com/boyter/titfortat/internal/report"
	"github.com/boyter/titfortat/internal/scenario"
	"github.com/boyter/titfortat/internal/storage"
	"github.com/boyter/titfortat/internal/storage/sqlite"
)

type runner struct {
	cfg    Config
	out    io.Writer
	logger *log.Logger
	report *report.Writer
	now    func() time.Time
}

// Run executes the configured command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r := &runner{
		cfg:    cfg,
		out:    out,
		logger: log.New(errOut, "", 0),
		report: report.New(language.English),
		now:    time.Now,
	}

	switch cfg.Command {
	case CommandPlay:
		return r.play(ctx)
	case CommandTournament:
		return r.tournament(ctx)
	case CommandEvolve:
		return r.evolve(ctx)
	case CommandScenarios:
		return r.scenarios()
	case CommandStrategies:
		return r.strategies()
	case CommandHistory:
		return r.history(ctx)
	}
	return fmt.Errorf("unknown command %q", cfg.Command)
}

// table is everything a game or tournament needs.
type table struct {
	scenario scenario.Scenario
	engine   *game.Engine
	registry *bot.Registry
	seed     uint64
}

func (r *runner) loadScenarios() ([]scenario.Scenario, error) {
	list := scenario.Presets()
	if r.cfg.ScenarioFile == "" {
		return list, nil
	}
	extra, err := scenario.LoadFile(r.cfg.ScenarioFile)
	if err != nil {
		return nil, err
	}
	// file scenarios shadow presets with the same id
	return append(extra, list...), nil
}

func (r *runner) setup() (table, error) {
	list, err := r.loadScenarios()
	if err != nil {
		return table{}, err
	}
	sc, err := scenario.Find(list, r.cfg.Scenario)
	if err != nil {
		return table{}, err
	}

	seed := r.cfg.Seed
	if seed == 0 {
		if seed, err = bot.NewSeed(); err != nil {
			return table{}, err
		}
	}
	r.logger.Printf("scenario=%s rounds=%d seed=%d", sc.ID, r.cfg.Rounds, seed)

	registry, err := r.registry(seed)
	if err != nil {
		return table{}, err
	}

	engine := game.NewEngine(sc.PayoffMatrix)
	if r.cfg.Verbose {
		engine.OnRound = func(p1, p2 game.Strategy, round game.RoundResult) {
			r.logger.Printf("%s vs %s round %d: %s/%s -> %v/%v",
				p1.Name(), p2.Name(), round.Round,
				round.Player1Action, round.Player2Action,
				round.Player1TotalScore, round.Player2TotalScore)
		}
	}

	return table{scenario: sc, engine: engine, registry: registry, seed: seed}, nil
}

func (r *runner) registry(seed uint64) (*bot.Registry, error) {
	rng := bot.NewSource(seed)
	registry := bot.NewRegistry(rng)
	if r.cfg.Extras {
		registry.AddExtras(rng)
	}
	if r.cfg.GenomeFile == "" {
		return registry, nil
	}

	f, err := os.Open(r.cfg.GenomeFile)
	if err != nil {
		return nil, fmt.Errorf("open genome: %w", err)
	}
	defer f.Close()

	nn, err := bot.LoadNeuralNetworkBot(f, "")
	if err != nil {
		return nil, err
	}
	if err := registry.Register(nn); err != nil {
		return nil, err
	}
	return registry, nil
}

func (r *runner) play(ctx context.Context) error {
	t, err := r.setup()
	if err != nil {
		return err
	}
	p1, err := t.registry.Lookup(r.cfg.Player1)
	if err != nil {
		return err
	}
	p2, err := t.registry.Lookup(r.cfg.Player2)
	if err != nil {
		return err
	}

	result := t.engine.PlayGame(p1, p2, r.cfg.Rounds)
	if err := r.report.Game(r.out, t.scenario, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return r.finish(ctx, export.Game(t.scenario.Name, r.now(), result), t)
}

func (r *runner) tournament(ctx context.Context) error {
	t, err := r.setup()
	if err != nil {
		return err
	}
	lineUp, err := t.registry.Select(r.cfg.StrategyIDs())
	if err != nil {
		return err
	}
	return r.roundRobin(ctx, t, lineUp)
}

func (r *runner) roundRobin(ctx context.Context, t table, lineUp []game.Strategy) error {
	if len(lineUp) < 2 {
		return fmt.Errorf("a tournament needs at least two strategies, got %d", len(lineUp))
	}

	results := t.engine.RunTournament(lineUp, r.cfg.Rounds)
	if err := r.report.Tournament(r.out, t.scenario, results); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if r.cfg.Runs > 1 {
		summaries := analysis.Repeat(t.engine, lineUp, r.cfg.Rounds, r.cfg.Runs)
		if err := r.report.Summaries(r.out, r.cfg.Runs, summaries); err != nil {
			return fmt.Errorf("write summaries: %w", err)
		}
	}
	return r.finish(ctx, export.Tournament(t.scenario.Name, r.now(), results), t)
}

func (r *runner) evolve(ctx context.Context) error {
	t, err := r.setup()
	if err != nil {
		return err
	}
	opts, err := evolve.LoadOptions(r.cfg.NeatConfig)
	if err != nil {
		return err
	}
	start, err := evolve.LoadStartGenome(r.cfg.StartGenome)
	if err != nil {
		return err
	}

	opponents := t.registry.All()
	ev := &evolve.Evaluator{
		Engine:    t.engine,
		Opponents: opponents,
		Rounds:    r.cfg.Rounds,
		Logger:    r.logger,
	}
	champion, fitness, err := evolve.Run(ctx, opts, start, ev, int64(t.seed))
	if err != nil {
		return err
	}
	r.logger.Printf("champion fitness=%.4f", fitness)

	return r.roundRobin(ctx, t, append(opponents, champion))
}

func (r *runner) scenarios() error {
	list, err := r.loadScenarios()
	if err != nil {
		return err
	}
	return r.report.Scenarios(r.out, list)
}

func (r *runner) strategies() error {
	registry, err := r.registry(1)
	if err != nil {
		return err
	}
	return r.report.Strategies(r.out, registry.All())
}

func (r *runner) history(ctx context.Context) error {
	store, err := sqlite.Open(r.cfg.ArchivePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			r.logger.Printf("close archive: %v", err)
		}
	}()

	if r.cfg.RunID != "" {
		run, err := store.GetRun(ctx, r.cfg.RunID)
		if err != nil {
			return fmt.Errorf("get run %s: %w", r.cfg.RunID, err)
		}
		_, err = r.out.Write(run.Document)
		return err
	}

	runs, err := store.ListRuns(ctx, r.cfg.Limit)
	if err != nil {
		return err
	}
	for _, run := range runs {
		fmt.Fprintf(r.out, "%s  %s  %-10s  %-30s  rounds=%d seed=%d\n",
			run.ID, run.CreatedAt.Format(time.RFC3339), run.Kind, run.Scenario, run.Rounds, run.Seed)
	}
	return nil
}

// finish exports and archives doc as configured.
func (r *runner) finish(ctx context.Context, doc export.Document, t table) error {
	if r.cfg.ExportPath == "" && r.cfg.ArchivePath == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, doc); err != nil {
		return err
	}

	switch r.cfg.ExportPath {
	case "":
	case "-":
		if _, err := r.out.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
	default:
		if err := os.WriteFile(r.cfg.ExportPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		r.logger.Printf("exported %s to %s", doc.Type, r.cfg.ExportPath)
	}

	if r.cfg.ArchivePath == "" {
		return nil
	}
	store, err := sqlite.Open(r.cfg.ArchivePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			r.logger.Printf("close archive: %v", err)
		}
	}()

	run, err := store.SaveRun(ctx, storage.Run{
		Kind:     string(doc.Type),
		Scenario: doc.Scenario,
		Rounds:   r.cfg.Rounds,
		Seed:     t.seed,
		Document: buf.Bytes(),
	})
	if err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	r.logger.Printf("archived run %s", run.ID)
	return nil
}
