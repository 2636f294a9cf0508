// Command neatrun drives a single evolutionary run end to end: load
// configuration, build the initial population, run the generational loop
// until the evaluation scheme's stop condition, a generation cap, or an
// interrupt signal ends it, then write the run's statistics to the output
// directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/kestrelevo/neatcore/evolution"
	"github.com/kestrelevo/neatcore/experiments/xor"
	"github.com/kestrelevo/neatcore/neat"
	"github.com/kestrelevo/neatcore/neat/genetics"
	"github.com/kestrelevo/neatcore/network"
)

func main() {
	var outDirPath = flag.String("out", "./out", "The output directory to store results.")
	var configPath = flag.String("config", "./data/xor.neat.yml", "The NEAT options configuration file (.yml/.yaml or .json).")
	var experimentName = flag.String("experiment", "XOR", "The name of the experiment to run. [XOR]")
	var maxGenerations = flag.Int("generations", 100, "The maximum number of generations to run. 0 means unbounded.")
	var logLevel = flag.String("log_level", "", "Overrides the log_level set in the configuration file.")
	var statsWindow = flag.Int("stats_window", 0, "Overrides the statistics_moving_average_length set in the configuration file. 0 keeps the configured value.")
	var reportDepth = flag.Bool("report_depth", false, "Log the fittest genome's maximal activation depth after the run.")
	flag.Parse()

	opts, err := neat.ReadOptionsFromFile(*configPath)
	if err != nil {
		neat.ErrorLog(fmt.Sprintf("failed to load NEAT options: %s", err))
		os.Exit(1)
	}
	if *logLevel != "" {
		if err := neat.InitLogger(*logLevel); err != nil {
			neat.ErrorLog(fmt.Sprintf("failed to override log level: %s", err))
			os.Exit(1)
		}
	}
	if *statsWindow > 0 {
		if err := opts.OverrideStatisticsMovingAverageLength(*statsWindow); err != nil {
			neat.ErrorLog(fmt.Sprintf("failed to override stats_window: %s", err))
			os.Exit(1)
		}
	}

	var scheme evolution.EvaluationScheme
	switch *experimentName {
	case "XOR":
		scheme = xor.Scheme{}
	default:
		neat.ErrorLog(fmt.Sprintf("unsupported experiment: %s", *experimentName))
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDirPath, os.ModePerm); err != nil {
		neat.ErrorLog(fmt.Sprintf("failed to create output directory: %s", err))
		os.Exit(1)
	}

	exp := opts.ToExperiment(scheme)

	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))
	innovations := genetics.NewInnovationSequence(0, exp.Model.NodeIOCount())

	pop, err := evolution.NewInitialPopulation(exp.PopulationSize, exp.Model, exp.InitialInterconnections, innovations, rng)
	if err != nil {
		neat.ErrorLog(fmt.Sprintf("failed to build initial population: %s", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ctx = neat.NewContext(ctx, opts)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-signals
		neat.InfoLog("received interrupt, cancelling the run")
		cancel()
	}()

	neat.InfoLog(fmt.Sprintf("starting %s with seed %d, population %d", *experimentName, seed, exp.PopulationSize))
	finalPop, stats, runErr := evolution.Run(ctx, exp, pop, innovations, rng, *maxGenerations)

	var log evolution.GenerationLog
	for _, s := range stats {
		log.Append(s)
	}
	neat.InfoLog(log.Summarize())

	npzPath := filepath.Join(*outDirPath, fmt.Sprintf("%s_run.npz", *experimentName))
	npzFile, err := os.Create(npzPath)
	if err != nil {
		neat.ErrorLog(fmt.Sprintf("failed to create output file: %s", err))
		os.Exit(1)
	}
	defer npzFile.Close()
	if err := log.WriteNPZ(npzFile); err != nil {
		neat.ErrorLog(fmt.Sprintf("failed to write run statistics: %s", err))
		os.Exit(1)
	}

	if runErr != nil {
		neat.ErrorLog(fmt.Sprintf("run ended with error: %s", runErr))
		os.Exit(1)
	}
	neat.InfoLog(fmt.Sprintf("final population: generation %d, %d genomes, %d species",
		finalPop.Generation, len(finalPop.Genomes), len(finalPop.Species)))

	if *reportDepth {
		reportFittestDepth(finalPop, exp.Model)
	}
}

// reportFittestDepth decodes the fittest genome in pop and logs its maximal
// activation depth, the gonum-backed diagnostic network.DepthReporter
// exposes over a decoded phenome's wiring.
func reportFittestDepth(pop *evolution.Population, model genetics.Model) {
	var best *genetics.Genome
	for _, g := range pop.Genomes {
		if g.Fitness == nil {
			continue
		}
		if best == nil || genetics.ByPrimaryFitnessAscending(*best.Fitness, *g.Fitness) < 0 {
			best = g
		}
	}
	if best == nil {
		neat.WarnLog("no genome has a fitness assigned, skipping depth report")
		return
	}
	phenome, err := network.Decode(best, model)
	if err != nil {
		neat.WarnLog(fmt.Sprintf("failed to decode fittest genome for depth report: %s", err))
		return
	}
	reporter, ok := phenome.(network.DepthReporter)
	if !ok {
		neat.WarnLog("decoded phenome does not support depth reporting")
		return
	}
	neat.InfoLog(fmt.Sprintf("fittest genome %d: max activation depth %d", best.ID, reporter.MaxActivationDepth()))
}
