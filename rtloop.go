// Real-time control loop service

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/mmcloughlin/profile"
	"github.com/pelletier/go-toml/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"example.com/rt-loop/base/timemath"

	"example.com/rt-loop/benchmark"

	"example.com/rt-loop/core/loop"
	"example.com/rt-loop/core/pacer"
	"example.com/rt-loop/core/pid"
	"example.com/rt-loop/core/state"

	"example.com/rt-loop/driver/clock"
	"example.com/rt-loop/driver/cpu"
	"example.com/rt-loop/driver/plant"
)

const (
	waitStrategySpin   = "spin"
	waitStrategyHybrid = "hybrid"

	defaultMetricsAddr = "127.0.0.1:8080"
)

type svcConfig struct {
	LoopFrequencyHz   float64 `toml:"loop_frequency_hz"`
	SampleFrequencyHz float64 `toml:"sample_frequency_hz"`
	Setpoint          float64 `toml:"setpoint"`
	KP                float64 `toml:"kp"`
	KI                float64 `toml:"ki"`
	KD                float64 `toml:"kd"`
	OutputLimit       float64 `toml:"output_limit"`
	WaitStrategy      string  `toml:"wait_strategy,omitempty"`
	CPUCore           int     `toml:"cpu_core"`
	MetricsAddr       string  `toml:"metrics_address,omitempty"`
	PlantTimeConstant float64 `toml:"plant_time_constant"`
	WarmupSeconds     float64 `toml:"warmup_seconds,omitempty"`
}

var (
	log *zap.Logger
)

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
}

func runMonitor(log *zap.Logger, addr string) {
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, nil)
	log.Fatal("failed to serve metrics", zap.Error(err))
}

func loadConfig(configFile string) svcConfig {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	var cfg svcConfig
	cfg.CPUCore = -1
	err = toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		log.Fatal("failed to decode configuration", zap.Error(err))
	}
	if cfg.LoopFrequencyHz <= 0 {
		log.Fatal("loop_frequency_hz not specified in config")
	}
	if cfg.SampleFrequencyHz <= 0 {
		cfg.SampleFrequencyHz = cfg.LoopFrequencyHz
	}
	if cfg.OutputLimit <= 0 {
		log.Fatal("output_limit must be positive")
	}
	if cfg.PlantTimeConstant <= 0 {
		log.Fatal("plant_time_constant must be positive")
	}
	switch cfg.WaitStrategy {
	case "", waitStrategySpin, waitStrategyHybrid:
	default:
		log.Fatal("unexpected wait_strategy", zap.String("wait_strategy", cfg.WaitStrategy))
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = defaultMetricsAddr
	}
	return cfg
}

func runLoop(configFile string) {
	ctx := context.Background()

	cfg := loadConfig(configFile)

	mclk := &clock.SystemClock{Log: log}

	if cfg.CPUCore >= 0 {
		err := cpu.Pin(cfg.CPUCore)
		if err != nil {
			log.Fatal("failed to pin loop thread",
				zap.Int("core", cfg.CPUCore), zap.Error(err))
		}
		log.Info("loop thread pinned", zap.Int("core", cfg.CPUCore))
	}

	sim := plant.NewSimulated(
		cfg.PlantTimeConstant, 1.0/cfg.LoopFrequencyHz)
	err := sim.Init()
	if err != nil {
		hwErr := &loop.HardwareInitError{Device: "simulated plant", Err: err}
		log.Fatal("failed to initialize plant", zap.Error(hwErr))
	}

	slot := state.NewSlot[float64]()
	go func() {
		err := loop.RunSampler(ctx, log, mclk, cfg.SampleFrequencyHz, sim, slot)
		log.Fatal("sampler stopped", zap.Error(err))
	}()

	p := pacer.NewPacer(cfg.LoopFrequencyHz, mclk)
	if cfg.WaitStrategy == waitStrategyHybrid {
		p.SetWaitStrategy(pacer.HybridWait{})
	}

	l := &loop.Loop{
		Log:           log,
		Clk:           mclk,
		Pacer:         p,
		Controller:    pid.NewController(cfg.KP, cfg.KI, cfg.KD, cfg.OutputLimit),
		Input:         slot,
		Actuator:      sim,
		Setpoint:      cfg.Setpoint,
		WarmupTimeout: timemath.Duration(cfg.WarmupSeconds),
	}

	go runMonitor(log, cfg.MetricsAddr)

	log.Info("starting control loop",
		zap.Float64("frequency", cfg.LoopFrequencyHz),
		zap.Duration("period", p.Period()),
	)
	err = l.Run(ctx)
	s := p.Stats()
	log.Fatal("control loop stopped", zap.Error(err),
		zap.Uint64("cycles", s.Cycles),
		zap.Uint64("deadline misses", s.DeadlineMisses),
	)
}

func runPacerBenchmark(hz float64, numCycles int, core int, profileCPU bool) {
	mclk := &clock.SystemClock{Log: log}

	if core >= 0 {
		err := cpu.Pin(core)
		if err != nil {
			log.Fatal("failed to pin benchmark thread",
				zap.Int("core", core), zap.Error(err))
		}
	}
	if profileCPU {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	benchmark.RunPacerBenchmark(hz, numCycles, mclk)
}

func exitWithUsage() {
	fmt.Println("<usage>")
	os.Exit(1)
}

func main() {
	var (
		verbose    bool
		configFile string
		hz         float64
		numCycles  int
		core       int
		profileCPU bool
	)

	runFlags := flag.NewFlagSet("run", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	runFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	runFlags.StringVar(&configFile, "config", "", "Config file")

	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.Float64Var(&hz, "hz", 1000, "Cycle frequency")
	benchmarkFlags.IntVar(&numCycles, "cycles", 100_000, "Number of cycles")
	benchmarkFlags.IntVar(&core, "core", -1, "CPU core to pin to")
	benchmarkFlags.BoolVar(&profileCPU, "profile", false, "Write a CPU profile")

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case runFlags.Name():
		err := runFlags.Parse(os.Args[2:])
		if err != nil || runFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runLoop(configFile)
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		if hz <= 0 || numCycles <= 0 {
			exitWithUsage()
		}
		initLogger(verbose)
		runPacerBenchmark(hz, numCycles, core, profileCPU)
	default:
		exitWithUsage()
	}
}
