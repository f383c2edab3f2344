// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/feltforge/feltforge/cheatnet"
	"github.com/feltforge/feltforge/forge"
	"github.com/feltforge/feltforge/runner"
	"github.com/feltforge/feltforge/state"
	_ "github.com/feltforge/feltforge/vm/replayvm"
)

var RunCmd = cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Run the test cases of a compiled artifact",
	ArgsUsage: "<artifact.json>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "filter",
			Usage: "run only test cases whose name matches the given regex",
			Value: ".*",
		},
		&cli.IntFlag{
			Name:  "jobs",
			Usage: "number of test cases run simultaneously",
			Value: runtime.NumCPU(),
		},
		&cli.Uint64Flag{
			Name:  "max-steps",
			Usage: "step budget per test case, 0 for unbounded",
		},
		&cli.StringFlag{
			Name:  "fork",
			Usage: "state snapshot file backing forked test cases",
		},
		&cli.StringFlag{
			Name:  "vm",
			Usage: "registered virtual machine to run on",
			Value: "replay",
		},
	},
}

// Fixed call frame of driver-run test cases. Test bodies execute as the test
// contract; derived deployment addresses use it as the deployer.
var (
	testContract = forge.Address{0xfe, 0x17}
	testCaller   = forge.Address{0xca, 0x11}
)

type runConfig struct {
	filter   *regexp.Regexp
	jobs     int
	maxSteps uint64
	remote   state.RemoteReader
	block    runner.BlockContext
}

type caseResult struct {
	name    string
	outcome runner.Outcome
}

func doRun(context *cli.Context) error {
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelInfo, false)))

	if context.Args().Len() < 1 {
		return fmt.Errorf("missing artifact file argument")
	}
	unit, err := readUnit(context.Args().Get(0))
	if err != nil {
		return err
	}

	filter, err := regexp.Compile(context.String("filter"))
	if err != nil {
		return err
	}

	jobs := context.Int("jobs")
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	cfg := runConfig{
		filter:   filter,
		jobs:     jobs,
		maxSteps: context.Uint64("max-steps"),
	}
	if forkFile := context.String("fork"); forkFile != "" {
		data, err := os.ReadFile(forkFile)
		if err != nil {
			return fmt.Errorf("failed to read snapshot file: %w", err)
		}
		reader, err := state.NewSnapshotReader(data)
		if err != nil {
			return fmt.Errorf("failed to parse snapshot file: %w", err)
		}
		cfg.remote = reader
	}

	vm, err := forge.NewVirtualMachine(context.String("vm"))
	if err != nil {
		return err
	}

	results := runCases(vm, unit, cfg)

	var passed, failed, ignored, errored int
	var totalSteps uint64
	for _, res := range results {
		totalSteps += res.outcome.Resources.Steps
		switch res.outcome.Kind {
		case runner.OutcomePassed:
			passed++
			log.Info("test passed", "name", res.name, "steps", res.outcome.Resources.Steps)
		case runner.OutcomeFailed:
			failed++
			log.Warn("test failed", "name", res.name, "message", res.outcome.Message)
		case runner.OutcomeIgnored:
			ignored++
		case runner.OutcomeErrored:
			errored++
			log.Error("test errored", "name", res.name, "err", res.outcome.Err)
		}
	}

	log.Info("run complete",
		"passed", passed, "failed", failed, "ignored", ignored, "errored", errored,
		"steps", unitconv.FormatPrefix(float64(totalSteps), unitconv.SI, 1),
	)

	if errored > 0 {
		return fmt.Errorf("aborted after an infrastructure fault in %d test case(s)", errored)
	}
	if failed > 0 {
		return fmt.Errorf("failed %d of %d test cases", failed, passed+failed)
	}
	return nil
}

func readUnit(path string) (*forge.CompiledUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	unit := &forge.CompiledUnit{}
	if err := json.Unmarshal(data, unit); err != nil {
		return nil, fmt.Errorf("failed to parse artifact: %w", err)
	}
	return unit, nil
}

// runCases executes every entry point of the unit across the configured
// number of workers. Each case runs on its own state and cheat registry;
// nothing is shared between concurrent cases. A case excluded by the filter
// is ignored; an errored case aborts the remaining work.
func runCases(vm forge.VirtualMachine, unit *forge.CompiledUnit, cfg runConfig) []caseResult {
	results := make([]caseResult, len(unit.Functions))

	jobs := cfg.jobs
	if jobs <= 0 {
		jobs = 1
	}

	var next atomic.Int64
	var aborted atomic.Bool
	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= len(unit.Functions) {
					return
				}
				name := unit.Functions[i].Name
				if !cfg.filter.MatchString(name) || aborted.Load() {
					results[i] = caseResult{name: name, outcome: runner.Ignored()}
					continue
				}
				outcome := runCase(vm, unit, name, cfg)
				if outcome.Kind == runner.OutcomeErrored {
					aborted.Store(true)
				}
				results[i] = caseResult{name: name, outcome: outcome}
			}
		}()
	}
	wg.Wait()

	return results
}

func runCase(vm forge.VirtualMachine, unit *forge.CompiledUnit, name string, cfg runConfig) runner.Outcome {
	var st *state.LayeredState
	if cfg.remote != nil {
		st = state.NewForkedState(cfg.remote)
	} else {
		st = state.NewLayeredState()
		st.EnableOverlay()
	}

	cheats := cheatnet.NewState()
	if cfg.maxSteps > 0 {
		cheats.SetStepBudget(cfg.maxSteps)
	}

	return runner.Execute(vm, unit, name, st, cheats, cfg.block, runner.Options{
		Contract: testContract,
		Caller:   testCaller,
	})
}
