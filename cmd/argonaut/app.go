// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/argonaut-cli/argonaut/internal/scriptrun"
	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
	"github.com/argonaut-cli/argonaut/pkg/dispatch"
	"github.com/argonaut-cli/argonaut/pkg/modelfile"
)

// app wires the binary's own command model. The argonaut CLI is itself
// dispatched by the engine it ships.
type app struct {
	cfg        *Config
	logger     *log.Logger
	opts       dispatch.Options
	model      *cmdmodel.Command
	dispatcher *dispatch.Dispatcher
}

func newApp() (*app, error) {
	cfg, err := loadConfig(os.Getenv("ARGONAUT_CONFIG"))
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "argonaut"})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	envOpts, err := dispatch.OptionsFromEnv()
	if err != nil {
		return nil, err
	}
	opts := envOpts.Apply(dispatch.Options{
		Logger:   logger,
		NoColor:  cfg.NoColor,
		NoPrompt: cfg.NoPrompt,
		Explain:  cfg.Explain,
	})

	a := &app{cfg: cfg, logger: logger, opts: opts}
	a.model = a.buildModel()
	a.dispatcher, err = dispatch.New(a.model, opts)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) buildModel() *cmdmodel.Command {
	return &cmdmodel.Command{
		Name:        "argonaut",
		Description: "run and validate declarative command models",
		Globals: []*cmdmodel.Param{
			{Kind: cmdmodel.Option, Name: "verbose", Short: "V", Description: "enable debug output", Type: cmdmodel.Bool()},
		},
		Hooks: []cmdmodel.Hook{
			{Phase: cmdmodel.PhaseBefore, Before: a.applyVerbose},
		},
		Actions: []*cmdmodel.Action{
			{
				Name:        "run",
				Description: "load a model file and dispatch the arguments after --",
				Params: []*cmdmodel.Param{
					{Kind: cmdmodel.Argument, Name: "model", Required: true, Description: "model file (.cue or .toml)", Type: cmdmodel.String()},
					{Kind: cmdmodel.Argument, Name: "args", Description: "argument vector for the model", Type: cmdmodel.ListOf(cmdmodel.String())},
				},
				Run: a.runModel,
			},
			{
				Name:        "validate",
				Description: "parse and structurally check a model file",
				Params: []*cmdmodel.Param{
					{Kind: cmdmodel.Argument, Name: "model", Required: true, Type: cmdmodel.String()},
				},
				Run: a.validateModel,
			},
		},
	}
}

func (a *app) applyVerbose(_ context.Context, hc *cmdmodel.HookContext) error {
	if hc.Invocation.Globals.Bool("verbose") {
		a.logger.SetLevel(log.DebugLevel)
	}
	return nil
}

// runModel loads, compiles, and dispatches a model in one shot. The inner
// dispatch's exit code is surfaced unchanged.
func (a *app) runModel(ctx context.Context, inv *cmdmodel.Invocation) error {
	path, err := a.cfg.findModel(inv.Values.String("model"))
	if err != nil {
		return err
	}
	doc, err := modelfile.Load(path)
	if err != nil {
		return err
	}

	rt := &scriptrun.Runtime{Dir: filepath.Dir(path), Logger: a.logger}
	tree, err := modelfile.Compile(doc, modelfile.Bindings{Script: rt.Action})
	if err != nil {
		return err
	}
	inner, err := dispatch.New(tree, a.opts)
	if err != nil {
		return err
	}

	a.logger.Debug("dispatching model", "path", path)
	code, err := inner.DispatchE(ctx, inv.Values.Strings("args"))
	if err != nil {
		return err
	}
	if code != 0 {
		return cmdmodel.ExitStatus(code)
	}
	return nil
}

// validateModel parses a model file and compiles it against stub bindings,
// so structural problems surface without any behavior attached.
func (a *app) validateModel(_ context.Context, inv *cmdmodel.Invocation) error {
	path, err := a.cfg.findModel(inv.Values.String("model"))
	if err != nil {
		return err
	}
	doc, err := modelfile.Load(path)
	if err != nil {
		return err
	}
	if _, err := modelfile.Compile(doc, stubBindings(doc)); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", path)
	return nil
}

// stubBindings satisfies every name a document references with a no-op, so
// Compile exercises its full structural validation.
func stubBindings(doc *modelfile.Document) modelfile.Bindings {
	b := modelfile.Bindings{
		Handlers: map[string]cmdmodel.ActionFunc{},
		Before:   map[string]cmdmodel.BeforeFunc{},
		After:    map[string]cmdmodel.AfterFunc{},
		OnError:  map[string]cmdmodel.ErrorFunc{},
		Errors:   map[string]error{},
		Script: func(string) cmdmodel.ActionFunc {
			return func(context.Context, *cmdmodel.Invocation) error { return nil }
		},
	}

	collectHooks := func(hooks []modelfile.HookDoc) {
		for _, h := range hooks {
			b.Before[h.Handler] = func(context.Context, *cmdmodel.HookContext) error { return nil }
			b.After[h.Handler] = func(context.Context, *cmdmodel.HookContext) error { return nil }
			b.OnError[h.Handler] = func(context.Context, *cmdmodel.HookContext) (bool, error) { return false, nil }
		}
	}
	collectCodes := func(codes []modelfile.ExitCodeDoc) {
		for _, m := range codes {
			b.Errors[m.Error] = fmt.Errorf("stub target %s", m.Error)
		}
	}

	var walk func(c *modelfile.CommandDoc)
	walk = func(c *modelfile.CommandDoc) {
		collectHooks(c.Hooks)
		collectCodes(c.ExitCodes)
		for i := range c.Actions {
			action := &c.Actions[i]
			if action.Handler != "" {
				b.Handlers[action.Handler] = func(context.Context, *cmdmodel.Invocation) error { return nil }
			}
			collectHooks(action.Hooks)
			collectCodes(action.ExitCodes)
		}
		for i := range c.Commands {
			walk(&c.Commands[i])
		}
	}
	walk(&doc.Command)
	return b
}
