// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	souk "github.com/poiesic/souk"
	"github.com/poiesic/souk/ai"
	"github.com/poiesic/souk/core"
	"github.com/poiesic/souk/rank"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "souk",
		Usage: "Two-sided listing matching, ranking, and ontology resolution",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "match",
				Usage:     "Decide whether a candidate listing satisfies a query listing",
				ArgsUsage: "<query.json> <candidate.json>",
				Action:    matchCommand,
				Flags: append(engineFlags(),
					&cli.BoolFlag{
						Name:  "mutual",
						Usage: "Require the match to hold in both directions",
					},
					&cli.StringFlag{
						Name:  "near",
						Usage: "Resolved current-location token for near_me queries",
					},
					&cli.BoolFlag{
						Name:  "score",
						Usage: "Print a similarity score when the pair does not match",
					},
				),
			},
			{
				Name:      "rank",
				Usage:     "Fuse per-method scores into a final candidate order",
				ArgsUsage: "<candidates.json>",
				Action:    rankCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "category",
						Aliases: []string{"c"},
						Usage:   "Listing category for the weight preset (product, service, mutual)",
						Value:   "product",
					},
					&cli.StringFlag{
						Name:  "weights",
						Usage: "YAML weight configuration overriding the preset",
					},
					&cli.Float64Flag{
						Name:  "k",
						Usage: "Reciprocal rank fusion smoothing constant",
						Value: rank.DefaultK,
					},
				},
			},
			{
				Name:      "resolve",
				Usage:     "Answer an ontology relationship query through the cascade",
				ArgsUsage: "<term-a> <term-b>",
				Action:    resolveCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:    "kind",
						Aliases: []string{"k"},
						Usage:   "Relation kind (implies, antonym, excludes)",
						Value:   "implies",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags are shared by every command that assembles the engine.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the relation cache directory (in-memory when omitted)",
		},
		&cli.StringFlag{
			Name:  "tree",
			Usage: "Path to a local concept taxonomy YAML file",
		},
		&cli.StringFlag{
			Name:  "babelnet-key",
			Usage: "BabelNet API key (tier skipped when omitted)",
		},
		&cli.BoolFlag{
			Name:  "offline",
			Usage: "Skip the network knowledge-service tiers",
		},
		&cli.BoolFlag{
			Name:  "no-llm",
			Usage: "Skip the generative fallback tier",
		},
		&cli.BoolFlag{
			Name:  "fail-closed",
			Usage: "Treat unresolved exclusion queries as violations",
		},
		&cli.StringFlag{
			Name:  "llm-host",
			Usage: "OpenAI-compatible host for the generative tier",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "llm-model",
			Usage: "Model name for the generative tier",
			Value: "qwen2.5:3b",
		},
	}
}

// newEngine assembles an engine from the shared flags.
func newEngine(c *cli.Context) (*souk.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("llm-host")),
		ai.WithModel(c.String("llm-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []souk.EngineOption{souk.WithAIConfig(aiConfig)}
	if tree := c.String("tree"); tree != "" {
		opts = append(opts, souk.WithConceptTree(tree))
	}
	if key := c.String("babelnet-key"); key != "" {
		opts = append(opts, souk.WithBabelNetKey(key))
	}
	if c.Bool("offline") {
		opts = append(opts, souk.WithoutNetworkTiers())
	}
	if c.Bool("no-llm") {
		opts = append(opts, souk.WithoutGenerativeTier())
	}
	if c.Bool("fail-closed") {
		opts = append(opts, souk.WithFailClosed())
	}
	if near := c.String("near"); near != "" {
		opts = append(opts, souk.WithCurrentLocation(near))
	}

	return souk.NewEngine(c.String("db"), opts...)
}

func loadListing(path string) (*core.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var listing core.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &listing, nil
}

func matchCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected <query.json> <candidate.json>")
	}

	query, err := loadListing(c.Args().Get(0))
	if err != nil {
		return err
	}
	candidate, err := loadListing(c.Args().Get(1))
	if err != nil {
		return err
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	var matched bool
	if c.Bool("mutual") {
		matched, err = engine.Matcher().MatchMutual(ctx, query, candidate)
	} else {
		matched, err = engine.Matcher().MatchListings(ctx, query, candidate)
	}
	if err != nil {
		return err
	}

	fmt.Printf("match: %v\n", matched)
	if !matched && c.Bool("score") {
		fmt.Printf("similarity: %.3f\n", engine.NewScorer().Score(ctx, query, candidate))
	}
	return nil
}

func rankCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected <candidates.json>")
	}

	data, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	var candidates []core.RankedCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return fmt.Errorf("parsing candidates: %w", err)
	}

	fuser, err := buildFuser(c)
	if err != nil {
		return err
	}

	for i, entry := range fuser.Fuse(candidates) {
		fmt.Printf("%d\t%d\t%.6f\n", i+1, entry.ListingId, entry.Score)
	}
	return nil
}

func buildFuser(c *cli.Context) (*rank.Fuser, error) {
	category := strings.ToLower(c.String("category"))

	if path := c.String("weights"); path != "" {
		weights, err := rank.LoadWeights(path)
		if err != nil {
			return nil, err
		}
		return weights.FuserFor(category)
	}

	var intent core.Intent
	switch category {
	case "product":
		intent = core.IntentProduct
	case "service":
		intent = core.IntentService
	case "mutual":
		intent = core.IntentMutual
	default:
		return nil, fmt.Errorf("unknown category %q: must be product, service, or mutual", category)
	}

	vector, err := rank.WeightsForCategory(intent)
	if err != nil {
		return nil, err
	}
	return rank.NewFuser(vector, rank.WithK(c.Float64("k")))
}

func resolveCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected <term-a> <term-b>")
	}

	var kind core.RelationKind
	switch strings.ToLower(c.String("kind")) {
	case "implies":
		kind = core.RelationImplies
	case "antonym":
		kind = core.RelationAntonym
	case "excludes":
		kind = core.RelationExcludes
	default:
		return fmt.Errorf("unknown relation kind %q: must be implies, antonym, or excludes", c.String("kind"))
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	resolution, err := engine.Resolver().ResolveRelationship(
		context.Background(), c.Args().Get(0), c.Args().Get(1), kind)
	if err != nil {
		return err
	}

	fmt.Printf("answer: %v\nprovenance: %s\n", resolution.Answer, resolution.Provenance)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
