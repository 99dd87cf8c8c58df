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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/docquery"
	"github.com/poiesic/docquery/core"
)

func main() {
	app := &cli.App{
		Name:  "docquery",
		Usage: "Document question-answering over a local vector index",
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
				Name:   "ingest",
				Usage:  "Ingest a document into the index",
				Action: ingestCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the document (txt or pdf)",
						Required: true,
					},
					&cli.Int64Flag{
						Name:     "parent",
						Aliases:  []string{"p"},
						Usage:    "Parent file identifier assigned by the metadata layer",
						Required: true,
					},
				),
			},
			{
				Name:   "ask",
				Usage:  "Ask a question and print the answer",
				Action: askCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner key (user or user:collection)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "question",
						Aliases:  []string{"q"},
						Usage:    "Question to answer",
						Required: true,
					},
				),
			},
			{
				Name:   "stream",
				Usage:  "Ask a question and stream the answer as server-sent events",
				Action: streamCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner key (user or user:collection)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "question",
						Aliases:  []string{"q"},
						Usage:    "Question to answer",
						Required: true,
					},
				),
			},
			{
				Name:   "delete",
				Usage:  "Delete a parent file's chunks from the index",
				Action: deleteCommand,
				Flags: append(commonFlags(),
					&cli.Int64Flag{
						Name:     "parent",
						Aliases:  []string{"p"},
						Usage:    "Parent file identifier to delete",
						Required: true,
					},
				),
			},
			{
				Name:   "configure",
				Usage:  "Apply a configuration file and bump the owner's version",
				Action: configureCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner key to apply the configuration for",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to TOML task configuration",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to TOML task configuration (defaults apply when omitted)",
		},
	}
}

func loadTaskConfig(path string) (core.TaskConfig, error) {
	cfg := core.DefaultTaskConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := core.ValidateTaskConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func openService(c *cli.Context) (*docquery.Service, error) {
	cfg, err := loadTaskConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	return docquery.NewService(c.String("db"), docquery.WithTaskConfig(cfg))
}

func ingestCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	parentID := core.ParentID(c.Int64("parent"))
	if err := svc.Ingest(context.Background(), c.String("file"), parentID); err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Accepted %s as parent %d\n", c.String("file"), parentID)
	return nil
}

func askCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	answer, err := svc.Query(context.Background(), c.String("owner"), c.String("question"))
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(answer)
	return nil
}

func streamCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	fragments, err := svc.Stream(context.Background(), c.String("owner"), c.String("question"))
	if err != nil {
		return fmt.Errorf("stream failed: %w", err)
	}

	for fragment := range fragments {
		fmt.Print(fragment.SSE())
	}
	return nil
}

func deleteCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	parentID := core.ParentID(c.Int64("parent"))
	if err := svc.DeleteParent(context.Background(), parentID); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Deleted parent %d\n", parentID)
	return nil
}

func configureCommand(c *cli.Context) error {
	cfg, err := loadTaskConfig(c.String("config"))
	if err != nil {
		return err
	}

	svc, err := docquery.NewService(c.String("db"))
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.ApplyConfig(context.Background(), c.String("owner"), cfg); err != nil {
		return fmt.Errorf("configure failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Configuration applied for %s\n", c.String("owner"))
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
