package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-items/internal/config"
	"github.com/KirkDiggler/rpg-items/internal/engine"
	"github.com/KirkDiggler/rpg-items/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-items/internal/formula"
	"github.com/KirkDiggler/rpg-items/internal/notify"
	"github.com/KirkDiggler/rpg-items/internal/orchestrators/item"
	"github.com/KirkDiggler/rpg-items/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-items/internal/redis"
	"github.com/KirkDiggler/rpg-items/internal/repositories/documents"
)

// app holds the wired dependencies of one command
type app struct {
	rules  *config.Rules
	engine engine.Engine
	repo   documents.Repository
	items  item.Service
	close  func() error
}

func newApp(in io.Reader, out io.Writer) (*app, error) {
	rules, err := config.Load(viper.GetString(keyRules))
	if err != nil {
		return nil, err
	}

	evaluator, err := formula.NewEvaluator()
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluator: %w", err)
	}

	eng, err := engine.New(&engine.Config{Rules: rules, Evaluator: evaluator})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	repo, closeRepo, err := openStore()
	if err != nil {
		return nil, err
	}

	roller, err := rpgtoolkit.NewRoller(&rpgtoolkit.RollerConfig{
		DiceRoller: dice.DefaultRoller,
		Evaluator:  evaluator,
	})
	if err != nil {
		_ = closeRepo()
		return nil, fmt.Errorf("failed to create roller: %w", err)
	}

	items, err := item.NewOrchestrator(&item.Config{
		Engine:      eng,
		Repository:  repo,
		Roller:      roller,
		Hooks:       rpgtoolkit.NewHookBus(nil),
		Notifier:    notify.NewLogger(nil),
		Prompter:    newTerminalPrompter(bufio.NewReader(in), out),
		IDGenerator: idgen.NewUUID("use"),
	})
	if err != nil {
		_ = closeRepo()
		return nil, fmt.Errorf("failed to create item orchestrator: %w", err)
	}

	return &app{
		rules:  rules,
		engine: eng,
		repo:   repo,
		items:  items,
		close:  closeRepo,
	}, nil
}

func openStore() (documents.Repository, func() error, error) {
	switch store := viper.GetString(keyStore); store {
	case storeSQLite:
		repo, err := documents.OpenSQLite(&documents.SQLiteConfig{Path: viper.GetString(keySQLitePath)})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return repo, repo.Close, nil
	case storeRedis:
		client, err := redis.NewClient(viper.GetString(keyRedisAddr), nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		repo, err := documents.NewRedis(&documents.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to create redis store: %w", err)
		}
		return repo, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", store)
	}
}

// withApp runs fn with a wired app and closes the store afterwards
func withApp(fn func(a *app) error) error {
	a, err := newApp(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer func() { _ = a.close() }()
	return fn(a)
}
