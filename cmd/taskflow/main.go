package main

import (
	"context"
	"fmt"
	"os"

	"taskflow/internal/api"
	"taskflow/internal/cli"
	"taskflow/internal/config"
)

func main() {
	factory := NewRepositoryFactory(config.GetEnvironment())

	opener := func(ctx context.Context, cfg *config.Config) (api.API, func() error, error) {
		repo, err := factory.CreateRepository(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating repository: %w", err)
		}
		return api.New(ctx, repo, api.OptionsFromConfig(cfg)), repo.Close, nil
	}

	if err := cli.NewRootCommand(opener).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
