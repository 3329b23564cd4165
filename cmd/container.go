package cmd

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/rios0rios0/effdiff/application"
	"github.com/rios0rios0/effdiff/config"
	"github.com/rios0rios0/effdiff/domain"
	"github.com/rios0rios0/effdiff/infrastructure/rediff"
	"github.com/rios0rios0/effdiff/infrastructure/rediff/gitcli"
	"github.com/rios0rios0/effdiff/infrastructure/rediff/godiff"
)

// injectService wires the service graph via DIG: configuration selects a
// differ from the registry, and the engine is built around it.
func injectService(cfg *config.Config) (*application.Service, error) {
	container := dig.New()

	providers := []any{
		func() *config.Config { return cfg },
		buildDifferRegistry,
		selectDiffer,
		application.NewService,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, fmt.Errorf("failed to register providers: %w", err)
		}
	}

	var svc *application.Service
	if err := container.Invoke(func(s *application.Service) {
		svc = s
	}); err != nil {
		return nil, fmt.Errorf("failed to build service: %w", err)
	}
	return svc, nil
}

func buildDifferRegistry() *rediff.Registry {
	reg := rediff.NewRegistry()
	reg.Register("godiff", godiff.New)
	reg.Register("gitcli", gitcli.New)
	return reg
}

func selectDiffer(cfg *config.Config, reg *rediff.Registry) (domain.Differ, error) {
	return reg.Get(cfg.Differ)
}
