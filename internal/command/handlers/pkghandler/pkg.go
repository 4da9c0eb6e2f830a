// Package pkghandler реализует команду pkg для работы с реестром пакетов.
// Реестр живёт на соседнем базовом пути /api/packages/, а не внутри /api/v1/.
package pkghandler

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/Kargones/teax/internal/command"
	"github.com/Kargones/teax/internal/command/handlers/shared"
	"github.com/Kargones/teax/internal/config"
	"github.com/Kargones/teax/internal/constants"
	"github.com/Kargones/teax/internal/pkg/output"
)

func init() {
	command.Register(&Handler{})
}

// Handler обрабатывает команду pkg.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActPkg
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Работа с реестром пакетов (list, info, delete, registry)"
}

// Execute выполняет подкоманду pkg.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	if len(cfg.Args) < 2 {
		return shared.UsageError("использование: pkg <list|info|delete|registry> <owner> ...")
	}
	sub := cfg.Args[0]

	fs := pflag.NewFlagSet("pkg", pflag.ContinueOnError)
	pkgType := fs.String("type", "", "тип пакета: pypi, npm, container, generic, ...")
	query := fs.String("query", "", "фильтр по имени пакета")
	if err := fs.Parse(cfg.Args[1:]); err != nil {
		return shared.UsageError("pkg: %v", err)
	}
	args := fs.Args()
	if len(args) < 1 {
		return shared.UsageError("использование: pkg %s <owner>", sub)
	}
	owner := args[0]

	client, err := shared.CreateClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	switch sub {
	case "list":
		packages, err := client.ListPackages(ctx, owner, *pkgType, *query)
		if err != nil {
			return err
		}
		table := &output.Table{Headers: []string{"ID", "TYPE", "NAME", "VERSION", "CREATED"}}
		for _, p := range packages {
			table.AddRow(fmt.Sprintf("%d", p.ID), p.Type, p.Name, p.Version, p.CreatedAt)
		}
		return shared.Render(cfg, table)
	case "info", "delete":
		if len(args) < 3 || *pkgType == "" {
			return shared.UsageError("использование: pkg %s <owner> <имя> <версия> --type <тип>", sub)
		}
		name, version := args[1], args[2]
		if sub == "delete" {
			return client.DeletePackageVersion(ctx, owner, *pkgType, name, version)
		}
		pv, err := client.GetPackageVersion(ctx, owner, *pkgType, name, version)
		if err != nil {
			return err
		}
		table := &output.Table{Headers: []string{"FILE", "SIZE", "SHA256"}}
		for _, f := range pv.Files {
			table.AddRow(f.Name, fmt.Sprintf("%d", f.Size), f.SHA256)
		}
		return shared.Render(cfg, table)
	case "registry":
		if *pkgType == "" {
			return shared.UsageError("использование: pkg registry <owner> --type <тип>")
		}
		u, err := client.RegistryURL(owner, *pkgType)
		if err != nil {
			return err
		}
		table := &output.Table{Headers: []string{"REGISTRY"}}
		table.AddRow(u)
		return shared.Render(cfg, table)
	default:
		return shared.UsageError("неизвестная подкоманда pkg: %q", sub)
	}
}
