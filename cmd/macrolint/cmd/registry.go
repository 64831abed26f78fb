package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/embedlang/macrolang/registry"
	"github.com/embedlang/macrolang/registrysource"
)

var (
	registryCmd = &cobra.Command{
		Use:   "registry",
		Short: "Inspect and populate the function registry",
	}

	pullSource    string
	pullKind      string
	pullExtension string

	registryIngestCmd = &cobra.Command{
		Use:   "ingest <dir>",
		Short: "Walk a directory of *.json batch files and ingest them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("exactly one directory argument required")
			}
			mgr := registry.NewManager(registry.WithLogger(logger))

			err := filepath.Walk(args[0], func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() || !strings.HasSuffix(path, ".json") {
					return nil
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				extension := strings.TrimSuffix(filepath.Base(path), ".json")
				stats, err := mgr.IngestBatch(registry.BatchFunctions, extension, data)
				if err != nil {
					return fmt.Errorf("ingesting %s: %w", path, err)
				}
				fmt.Printf("%s: %d attempted, %d succeeded, %d failed\n", path, stats.Attempted, stats.Succeeded, stats.Failed)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Printf("total functions: %d\n", mgr.FunctionCount())
			return nil
		},
	}

	registryExportCmd = &cobra.Command{
		Use:   "export <file>",
		Short: "Write the current registry's cache JSON to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("exactly one file argument required")
			}
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			mgr, err := loadRegistry(cfg)
			if err != nil {
				return err
			}
			data, err := registry.MarshalCache(mgr.ExportCache())
			if err != nil {
				return err
			}
			return os.WriteFile(args[0], data, 0o644)
		},
	}

	registryPullCmd = &cobra.Command{
		Use:   "pull",
		Short: "Fetch and ingest one batch from a configured database source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}

			var dbKey string
			switch pullSource {
			case "postgres":
				dbKey = "pg"
			case "mssql":
				dbKey = "mssql"
			default:
				return errors.New("--source must be postgres or mssql")
			}
			dbcfg, ok := cfg.Databases[dbKey]
			if !ok {
				return fmt.Errorf("database %q not present in %s", dbKey, configPath)
			}

			kind, err := parseBatchKind(pullKind)
			if err != nil {
				return err
			}

			mgr := registry.NewManager(registry.WithLogger(logger))

			var src registrysource.BatchSource
			switch pullSource {
			case "postgres":
				src, err = registrysource.OpenPostgres(dbcfg.Connection, kind, pullExtension)
			case "mssql":
				src, err = registrysource.OpenMSSQL(dbcfg.Connection, kind, pullExtension)
			}
			if err != nil {
				return err
			}

			stats, err := registrysource.Pull(context.Background(), mgr, src)
			if err != nil {
				return err
			}
			fmt.Printf("pulled %s/%s: %d attempted, %d succeeded, %d failed\n",
				pullSource, pullExtension, stats.Attempted, stats.Succeeded, stats.Failed)
			return nil
		},
	}
)

func parseBatchKind(s string) (registry.BatchKind, error) {
	switch s {
	case "functions", "":
		return registry.BatchFunctions, nil
	case "enums":
		return registry.BatchEnums, nil
	case "events":
		return registry.BatchEvents, nil
	default:
		return 0, fmt.Errorf("unknown batch kind %q", s)
	}
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryIngestCmd)
	registryCmd.AddCommand(registryExportCmd)
	registryCmd.AddCommand(registryPullCmd)

	registryPullCmd.Flags().StringVar(&pullSource, "source", "", "driver to pull with: postgres or mssql")
	registryPullCmd.Flags().StringVar(&pullKind, "kind", "functions", "batch kind: functions, enums, or events")
	registryPullCmd.Flags().StringVar(&pullExtension, "extension", "", "extension tag to stamp onto ingested records")
	_ = registryPullCmd.MarkFlagRequired("source")
}
