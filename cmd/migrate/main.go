package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/price-resolver/internal/obs"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "create the Spanner instance and database and apply the price schema",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project", Value: "test-project", EnvVars: []string{"SPANNER_PROJECT_ID"}, Usage: "GCP project ID"},
			&cli.StringFlag{Name: "instance", Value: "dev-instance", EnvVars: []string{"SPANNER_INSTANCE_ID"}, Usage: "Spanner instance ID"},
			&cli.StringFlag{Name: "database", Value: "price-resolver-db", EnvVars: []string{"SPANNER_DATABASE_ID"}, Usage: "Spanner database ID"},
			&cli.StringFlag{Name: "migrations", Value: "migrations", EnvVars: []string{"MIGRATIONS_DIR"}, Usage: "directory containing migration SQL files"},
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
		},
		Action: func(c *cli.Context) error {
			obs.InitLogger(c.String("log-level"))
			m := migrator{
				project:  c.String("project"),
				instance: c.String("instance"),
				database: c.String("database"),
				dir:      c.String("migrations"),
			}
			if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
				slog.Info("using Spanner emulator", "host", host)
			}
			if err := m.run(c.Context); err != nil {
				return cli.Exit(fmt.Sprintf("migration failed: %v", err), 1)
			}
			slog.Info("migrations completed successfully")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("migrate", "error", err)
		os.Exit(1)
	}
}

type migrator struct {
	project  string
	instance string
	database string
	dir      string
}

func (m migrator) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", m.project, m.instance)
}

func (m migrator) databasePath() string {
	return fmt.Sprintf("%s/databases/%s", m.instancePath(), m.database)
}

func (m migrator) run(ctx context.Context) error {
	if err := m.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}
	if err := m.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := m.applyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (m migrator) ensureInstance(ctx context.Context) error {
	slog.Info("ensuring instance exists", "instance", m.instance)

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.instancePath()})
	if err == nil {
		slog.Info("instance already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		slog.Warn("unexpected error checking instance", "error", err)
		return nil
	}

	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + m.project,
		InstanceId: m.instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", m.project),
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		slog.Warn("instance creation did not complete cleanly", "error", err)
	}

	slog.Info("instance created", "instance", m.instance)
	return nil
}

func (m migrator) ensureDatabase(ctx context.Context) error {
	slog.Info("ensuring database exists", "database", m.database)

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.databasePath()})
	if err == nil {
		slog.Info("database already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		// The emulator sometimes answers oddly for databases that exist.
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			slog.Warn("proceeding with database in emulator mode", "error", err)
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.database),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}

	slog.Info("database created", "database", m.database)
	return nil
}

func (m migrator) applyMigrations(ctx context.Context) error {
	files, err := filepath.Glob(filepath.Join(m.dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		slog.Warn("no migration files found", "dir", m.dir)
		return nil
	}
	sort.Strings(files)

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	for _, file := range files {
		name := filepath.Base(file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		statements := splitDDLStatements(string(content))
		if len(statements) == 0 {
			continue
		}

		slog.Info("applying migration", "file", name, "statements", len(statements))
		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.databasePath(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}
	}
	return nil
}

// splitDDLStatements drops comment lines and splits the remainder on
// semicolons.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}
