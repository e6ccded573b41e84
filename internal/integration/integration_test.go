package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"mock-interview-service/internal/app"
	"mock-interview-service/internal/domain"
	"mock-interview-service/internal/evaluation"
	pgloader "mock-interview-service/internal/infra/postgres"
	pgmigrations "mock-interview-service/internal/infra/postgres/migrations"
	infraredis "mock-interview-service/internal/infra/redis"
)

func TestInterviewEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateDB(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewQuestionLoader(pool)
	if err := loader.SaveQuestionSet(ctx, sampleQuestionSet()); err != nil {
		t.Fatalf("save question set: %v", err)
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	bank := infraredis.NewQuestionBank(redisClient, loader, 5*time.Minute)
	set, err := bank.QuestionSet(ctx, "Medium")
	if err != nil {
		t.Fatalf("question set: %v", err)
	}
	if len(set.Content.DSA) != 1 || set.Content.DSA[0].MaxTime != 600 {
		t.Fatalf("unexpected question set: %+v", set)
	}

	rooms := infraredis.NewRoomStore(redisClient, 5*time.Minute)
	coordinator := app.NewCoordinator(rooms, nil)

	cfg := &domain.RoomConfig{Difficulty: "medium", DSACount: 1, DurationMinutes: 30}
	coordinator.Join(ctx, "int-1", "c1", "Alice", cfg)
	if err := coordinator.SetContent(ctx, "int-1", "c1", set.Content); err != nil {
		t.Fatalf("set content: %v", err)
	}
	if _, started, err := coordinator.SetReady(ctx, "int-1", "c1", true); err != nil || !started {
		t.Fatalf("expected interview start, started=%v err=%v", started, err)
	}

	dsaID := set.Content.DSA[0].ID
	if err := coordinator.RecordSubmission(ctx, "int-1", "c1", domain.CodeSubmission{
		QuestionID:  dsaID,
		Code:        strings.Repeat("x", 60),
		TestResults: []domain.TestResult{{Passed: true}, {Passed: true}},
		TimeSpent:   120,
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	known, err := rooms.KnownRooms(ctx)
	if err != nil || len(known) != 1 || known[0] != "INT-1" {
		t.Fatalf("expected room mirrored in redis, got %v err=%v", known, err)
	}

	snap, p, err := coordinator.Participant("int-1", "Alice")
	if err != nil {
		t.Fatalf("participant: %v", err)
	}
	report := evaluation.NewOrchestrator(nil, evaluation.Options{}).Evaluate(ctx, evaluation.AssembleRecord(snap, p))
	if report.Source != domain.SourceFallback {
		t.Fatalf("expected fallback report, got %q", report.Source)
	}
	if report.DSATotalScore != 10 {
		t.Fatalf("expected perfect dsa score, got %v", report.DSATotalScore)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "interview", "POSTGRES_PASSWORD": "interviewpass", "POSTGRES_DB": "interviewdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://interview:interviewpass@%s:%s/interviewdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	return fmt.Sprintf("redis://%s:%s", host, port.Port()), func() {
		_ = container.Terminate(ctx)
	}
}

func migrateDB(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func sampleQuestionSet() domain.QuestionSet {
	return domain.QuestionSet{
		Difficulty: "medium",
		Content: domain.Content{
			DSA: []domain.DSAQuestion{
				{ID: "101", Title: "Merge Intervals", MaxTime: 600},
			},
			Voice: []domain.VoiceQuestion{
				{ID: "201", Question: "Explain a hash map.", Answer: "Buckets indexed by hash."},
			},
		},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
