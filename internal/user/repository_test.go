package user_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/ecommerce-microservices/user-service/internal/config"
	"github.com/vasiliy-maslov/ecommerce-microservices/user-service/internal/db"
	"github.com/vasiliy-maslov/ecommerce-microservices/user-service/internal/user"
)

var testDB *pgxpool.Pool

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestMain(m *testing.M) {
	// Интеграционные тесты репозитория запускаются только при заданном DB_HOST_TEST.
	if os.Getenv("DB_HOST_TEST") == "" {
		os.Exit(m.Run())
	}

	cfg := config.PostgresConfig{
		Host:            os.Getenv("DB_HOST_TEST"),
		Port:            getenv("DB_PORT_TEST", "5432"),
		User:            getenv("DB_USER_TEST", "postgres"),
		Password:        getenv("DB_PASSWORD_TEST", "123456"),
		DBName:          getenv("DB_NAME_TEST", "ecommerce_db"),
		SSLMode:         getenv("DB_SSLMODE_TEST", "disable"),
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MigrationsPath:  getenv("DB_MIGRATIONS_PATH_TEST", "../../migrations"),
	}

	if err := db.ApplyMigrations(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate test database")
	}

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	postgres, err := db.New(connectCtx, cfg)
	connectCancel()
	if err != nil {
		log.Fatal().Err(err).Str("db_host", cfg.Host).Str("db_port", cfg.Port).Msg("Failed to connect to test database")
	}
	testDB = postgres.Pool
	log.Info().Msg("Test Database connection established.")

	exitCode := m.Run()

	postgres.Close()
	os.Exit(exitCode)
}

func requireTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testDB == nil {
		t.Skip("DB_HOST_TEST is not set, skipping repository integration test")
	}
	t.Cleanup(func() {
		_, err := testDB.Exec(context.Background(), "TRUNCATE TABLE user_service.users RESTART IDENTITY CASCADE")
		require.NoError(t, err, "failed to truncate users table")
	})
	return testDB
}

func newUser(email string, birthDate user.Date) *user.User {
	return &user.User{
		Email:       email,
		FirstName:   "Test",
		LastName:    "User",
		BirthDate:   birthDate,
		Address:     strPtr("123 Main St"),
		PhoneNumber: nil,
	}
}

func TestUserRepository_SaveInsertAndFind(t *testing.T) {
	repo := user.NewRepository(requireTestDB(t))
	ctx := context.Background()

	created, err := repo.Save(ctx, newUser("create@example.com", date(1990, time.January, 1)))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	other, err := repo.Save(ctx, newUser("other@example.com", date(1991, time.January, 1)))
	require.NoError(t, err)
	require.NotEqual(t, created.ID, other.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Equal(t, "create@example.com", found.Email)
	require.Equal(t, date(1990, time.January, 1), found.BirthDate)
	require.NotNil(t, found.Address)
	require.Equal(t, "123 Main St", *found.Address)
	require.Nil(t, found.PhoneNumber)
}

func TestUserRepository_SaveUpdatesExisting(t *testing.T) {
	repo := user.NewRepository(requireTestDB(t))
	ctx := context.Background()

	created, err := repo.Save(ctx, newUser("update@example.com", date(1990, time.January, 1)))
	require.NoError(t, err)

	created.Email = "changed@example.com"
	created.Address = nil
	updated, err := repo.Save(ctx, created)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "changed@example.com", found.Email)
	require.Nil(t, found.Address)
}

func TestUserRepository_SaveUnknownID(t *testing.T) {
	repo := user.NewRepository(requireTestDB(t))

	missing := newUser("missing@example.com", date(1990, time.January, 1))
	missing.ID = 987654

	_, err := repo.Save(context.Background(), missing)
	require.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	repo := user.NewRepository(requireTestDB(t))

	found, err := repo.FindByID(context.Background(), 987654)
	require.ErrorIs(t, err, user.ErrNotFound)
	require.Nil(t, found)
}

func TestUserRepository_ExistsAndDelete(t *testing.T) {
	repo := user.NewRepository(requireTestDB(t))
	ctx := context.Background()

	created, err := repo.Save(ctx, newUser("delete@example.com", date(1990, time.January, 1)))
	require.NoError(t, err)

	exists, err := repo.ExistsByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, repo.DeleteByID(ctx, created.ID))

	exists, err = repo.ExistsByID(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, exists)

	require.ErrorIs(t, repo.DeleteByID(ctx, created.ID), user.ErrNotFound)
}

func TestUserRepository_FindByBirthDateBetween(t *testing.T) {
	repo := user.NewRepository(requireTestDB(t))
	ctx := context.Background()

	for _, u := range []*user.User{
		newUser("before@example.com", date(1979, time.December, 31)),
		newUser("lower@example.com", date(1980, time.January, 1)),
		newUser("middle@example.com", date(1985, time.June, 15)),
		newUser("upper@example.com", date(1990, time.December, 31)),
		newUser("after@example.com", date(1991, time.January, 1)),
	} {
		_, err := repo.Save(ctx, u)
		require.NoError(t, err)
	}

	users, err := repo.FindByBirthDateBetween(ctx, date(1980, time.January, 1), date(1990, time.December, 31))
	require.NoError(t, err)
	require.Len(t, users, 3, "both bounds are inclusive")
	require.Equal(t, "lower@example.com", users[0].Email)
	require.Equal(t, "middle@example.com", users[1].Email)
	require.Equal(t, "upper@example.com", users[2].Email)

	none, err := repo.FindByBirthDateBetween(ctx, date(2000, time.January, 1), date(2001, time.January, 1))
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestUserRepository_SaveLongFreeText(t *testing.T) {
	repo := user.NewRepository(requireTestDB(t))
	ctx := context.Background()

	longPhone := strings.Repeat("+1 (555) 010-0000 ext. 42; ", 20)
	u := newUser("phone@example.com", date(1990, time.January, 1))
	u.PhoneNumber = &longPhone

	created, err := repo.Save(ctx, u)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.PhoneNumber)
	require.Equal(t, longPhone, *found.PhoneNumber)
}
