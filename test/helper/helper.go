package helper_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/danuartha/pairing-app/internal"
	"github.com/danuartha/pairing-app/internal/config"
	"github.com/danuartha/pairing-app/internal/entity"
	"github.com/danuartha/pairing-app/pkg/http_util"
	"github.com/danuartha/pairing-app/pkg/path"
	"github.com/go-faker/faker/v4"
	"github.com/go-redis/redis"
	"github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/ory/dockertest"
	"github.com/ory/dockertest/docker"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const BaseURL = "http://localhost:8080"

// TestServerResources holds everything a test package needs to talk to
// the dockerized environment and tear it down afterwards.
type TestServerResources struct {
	Cancel        context.CancelFunc
	Config        *config.Config
	Pool          *dockertest.Pool
	DBResource    *dockertest.Resource
	RedisResource *dockertest.Resource
	ORM           *gorm.DB
	Redis         *redis.Client
}

// SetupTestServer starts postgres and redis containers, migrates the
// schema and runs the HTTP server against them.
func SetupTestServer(ctx context.Context) (*TestServerResources, error) {
	ctx, cancel := context.WithCancel(ctx)
	var gormDB *gorm.DB
	var redisCache *redis.Client

	cfg, err := config.NewConfig("TEST")
	if err != nil {
		cancel()
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}

	pool, dbResource, redisResource, err := setupDockerResources(cfg)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("could not set up Docker resources: %w", err)
	}

	pool.MaxWait = 60 * time.Second
	if err := pool.Retry(func() error {
		gormDB, err = connectToPostgres(cfg)
		return err
	}); err != nil {
		cancel()
		return nil, fmt.Errorf("could not connect to postgreSQL: %w", err)
	}

	if err := pool.Retry(func() error {
		redisCache, err = connectToRedis(cfg)
		return err
	}); err != nil {
		cancel()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	dbConnection, err := gormDB.DB()
	if err != nil {
		cancel()
		return nil, err
	}

	if err := runMigrations(dbConnection); err != nil {
		cancel()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	go internal.Run(ctx, os.Stdout, []string{"test"})

	if !waitForServer(ctx, cfg.Get("PORT")) {
		pool.Purge(redisResource)
		pool.Purge(dbResource)
		cancel()
		return nil, fmt.Errorf("server did not start within timeout")
	}

	return &TestServerResources{
		Cancel:        cancel,
		Config:        cfg,
		Pool:          pool,
		DBResource:    dbResource,
		RedisResource: redisResource,
		ORM:           gormDB,
		Redis:         redisCache,
	}, nil
}

// CleanupTestServer stops the server and purges the containers.
func (resources *TestServerResources) CleanupTestServer() {
	if resources == nil {
		return
	}

	if resources.Cancel != nil {
		resources.Cancel()
	}

	if resources.Pool != nil {
		if resources.DBResource != nil {
			if err := resources.Pool.Purge(resources.DBResource); err != nil {
				log.Printf("Could not purge PostgreSQL: %s", err)
			}
		}

		if resources.RedisResource != nil {
			if err := resources.Pool.Purge(resources.RedisResource); err != nil {
				log.Printf("Could not purge Redis: %s", err)
			}
		}
	}
}

func setupDockerResources(cfg *config.Config) (*dockertest.Pool, *dockertest.Resource, *dockertest.Resource, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	dbOptions := &dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "14",
		Env: []string{
			fmt.Sprintf("POSTGRES_USER=%s", cfg.Get("POSTGRES_USER")),
			fmt.Sprintf("POSTGRES_PASSWORD=%s", cfg.Get("POSTGRES_PASSWORD")),
			fmt.Sprintf("POSTGRES_DB=%s", cfg.Get("POSTGRES_DB_NAME")),
		},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"5432/tcp": {{HostIP: "127.0.0.1", HostPort: fmt.Sprintf("%s/tcp", cfg.Get("POSTGRES_PORT"))}},
		},
	}
	dbResource, err := pool.RunWithOptions(dbOptions)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not start postgres: %w", err)
	}

	redisOptions := &dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7",
		PortBindings: map[docker.Port][]docker.PortBinding{
			"6379/tcp": {{HostIP: "127.0.0.1", HostPort: fmt.Sprintf("%s/tcp", cfg.Get("REDIS_PORT"))}},
		},
	}
	redisResource, err := pool.RunWithOptions(redisOptions)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not start redis: %w", err)
	}

	return pool, dbResource, redisResource, nil
}

func connectToPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Get("POSTGRES_HOST"),
		cfg.Get("POSTGRES_PORT"),
		cfg.Get("POSTGRES_USER"),
		cfg.Get("POSTGRES_PASSWORD"),
		cfg.Get("POSTGRES_DB_NAME"))

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	return gormDB, sqlDB.Ping()
}

func connectToRedis(cfg *config.Config) (*redis.Client, error) {
	redisCache := redis.NewClient(&redis.Options{
		Addr: cfg.Get("REDIS_HOST") + ":" + cfg.Get("REDIS_PORT"),
	})
	return redisCache, redisCache.Ping().Err()
}

func runMigrations(db *sql.DB) error {
	driver, err := migratePostgres.WithInstance(db, &migratePostgres.Config{})
	if err != nil {
		return err
	}

	basePath, err := os.Getwd()
	if err != nil {
		return err
	}

	migrationPath, err := path.FindRoot(basePath, "migrations", true)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationPath+"/migrations",
		"postgres", driver)
	if err != nil {
		return err
	}

	return m.Up()
}

func waitForServer(ctx context.Context, port string) bool {
	loopContext, cancelLoopContext := context.WithTimeout(ctx, 120*time.Second)
	defer cancelLoopContext()

	for {
		select {
		case <-loopContext.Done():
			return false
		default:
			resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
			if err != nil {
				time.Sleep(1 * time.Second)
				continue
			}
			resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				return true
			}
			time.Sleep(1 * time.Second)
		}
	}
}

// SignUpUser registers a user through the API and returns its summary.
func SignUpUser(t *testing.T, username, password, email string, gender, interestedIn entity.Gender) entity.SignUpResponse {
	t.Helper()

	reqBody := entity.CreateUserRequest{
		Name:         "testname",
		Username:     username,
		Password:     password,
		Email:        email,
		Gender:       gender,
		InterestedIn: interestedIn,
	}

	status, body := doJSONRequest(t, http.MethodPost, BaseURL+"/v1/auth/sign-up", "", reqBody)
	if status != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, status, body)
	}

	response := http_util.HTTPResponse[entity.SignUpResponse]{}
	response, err := http_util.DecodeBody(body, response)
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return response.Data
}

// SignInUser exchanges credentials for a bearer token.
func SignInUser(t *testing.T, email, username, password string) string {
	t.Helper()

	reqBody := entity.SignInRequest{
		Email:    email,
		Username: username,
		Password: password,
	}

	status, body := doJSONRequest(t, http.MethodPost, BaseURL+"/v1/auth/sign-in", "", reqBody)
	if status != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, status, body)
	}

	response := http_util.HTTPResponse[entity.SignInResponse]{}
	response, err := http_util.DecodeBody(body, response)
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return response.Data.Token
}

// PopulateUsers seeds profiles directly through the ORM, each with one
// object-storage photo reference.
func PopulateUsers(db *gorm.DB, count int, gender, interestedIn entity.Gender) ([]entity.User, error) {
	users := make([]entity.User, 0, count)
	for i := 0; i < count; i++ {
		objectKey := uuid.NewString()
		user := entity.User{
			Name:         faker.Name(),
			Email:        faker.Email(),
			Username:     strings.ToLower(faker.Username()),
			Password:     faker.Password(),
			Gender:       gender,
			InterestedIn: interestedIn,
			Photos: []entity.Photo{
				{Position: 0, ObjectKey: objectKey, URL: "https://photos.example.com/" + objectKey},
			},
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// DoSwipe submits a decision and returns the HTTP status with the parsed
// response body.
func DoSwipe(t *testing.T, token string, profileID uint, decision string) (int, entity.SwipeResponse) {
	t.Helper()

	url := fmt.Sprintf("%s/v1/match/swipe/%d", BaseURL, profileID)
	status, body := doJSONRequest(t, http.MethodPost, url, token, entity.SwipeRequest{Decision: decision})

	response := http_util.HTTPResponse[entity.SwipeResponse]{}
	response, err := http_util.DecodeBody(body, response)
	if err != nil {
		t.Fatalf("Failed to decode swipe response: %v", err)
	}

	return status, response.Data
}

func GetCandidates(t *testing.T, token string, limit int) []entity.UserSummary {
	t.Helper()

	url := BaseURL + "/v1/match/candidates"
	if limit > 0 {
		url = fmt.Sprintf("%s?limit=%d", url, limit)
	}

	status, body := doJSONRequest(t, http.MethodGet, url, token, nil)
	if status != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, status, body)
	}

	response := http_util.HTTPResponse[entity.CandidatesResponse]{}
	response, err := http_util.DecodeBody(body, response)
	if err != nil {
		t.Fatalf("Failed to decode candidates response: %v", err)
	}

	return response.Data.Profiles
}

func GetPairings(t *testing.T, token string) []entity.PairingSummary {
	t.Helper()

	status, body := doJSONRequest(t, http.MethodGet, BaseURL+"/v1/match/pairings", token, nil)
	if status != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, status, body)
	}

	response := http_util.HTTPResponse[entity.PairingListResponse]{}
	response, err := http_util.DecodeBody(body, response)
	if err != nil {
		t.Fatalf("Failed to decode pairings response: %v", err)
	}

	return response.Data.Pairings
}

func SendMessage(t *testing.T, token string, pairingID uint, content string) (int, entity.Message) {
	t.Helper()

	url := fmt.Sprintf("%s/v1/chat/%d/messages", BaseURL, pairingID)
	status, body := doJSONRequest(t, http.MethodPost, url, token, entity.SendMessageRequest{Content: content})

	response := http_util.HTTPResponse[entity.Message]{}
	response, err := http_util.DecodeBody(body, response)
	if err != nil {
		t.Fatalf("Failed to decode message response: %v", err)
	}

	return status, response.Data
}

func ListMessages(t *testing.T, token string, pairingID uint) (int, []entity.Message) {
	t.Helper()

	url := fmt.Sprintf("%s/v1/chat/%d/messages", BaseURL, pairingID)
	status, body := doJSONRequest(t, http.MethodGet, url, token, nil)

	response := http_util.HTTPResponse[entity.MessageListResponse]{}
	response, err := http_util.DecodeBody(body, response)
	if err != nil {
		t.Fatalf("Failed to decode message list response: %v", err)
	}

	return status, response.Data.Messages
}

func MarkRead(t *testing.T, token string, pairingID uint) (int, int64) {
	t.Helper()

	url := fmt.Sprintf("%s/v1/chat/%d/read", BaseURL, pairingID)
	status, body := doJSONRequest(t, http.MethodPost, url, token, nil)

	response := http_util.HTTPResponse[entity.MarkReadResponse]{}
	response, err := http_util.DecodeBody(body, response)
	if err != nil {
		t.Fatalf("Failed to decode mark-read response: %v", err)
	}

	return status, response.Data.Updated
}

func doJSONRequest(t *testing.T, method, url, token string, payload any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(body)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	return resp.StatusCode, bodyBytes
}
