package storage_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models/modelstesting"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/storage"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/storage/storagetesting"
	"github.com/go-faker/faker/v4"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
)

func TestPostgresIntegration(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL is not set")
	}
	suite.Run(t, new(PostgresTestSuite))
}

type PostgresTestSuite struct {
	suite.Suite
	DB *sql.DB
}

func (s *PostgresTestSuite) SetupSuite() {
	s.DB = storagetesting.Open(s.T())
	s.Require().NoError(storage.NewPostgres(s.DB, storage.DefaultSnapshotName).Migrate(context.TODO()))
	storagetesting.CleanupData(s.T(), s.DB)
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.DB == nil {
		return
	}
	storagetesting.CleanupData(s.T(), s.DB)
	if err := s.DB.Close(); err != nil {
		s.FailNow("close DB", err)
	}
}

func (s *PostgresTestSuite) TestIntegrationLoadMissing() {
	storagetesting.CleanupData(s.T(), s.DB)

	snapshot, err := storage.NewPostgres(s.DB, faker.Word()).Load(context.TODO())

	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(&models.Snapshot{Products: []models.Product{}}, snapshot, "should return empty snapshot")
}

func (s *PostgresTestSuite) TestIntegrationSaveLoad() {
	storagetesting.CleanupData(s.T(), s.DB)
	store := storage.NewPostgres(s.DB, storage.DefaultSnapshotName)

	first := modelstesting.FakeSnapshot()
	second := modelstesting.FakeSnapshot(func(sn *models.Snapshot) {
		sn.LastChange = &models.Change{Added: sn.Products[:1], Timestamp: sn.LastChecked}
	})

	s.Require().NoError(store.Save(context.TODO(), &first), "shouldn't return any error")
	s.Require().NoError(store.Save(context.TODO(), &second), "shouldn't return any error")

	loaded, err := store.Load(context.TODO())

	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(&second, loaded, "should load last saved snapshot")
}

func (s *PostgresTestSuite) TestIntegrationSnapshotsAreNamed() {
	storagetesting.CleanupData(s.T(), s.DB)
	first := storage.NewPostgres(s.DB, "first")
	second := storage.NewPostgres(s.DB, "second")

	snapshot := modelstesting.FakeSnapshot()
	s.Require().NoError(first.Save(context.TODO(), &snapshot))

	loaded, err := second.Load(context.TODO())

	s.Require().NoError(err, "shouldn't return any error")
	s.True(loaded.IsEmpty(), "shouldn't load snapshot stored under different name")
}

func (s *PostgresTestSuite) TestIntegrationLoadCorrupted() {
	storagetesting.CleanupData(s.T(), s.DB)
	storagetesting.InsertSnapshotBody(s.T(), s.DB, storage.DefaultSnapshotName, "{")

	_, err := storage.NewPostgres(s.DB, storage.DefaultSnapshotName).Load(context.TODO())

	s.Require().ErrorIs(err, storage.ErrCorruptSnapshot, "should return corrupted snapshot error")
}
