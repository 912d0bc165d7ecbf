package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/envutil"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.String("POSTGRES_HOST", "localhost")
	port := envutil.String("POSTGRES_PORT", "5432")
	user := envutil.String("POSTGRES_USER", "postgres")
	password := envutil.String("POSTGRES_PASSWORD", "")
	name := envutil.String("POSTGRES_NAME", "statera")

	sslmode := "disable"
	if envutil.Bool("POSTGRES_SSL", false) {
		sslmode = "require"
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslmode)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrate(s.db); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

// AutoMigrate is shared with the test harness so both environments carry the
// same table set.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.User{},
		&types.UserDetail{},
		&types.Session{},
		&types.UserRole{},
		&types.OAuthAccessToken{},
		&types.OAuthAuthCode{},
		&types.OAuthDeviceCode{},
		&types.Organization{},
		&types.Group{},
		&types.Member{},
		&types.Lead{},
		&types.Plan{},
		&types.Subscription{},
		&types.Invoice{},
		&types.Announcement{},
		&types.AnnouncementOrganization{},
		&types.AnnouncementGroup{},
		&types.AnnouncementMember{},
		&types.Assessment{},
		&types.Answer{},
	)
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
