package db

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/techagentng/cleancity/config"
	"github.com/techagentng/cleancity/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	log.Printf("Connecting to postgres: host=%s db=%s port=%d", c.PostgresHost, c.PostgresDB, c.PostgresPort)
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d TimeZone=UTC",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	// TranslateError turns unique violations into gorm.ErrDuplicatedKey,
	// which the vote ledger relies on.
	gormConfig := &gorm.Config{TranslateError: true}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: uuid.New(), Name: models.RoleAdmin},
		{ID: uuid.New(), Name: models.RoleUser},
		{ID: uuid.New(), Name: models.RoleWorker},
	}

	for _, role := range roles {
		if err := db.FirstOrCreate(&role, models.Role{Name: role.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Report{},
		&models.Vote{},
		&models.WorkerLocation{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedRoles(db); err != nil {
		return fmt.Errorf("seeding roles error: %v", err)
	}

	return nil
}
