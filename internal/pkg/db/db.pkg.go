package database

import (
	"fmt"
	"portrait-backend/internal/pkg/redis"
	"time"

	"github.com/go-gorm/caches/v4"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	_logger "gorm.io/gorm/logger"
)

type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	Database  string
	SSLMode   string
	Driver    DriverEnum
	Cache     bool
	Rds       *redis.Client
	CacheTime time.Duration
}

type Database struct {
	*gorm.DB
	Config *Config

	cached *gorm.DB
}

func Setup(cfg *Config) (*Database, error) {
	var db *gorm.DB
	var err error

	gormConfig := &gorm.Config{
		Logger: _logger.Default.LogMode(_logger.Silent),
	}

	switch cfg.Driver {
	case POSTGRES:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Database,
			cfg.Port,
			cfg.SSLMode,
		)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)

	case MYSQL:
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Database,
		)
		db, err = gorm.Open(mysql.Open(dsn), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s (supported: postgres, mysql)", cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(20)

	return New(db, cfg)
}

// New wraps an open connection. With cfg.Cache set, a second handle over the
// same pool gets the query cache; only Cached() callers read through it.
func New(db *gorm.DB, cfg *Config) (*Database, error) {
	database := &Database{DB: db, Config: cfg}
	if !cfg.Cache {
		return database, nil
	}

	cached, err := openSibling(db, cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open cached handle: %w", err)
	}
	if err = cached.Use(newCachesPlugin(cfg)); err != nil {
		return nil, fmt.Errorf("failed to register query cache: %w", err)
	}

	database.cached = cached
	return database, nil
}

// openSibling opens a gorm handle sharing db's connection pool but with its
// own callbacks, so plugins registered on it stay local.
func openSibling(db *gorm.DB, driver DriverEnum) (*gorm.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch driver {
	case POSTGRES:
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	case MYSQL:
		dialector = mysql.New(mysql.Config{Conn: sqlDB})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:                 db.Logger,
		NowFunc:                db.NowFunc,
		NamingStrategy:         db.NamingStrategy,
		SkipDefaultTransaction: db.SkipDefaultTransaction,
	})
}

// Cached returns the handle for read-mostly tables this service owns. It is
// db itself when caching is off. Tables written by other systems must not
// read through it: nothing would invalidate their entries.
func (db *Database) Cached() *Database {
	if db.cached == nil {
		return db
	}
	return &Database{DB: db.cached, Config: db.Config}
}

func newCachesPlugin(cfg *Config) *caches.Caches {
	if cfg.Rds != nil && cfg.CacheTime > 0 {
		return &caches.Caches{Conf: &caches.Config{
			Easer: true,
			Cacher: &redisCacher{
				rdb:       cfg.Rds.Client,
				cacheTime: cfg.CacheTime,
			},
		}}
	}

	return &caches.Caches{Conf: &caches.Config{
		Easer:  true,
		Cacher: &memoryCacher{},
	}}
}

func (db *Database) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

func (db *Database) IsCloseConnection() bool {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return true
	}
	return sqlDB == nil || sqlDB.Stats().OpenConnections == 0
}

// Ping is used by the health endpoint.
func (db *Database) Ping() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Ping()
}
