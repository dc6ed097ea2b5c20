package config

import (
	"fmt"
	"time"

	"github.com/farellandr/fyyur/internal/models"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	AppFyyur  = "fyyur"
	AppTrivia = "trivia"
)

type Config struct {
	App string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	Port     string
	LogLevel string

	JWTSecret         string
	TriviaRequireAuth bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RabbitMQURL string
	UploadDir   string
}

// LoadConfig reads the environment for the given app. The database name
// defaults to the app name so both apps can share one server.
func LoadConfig(app string) (*Config, error) {
	if app != AppFyyur && app != AppTrivia {
		return nil, fmt.Errorf("unknown app %q", app)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", app)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", app+".db")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TRIVIA_REQUIRE_AUTH", false)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("UPLOAD_DIR", "./uploads")

	cfg := &Config{
		App:               app,
		DBDriver:          v.GetString("DB_DRIVER"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		DBSSLMode:         v.GetString("DB_SSLMODE"),
		SQLitePath:        v.GetString("SQLITE_PATH"),
		Port:              v.GetString("PORT"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		TriviaRequireAuth: v.GetBool("TRIVIA_REQUIRE_AUTH"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		CacheTTL:          v.GetDuration("CACHE_TTL"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		UploadDir:         v.GetString("UPLOAD_DIR"),
	}

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.TriviaRequireAuth && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("TRIVIA_REQUIRE_AUTH needs JWT_SECRET")
	}

	return cfg, nil
}

func (cfg *Config) dialector() gorm.Dialector {
	if cfg.DBDriver == "sqlite" {
		return sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on")
	}
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)
	return postgres.Open(dsn)
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(cfg.dialector(), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db, cfg.App); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the app's tables and seeds the rows every deployment needs.
func Migrate(db *gorm.DB, app string) error {
	switch app {
	case AppFyyur:
		return db.AutoMigrate(models.FyyurModels()...)
	case AppTrivia:
		if err := db.AutoMigrate(models.TriviaModels()...); err != nil {
			return err
		}
		return seedRoles(db)
	}
	return fmt.Errorf("unknown app %q", app)
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdmin},
		{Name: models.RoleCurator},
	}

	for _, role := range roles {
		var existingRole models.Role
		if err := db.Where(models.Role{Name: role.Name}).FirstOrCreate(&existingRole, role).Error; err != nil {
			return err
		}
	}
	return nil
}
