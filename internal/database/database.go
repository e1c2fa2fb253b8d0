// Package database wires GORM to Postgres and exposes repositories over
// the social models.
package database

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sakmpar/newsforge/internal/logger"
	"github.com/sakmpar/newsforge/internal/models"
)

// Database bundles the connection and its repositories.
type Database struct {
	DB *gorm.DB

	Users    *UserRepo
	Posts    *PostRepo
	Likes    *LikeRepo
	Comments *CommentRepo
	Shares   *ShareRepo
}

// Connect opens the Postgres connection and builds the repositories.
func Connect(databaseURL string) (*Database, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{
		DB:       db,
		Users:    &UserRepo{db: db},
		Posts:    &PostRepo{db: db},
		Likes:    &LikeRepo{db: db},
		Comments: &CommentRepo{db: db},
		Shares:   &ShareRepo{db: db},
	}, nil
}

// Migrate applies the schema for all social models.
func (d *Database) Migrate() error {
	err := d.DB.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Share{},
		&models.Category{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Totals returns site-wide row counts for the stats endpoint.
func (d *Database) Totals() (map[string]int64, error) {
	totals := map[string]int64{}
	for name, model := range map[string]any{
		"users":    &models.User{},
		"posts":    &models.Post{},
		"likes":    &models.Like{},
		"comments": &models.Comment{},
		"shares":   &models.Share{},
	} {
		var count int64
		if err := d.DB.Model(model).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", name, err)
		}
		totals[name] = count
	}
	return totals, nil
}

// EnsureAdmin creates the bootstrap admin account when no admin exists, and
// returns it. Generated posts are attributed to this account.
func (d *Database) EnsureAdmin(username, email, password string) (*models.User, error) {
	var admin models.User
	err := d.DB.Where("is_admin = ?", true).First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin = models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		IsActive:     true,
		IsAdmin:      true,
	}
	if err := d.DB.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Get().Info().Str("username", username).Msg("Created bootstrap admin account")
	return &admin, nil
}
