package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	// TranslateError surfaces dialect errors as gorm sentinels
	// (gorm.ErrDuplicatedKey on unique index violations).
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}
