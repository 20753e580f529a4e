package main

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SubmissionDTO is one transaction the node accepted.
type SubmissionDTO struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	TxnHashHex  string    `gorm:"column:txn_hash_hex;not null;index"`
	Method      string    `gorm:"column:method;not null"`
	PublicKey   string    `gorm:"column:public_key;not null;index"`
	SubmittedAt time.Time `gorm:"column:submitted_at;not null"`
}

func (SubmissionDTO) TableName() string {
	return "submissions"
}

// History keeps a local record of submitted transactions. It never
// stores keys or unsubmitted transactions.
type History struct {
	db *gorm.DB
}

func NewHistory(path string) (*History, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.AutoMigrate(&SubmissionDTO{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return &History{db: db}, nil
}

func (h *History) Record(ctx context.Context, txnHashHex, method, publicKey string) error {
	dto := SubmissionDTO{
		TxnHashHex:  txnHashHex,
		Method:      method,
		PublicKey:   publicKey,
		SubmittedAt: time.Now().UTC(),
	}
	if err := h.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}
	return nil
}

// List returns the latest submissions, newest first. An empty publicKey
// lists every account.
func (h *History) List(ctx context.Context, publicKey string, limit int) ([]SubmissionDTO, error) {
	q := h.db.WithContext(ctx).Order("submitted_at DESC, id DESC").Limit(limit)
	if publicKey != "" {
		q = q.Where("public_key = ?", publicKey)
	}

	var out []SubmissionDTO
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return out, nil
}

func (h *History) Close() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
