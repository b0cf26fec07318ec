package persistence

import (
	"context"
	"errors"
	"time"

	"tiktok-planner/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QueueBlob is one named slot in MySQL
type QueueBlob struct {
	Key       string    `gorm:"column:slot_key;primaryKey;size:191"`
	Data      []byte    `gorm:"column:data;type:longblob;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (QueueBlob) TableName() string {
	return "queue_blobs"
}

type MySQLBlobStore struct{ db *gorm.DB }

func NewMySQLBlobStore(db *gorm.DB) repository.IBlobStore {
	return &MySQLBlobStore{db: db}
}

// EnsureQueueBlobTable migrates the slot table.
func EnsureQueueBlobTable(db *gorm.DB) error {
	return db.AutoMigrate(&QueueBlob{})
}

func (r *MySQLBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob QueueBlob
	err := r.db.WithContext(ctx).Where("slot_key = ?", key).Take(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBlobNotFound
		}
		return nil, err
	}
	return blob.Data, nil
}

func (r *MySQLBlobStore) Set(ctx context.Context, key string, value []byte) error {
	blob := QueueBlob{Key: key, Data: value, UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&blob).Error
}
