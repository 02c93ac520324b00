// Package orm is a thin query helper over GORM with pagination and an
// optional Redis read-through.
package orm

import (
	"time"

	"github.com/webproformation/LaboutiqueOK-sub001/pkg/cache"
	"gorm.io/gorm"
)

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type Query struct {
	db *gorm.DB
}

// New starts a query against an explicit connection.
func New(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(order string) *Query {
	return &Query{db: q.db.Order(order)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

func (q *Query) Delete(v interface{}) error {
	return q.db.Delete(v).Error
}

// GetWithPagination fills dest with one page and returns page metadata.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	err := q.db.Offset((page - 1) * limit).Limit(limit).Find(dest).Error
	if err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// Cache runs the query through Redis: on a hit dest is filled from the
// cached JSON, on a miss the database result is stored under key for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	cache.Set(key, dest, ttl) //nolint:errcheck // cache write failure degrades to DB reads
	return nil
}
