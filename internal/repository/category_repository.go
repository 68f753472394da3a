package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wordbank/internal/model"
)

// insertChunk keeps batch inserts under SQLite's bound-parameter limit.
const insertChunk = 100

// CategoryRepository is the durable store for category records. The database
// connection is opened lazily on first use; concurrent first callers share a
// single in-flight open via singleflight, and a failed open is retried by a
// later caller. Every operation reports ErrNotReady until an open succeeds.
type CategoryRepository struct {
	dsn string
	log *zap.Logger
	now func() time.Time

	sf singleflight.Group
	mu sync.RWMutex
	db *gorm.DB
}

func NewCategoryRepository(dsn string, log *zap.Logger) *CategoryRepository {
	return &CategoryRepository{dsn: dsn, log: log, now: time.Now}
}

// WithClock overrides the timestamp source used for inserted records.
func (r *CategoryRepository) WithClock(now func() time.Time) *CategoryRepository {
	r.now = now
	return r
}

// handle returns the shared connection, establishing it on first use.
func (r *CategoryRepository) handle(ctx context.Context) (*gorm.DB, error) {
	r.mu.RLock()
	db := r.db
	r.mu.RUnlock()
	if db != nil {
		return db.WithContext(ctx), nil
	}

	v, err, _ := r.sf.Do("open", func() (any, error) {
		r.mu.RLock()
		db := r.db
		r.mu.RUnlock()
		if db != nil {
			return db, nil
		}

		db, err := openDB(r.dsn)
		if err != nil {
			return nil, err
		}
		if err := r.ensureSchema(db); err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.db = db
		r.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	return v.(*gorm.DB).WithContext(ctx), nil
}

// ensureSchema migrates the categories table and adds the unique index on
// name. A failing index build (pre-existing duplicates) is logged and
// tolerated so the store stays usable in a degraded-integrity state.
func (r *CategoryRepository) ensureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Category{}); err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories(name)").Error
	if err != nil {
		r.log.Warn("unique index on category name unavailable, duplicates will not be rejected",
			zap.Error(err))
	}
	return nil
}

// EnsureSchema forces connection setup and schema migration. It is idempotent
// and optional: every operation performs the same setup lazily.
func (r *CategoryRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.handle(ctx)
	return err
}

// Close releases the underlying connection if one was ever opened.
func (r *CategoryRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	db, err := r.handle(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

// LatestCreatedAt returns the newest record timestamp, or nil for an empty store.
func (r *CategoryRepository) LatestCreatedAt(ctx context.Context) (*time.Time, error) {
	db, err := r.handle(ctx)
	if err != nil {
		return nil, err
	}
	var rec model.Category
	err = db.Model(&model.Category{}).
		Select("created_at").
		Order("created_at DESC").
		Limit(1).
		Take(&rec).Error
	switch {
	case err == nil:
		return &rec.CreatedAt, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("latest created_at: %w", err)
	}
}

// SampleRandomIDs returns an unbiased sample of up to k existing record ids.
func (r *CategoryRepository) SampleRandomIDs(ctx context.Context, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}
	db, err := r.handle(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := db.Model(&model.Category{}).
		Order("RANDOM()").
		Limit(k).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("sample ids: %w", err)
	}
	return ids, nil
}

// DeleteByIDs removes the given records. Ids that are already gone are not an error.
func (r *CategoryRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	db, err := r.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.Where("id IN ?", ids).Delete(&model.Category{}).Error; err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	return nil
}

// InsertBatch inserts drafts best-effort and unordered, assigning ids and
// timestamps. Duplicate names are skipped rather than aborting the batch;
// other insert failures are logged, not propagated. Only connection problems
// surface as an error.
func (r *CategoryRepository) InsertBatch(ctx context.Context, drafts []model.Draft) (inserted, skipped int64, err error) {
	if len(drafts) == 0 {
		return 0, 0, nil
	}
	db, err := r.handle(ctx)
	if err != nil {
		return 0, 0, err
	}

	records := make([]model.Category, 0, len(drafts))
	createdAt := r.now().UTC()
	for _, d := range drafts {
		records = append(records, model.Category{
			ID:        uuid.NewString(),
			Name:      d.Name,
			Words:     d.Words,
			CreatedAt: createdAt,
			Source:    d.Source,
		})
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&records, insertChunk)
	if res.Error != nil {
		r.log.Error("batch insert failed", zap.Int("drafts", len(drafts)), zap.Error(res.Error))
		return 0, 0, nil
	}
	return res.RowsAffected, int64(len(drafts)) - res.RowsAffected, nil
}

// InsertOne inserts a single draft, failing with ErrConflict when the
// category name already exists.
func (r *CategoryRepository) InsertOne(ctx context.Context, draft model.Draft) (string, error) {
	db, err := r.handle(ctx)
	if err != nil {
		return "", err
	}

	record := model.Category{
		ID:        uuid.NewString(),
		Name:      draft.Name,
		Words:     draft.Words,
		CreatedAt: r.now().UTC(),
		Source:    draft.Source,
	}
	if err := db.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", fmt.Errorf("%w: %q", ErrConflict, draft.Name)
		}
		return "", fmt.Errorf("insert category: %w", err)
	}
	return record.ID, nil
}

// FindRecent returns at most limit records, newest first.
func (r *CategoryRepository) FindRecent(ctx context.Context, limit int) ([]model.Category, error) {
	db, err := r.handle(ctx)
	if err != nil {
		return nil, err
	}
	var records []model.Category
	if err := db.Order("created_at DESC, id ASC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find recent categories: %w", err)
	}
	return records, nil
}
