package main

import (
	"context"
	"fmt"

	"github.com/haileyok/threadview/thread"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// EdgeStore keeps the latest thread edges of each rendered source.
type EdgeStore struct {
	db *gorm.DB
}

func OpenEdgeStore(path string) (*EdgeStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening edge store: %w", err)
	}

	if err := db.AutoMigrate(&ThreadEdge{}); err != nil {
		return nil, fmt.Errorf("error migrating edge store: %w", err)
	}

	return &EdgeStore{db: db}, nil
}

func (s *EdgeStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record replaces the stored edges of source with the edges of g.
func (s *EdgeStore) Record(ctx context.Context, source string, g *thread.Graph) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("source = ?", source).Delete(&ThreadEdge{}).Error; err != nil {
			return fmt.Errorf("error clearing edges: %w", err)
		}

		if len(g.Edges) == 0 {
			return nil
		}

		items := make([]ThreadEdge, len(g.Edges))
		for i, e := range g.Edges {
			items[i] = ThreadEdge{
				Source:    source,
				CommentID: e.ChildID,
				ParentID:  e.ParentID,
				Position:  i,
			}
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("error saving edges: %w", err)
		}
		return nil
	})
}

func (s *EdgeStore) Edges(ctx context.Context, source string) ([]ThreadEdge, error) {
	var edges []ThreadEdge
	err := s.db.WithContext(ctx).
		Where("source = ?", source).
		Order("position").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("error loading edges: %w", err)
	}
	return edges, nil
}

// Replies returns the direct replies of parentID in the order they were
// rendered.
func (s *EdgeStore) Replies(ctx context.Context, source string, parentID int) ([]int, error) {
	var ids []int
	err := s.db.WithContext(ctx).
		Model(&ThreadEdge{}).
		Where("source = ? AND parent_id = ?", source, parentID).
		Order("position").
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("error loading replies: %w", err)
	}
	return ids, nil
}
