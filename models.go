package main

import "gorm.io/gorm"

// ThreadEdge is one parent/reply relation observed in a rendered page.
type ThreadEdge struct {
	gorm.Model
	Source    string `gorm:"index"`
	CommentID int    `gorm:"index"`
	ParentID  int    `gorm:"index"`
	Position  int
}
