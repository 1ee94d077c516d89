package service

import (
	"context"
)

const (
	FolderProfile  = "portfolio/profile"
	FolderProjects = "portfolio/projects"
)

// ImageFile is an upload that already passed the size and type guard.
type ImageFile struct {
	Data     []byte
	Filename string
	MimeType string
}

type StoredMedia struct {
	URL    string
	Handle string
}

// MediaStore hosts images outside the database.
type MediaStore interface {
	Store(ctx context.Context, file ImageFile, folder string) (*StoredMedia, error)
	// Delete must treat an unknown handle as success.
	Delete(ctx context.Context, handle string) error
}
