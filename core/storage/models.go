package storage

import (
	"strconv"
	"time"

	"github.com/trezcool/masomo-admin/core"
)

// Bucket is a named file container; buckets are few and unpaginated.
type Bucket struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

func (b Bucket) EntityID() string { return strconv.Itoa(b.ID) }

// File is stored file metadata; the content itself lives behind URL.
type File struct {
	ID          int       `json:"id"`
	BucketID    int       `json:"bucket_id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (f File) EntityID() string { return strconv.Itoa(f.ID) }

type NewBucket struct {
	Name   string `json:"name" validate:"required,alphanum_"`
	Public bool   `json:"public"`
}

func (nb *NewBucket) Validate() error {
	nb.Name = core.CleanString(nb.Name, true /* lower */)
	return core.TranslateError(core.Validate.Struct(nb))
}

type FileFilter struct {
	BucketID    string
	Search      string
	ContentType string
}

func (f FileFilter) Map() map[string]string {
	return map[string]string{
		"bucket_id":    f.BucketID,
		"search":       core.CleanString(f.Search, true /* lower */),
		"content_type": f.ContentType,
	}
}
