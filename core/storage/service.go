package storage

import (
	"context"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/resource"
)

// Service manages storage buckets and file metadata.
type Service struct {
	buckets *resource.Store[Bucket]
	files   *resource.Store[File]
}

func NewService(client core.RESTClient, logger core.Logger) *Service {
	return &Service{
		buckets: resource.NewStore[Bucket](client, resource.Options{
			Name:   "bucket",
			Path:   "/v1/storage/buckets",
			Mode:   resource.ClientPaged,
			Insert: resource.Append,
			Logger: logger,
		}),
		files: resource.NewStore[File](client, resource.Options{
			Name:   "file",
			Path:   "/v1/storage/files",
			Mode:   resource.ServerPaged,
			Insert: resource.Prepend, // newest uploads first
			Logger: logger,
		}),
	}
}

func (svc *Service) Buckets() *resource.Store[Bucket] { return svc.buckets }
func (svc *Service) Files() *resource.Store[File]     { return svc.files }

func (svc *Service) ListBuckets(ctx context.Context) (resource.CollectionState[Bucket], error) {
	return svc.buckets.FetchPage(ctx, 1, 0, nil)
}

func (svc *Service) CreateBucket(ctx context.Context, nb NewBucket) (Bucket, error) {
	if err := nb.Validate(); err != nil {
		return Bucket{}, err
	}
	return svc.buckets.Create(ctx, nb)
}

func (svc *Service) ListFiles(ctx context.Context, page, size int, filter FileFilter) (resource.CollectionState[File], error) {
	return svc.files.FetchPage(ctx, page, size, filter.Map())
}

func (svc *Service) DeleteFile(ctx context.Context, id string) error {
	return svc.files.Remove(ctx, id)
}
