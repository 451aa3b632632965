package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rackwise/rackwise/internal/catalog/repository"
	"github.com/rackwise/rackwise/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services bundles the catalog services.
type Services struct {
	Basket   *BasketService
	Project  *ProjectService
	Capacity *CapacityService
}

// NewServices wires repositories, cache and object storage into services.
// MinIO is optional: without an endpoint the raw-upload archive is skipped.
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			minioClient = nil
		}
	}

	capacity := NewCapacityService(repos.Basket, rdb)
	return &Services{
		Basket:   NewBasketService(repos.Basket, capacity, minioClient, cfg.MinIO.Bucket),
		Project:  NewProjectService(repos.Project),
		Capacity: capacity,
	}
}
