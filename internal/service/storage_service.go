package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quizdeck_backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider is the media store boundary: bytes in under a name, bytes
// out by name, idempotent delete, listing for export.
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, filename string) ([]byte, error)
	Exists(ctx context.Context, filename string) (bool, error)
	Delete(ctx context.Context, filename string) error
	List(ctx context.Context) ([]string, error)
	GetURL(filename string) string
}

// LocalStorageProvider stores media on the local filesystem.
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) error {
	dst := filepath.Join(p.Config.LocalPath, filename)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	return err
}

func (p *LocalStorageProvider) Download(ctx context.Context, filename string) ([]byte, error) {
	return os.ReadFile(filepath.Join(p.Config.LocalPath, filename))
}

func (p *LocalStorageProvider) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := os.Stat(filepath.Join(p.Config.LocalPath, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, filename string) error {
	err := os.Remove(filepath.Join(p.Config.LocalPath, filename))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (p *LocalStorageProvider) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(p.Config.LocalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (p *LocalStorageProvider) GetURL(filename string) string {
	return "/uploads/" + filename
}

// MinioStorageProvider stores media in a MinIO bucket.
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) error {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (p *MinioStorageProvider) Download(ctx context.Context, filename string) ([]byte, error) {
	obj, err := p.Client.GetObject(ctx, p.Config.MinioBucket, filename, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

func (p *MinioStorageProvider) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := p.Client.StatObject(ctx, p.Config.MinioBucket, filename, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, filename string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) List(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range p.Client.ListObjects(ctx, p.Config.MinioBucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

func (p *MinioStorageProvider) GetURL(filename string) string {
	return "/" + p.Config.MinioBucket + "/" + filename
}

// StorageService fronts whichever provider the config selects.
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	if cfg.Storage.Type == "minio" {
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err == nil {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{Provider: provider}
}

// StoreNew writes data under a freshly generated opaque name carrying the
// given extension and returns that name.
func (s *StorageService) StoreNew(ctx context.Context, data []byte, ext string) (string, error) {
	name := NewOpaqueName(ext)
	if err := s.Store(ctx, name, data); err != nil {
		return "", err
	}
	return name, nil
}

func (s *StorageService) Store(ctx context.Context, filename string, data []byte) error {
	return s.Provider.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), contentTypeFor(filename))
}

func (s *StorageService) Download(ctx context.Context, filename string) ([]byte, error) {
	return s.Provider.Download(ctx, filename)
}

func (s *StorageService) Exists(ctx context.Context, filename string) (bool, error) {
	return s.Provider.Exists(ctx, filename)
}

func (s *StorageService) Delete(ctx context.Context, filename string) error {
	return s.Provider.Delete(ctx, filename)
}

func (s *StorageService) List(ctx context.Context) ([]string, error) {
	return s.Provider.List(ctx)
}

func (s *StorageService) GetURL(filename string) string {
	return s.Provider.GetURL(filename)
}

// NewOpaqueName generates a collision-resistant stored name preserving the
// original extension.
func NewOpaqueName(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return uuid.NewString() + ext
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
