package resource

import (
	"context"
	"mime/multipart"
	"path"
	"time"

	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

const FileField = "file"

var (
	ErrNotFound          = core.NewNotFoundError("Resource not found")
	ErrNotFoundForUpdate = core.NewNotFoundError("Resource not found for update")
)

type (
	Repository interface {
		QueryAll(ctx context.Context) ([]Resource, error)
		QueryByType(ctx context.Context, typ string) ([]Resource, error)
		GetByID(ctx context.Context, id int) (Resource, error)
		Create(ctx context.Context, res Resource) (Resource, error)
		Update(ctx context.Context, res Resource) (Resource, error)
		Delete(ctx context.Context, id int) error
	}

	Service struct {
		repo   Repository
		files  core.FileStore
		policy core.UploadPolicy
		logger core.Logger
	}
)

func NewService(repo Repository, files core.FileStore, policy core.UploadPolicy, logger core.Logger) *Service {
	return &Service{repo: repo, files: files, policy: policy, logger: logger}
}

func (svc *Service) Policy() core.UploadPolicy {
	return svc.policy
}

func (svc *Service) QueryAll(ctx context.Context) ([]Resource, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) QueryByType(ctx context.Context, typ string) ([]Resource, error) {
	return svc.repo.QueryByType(ctx, core.CleanString(typ))
}

func (svc *Service) GetByID(ctx context.Context, id int) (Resource, error) {
	return svc.repo.GetByID(ctx, id)
}

// Upload stores a file without creating a resource.
func (svc *Service) Upload(ctx context.Context, upload *multipart.FileHeader) (core.FileDescriptor, error) {
	return svc.files.Save(ctx, FileField, upload, svc.policy)
}

func (svc *Service) remove(filePath string) {
	if filePath == "" {
		return
	}
	if err := svc.files.Remove(svc.policy, path.Base(filePath)); err != nil && svc.logger != nil {
		svc.logger.Warn("could not remove resource file", err)
	}
}

func (svc *Service) Create(ctx context.Context, nr NewResource, upload *multipart.FileHeader) (Resource, error) {
	var filePath string
	if upload != nil {
		fd, err := svc.files.Save(ctx, FileField, upload, svc.policy)
		if err != nil {
			return Resource{}, errors.Wrap(err, "saving upload")
		}
		filePath = fd.Path
	}

	now := time.Now().UTC()
	tags := nr.Tags
	if tags == nil {
		tags = core.StringList{}
	}
	res, err := svc.repo.Create(ctx, Resource{
		Title:       core.CleanString(nr.Title),
		Description: core.NullString(nr.Description),
		Type:        core.CleanString(nr.Type),
		URL:         core.NullString(nr.URL),
		FilePath:    core.NullString(filePath),
		CreatedBy:   core.NullInt(nr.CreatedBy),
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		svc.remove(filePath)
		return Resource{}, err
	}
	return res, nil
}

// Update replaces all the editable fields of the resource. A new upload replaces the previous file.
func (svc *Service) Update(ctx context.Context, id int, nr NewResource, upload *multipart.FileHeader) (Resource, error) {
	res, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		if core.IsNotFound(err) {
			return Resource{}, ErrNotFoundForUpdate
		}
		return Resource{}, err
	}

	prevFile := res.FilePath.String
	if upload != nil {
		fd, err := svc.files.Save(ctx, FileField, upload, svc.policy)
		if err != nil {
			return Resource{}, errors.Wrap(err, "saving upload")
		}
		res.FilePath = core.NullString(fd.Path)
	}

	res.Title = core.CleanString(nr.Title)
	res.Description = core.NullString(nr.Description)
	res.Type = core.CleanString(nr.Type)
	res.URL = core.NullString(nr.URL)
	if nr.Tags != nil {
		res.Tags = nr.Tags
	}
	res.UpdatedAt = time.Now().UTC()

	updated, err := svc.repo.Update(ctx, res)
	if err != nil {
		if upload != nil {
			svc.remove(res.FilePath.String)
		}
		return Resource{}, err
	}
	if upload != nil && prevFile != "" {
		svc.remove(prevFile)
	}
	return updated, nil
}

// Delete removes the resource and its stored file.
func (svc *Service) Delete(ctx context.Context, id int) error {
	res, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err = svc.repo.Delete(ctx, id); err != nil {
		return err
	}
	svc.remove(res.FilePath.String)
	return nil
}
