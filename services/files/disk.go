package filesvc

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

var (
	NowFunc  = time.Now                                  // mockable
	RandFunc = func() int64 { return rand.Int63n(1e9) } // mockable

	errInvalidName = errors.New("invalid file name")
)

// DiskStore keeps uploads in a directory tree rooted at root.
type DiskStore struct {
	root string
}

var _ core.FileStore = (*DiskStore)(nil)

// NewDiskStore creates root and the given sub-directories if they do not exist.
func NewDiskStore(root string, subdirs ...string) (*DiskStore, error) {
	for _, dir := range append([]string{""}, subdirs...) {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating upload directory %q", dir)
		}
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Root() string {
	return s.root
}

// StoredName derives `<field>-<unix ms>-<random><ext>` from the original file name.
func StoredName(field, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s-%d-%d%s", field, NowFunc().UnixMilli(), RandFunc(), ext)
}

func allowedText(exts []string) string {
	names := make([]string, 0, len(exts))
	for _, ext := range exts {
		names = append(names, strings.ToUpper(strings.TrimPrefix(ext, ".")))
	}
	return "Only " + strings.Join(names, ", ") + " files are allowed"
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return errInvalidName
	}
	return nil
}

// Save enforces the policy, then writes the upload under a generated unique name.
func (s *DiskStore) Save(ctx context.Context, field string, fh *multipart.FileHeader, policy core.UploadPolicy) (core.FileDescriptor, error) {
	if fh == nil {
		return core.FileDescriptor{}, core.NewUploadRejectedError(false, "No file uploaded")
	}
	if !policy.Allows(fh.Filename) {
		return core.FileDescriptor{}, core.NewUploadRejectedError(false, allowedText(policy.AllowedExts))
	}
	if policy.MaxSize > 0 && fh.Size > policy.MaxSize {
		return core.FileDescriptor{}, core.NewUploadRejectedError(true, "File too large (max %d MB)", policy.MaxSize>>20)
	}
	if err := ctx.Err(); err != nil {
		return core.FileDescriptor{}, err
	}

	src, err := fh.Open()
	if err != nil {
		return core.FileDescriptor{}, errors.Wrap(err, "opening upload")
	}
	defer func() { _ = src.Close() }()

	mimeType := fh.Header.Get("Content-Type")
	if mtype, err := mimetype.DetectReader(src); err == nil && !mtype.Is("application/octet-stream") {
		mimeType = mtype.String()
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	if _, err = src.Seek(0, io.SeekStart); err != nil {
		return core.FileDescriptor{}, errors.Wrap(err, "rewinding upload")
	}

	name := StoredName(field, fh.Filename)
	dst, err := os.OpenFile(filepath.Join(s.root, policy.Subdir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return core.FileDescriptor{}, errors.Wrap(err, "creating upload file")
	}

	var reader io.Reader = src
	if policy.MaxSize > 0 {
		reader = io.LimitReader(src, policy.MaxSize+1)
	}
	size, err := io.Copy(dst, reader)
	if cErr := dst.Close(); err == nil {
		err = cErr
	}
	if err == nil && policy.MaxSize > 0 && size > policy.MaxSize {
		err = core.NewUploadRejectedError(true, "File too large (max %d MB)", policy.MaxSize>>20)
	}
	if err != nil {
		_ = os.Remove(dst.Name())
		return core.FileDescriptor{}, errors.Wrap(err, "writing upload file")
	}

	return core.FileDescriptor{
		OriginalName: filepath.Base(fh.Filename),
		Filename:     name,
		MimeType:     mimeType,
		Path:         filepath.ToSlash(filepath.Join(s.root, policy.Subdir, name)),
		Size:         size,
		URL:          policy.URLPrefix + name,
	}, nil
}

func (s *DiskStore) Open(policy core.UploadPolicy, name string) (core.StoredFile, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.root, policy.Subdir, name))
	if err != nil {
		return nil, err
	}
	fi, err := file.Stat()
	if err != nil || fi.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

// Remove deletes a stored file. Missing files are ignored.
func (s *DiskStore) Remove(policy core.UploadPolicy, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, policy.Subdir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
