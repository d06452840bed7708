package core

import (
	"context"
	"io"
	"io/fs"
	"mime/multipart"
	"path/filepath"
	"strings"
)

type (
	// FileDescriptor describes a stored upload.
	FileDescriptor struct {
		OriginalName string `json:"originalName"`
		Filename     string `json:"filename"`
		MimeType     string `json:"mimetype"`
		Path         string `json:"path"`
		Size         int64  `json:"size"`
		URL          string `json:"url"`
	}

	// UploadPolicy is enforced before an upload is written.
	UploadPolicy struct {
		Subdir      string   // relative to the uploads root
		AllowedExts []string // lower-cased, with the leading dot; empty allows any extension
		MaxSize     int64    // bytes; 0 means unlimited
		URLPrefix   string   // retrieval route, the stored name is appended
	}

	StoredFile interface {
		io.ReadSeekCloser
		Stat() (fs.FileInfo, error)
	}

	// FileStore persists uploads under generated unique names.
	FileStore interface {
		Save(ctx context.Context, field string, fh *multipart.FileHeader, policy UploadPolicy) (FileDescriptor, error)
		Open(policy UploadPolicy, name string) (StoredFile, error)
		Remove(policy UploadPolicy, name string) error
	}
)

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/msword",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.ms-powerpoint",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.ms-excel",
	".zip":  "application/zip",
	".txt":  "text/plain",
}

// ContentTypeFor returns the download content type of a stored file, inferred from its extension.
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Allows reports whether the policy accepts the extension of `name`.
func (p UploadPolicy) Allows(name string) bool {
	if len(p.AllowedExts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range p.AllowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}
