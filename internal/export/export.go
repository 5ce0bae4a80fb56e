package export

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Artifact is one rendered chart waiting to be archived.
type Artifact struct {
	Label     string
	Extension string
	Data      []byte
}

func (a Artifact) FileName() string {
	return Slug(a.Label) + "." + a.Extension
}

type Result struct {
	ID          string
	Name        string
	ArchivePath string
	Files       []string
	UploadURL   string
	Warnings    []string
}

// Coordinator packages artifacts into <dir>/<name>.zip. Each export claims a
// staging directory <dir>/<name> that is removed again on every exit path.
type Coordinator struct {
	dir      string
	logger   *logrus.Logger
	uploader Uploader
	now      func() time.Time
}

func NewCoordinator(dir string, logger *logrus.Logger) *Coordinator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Coordinator{dir: dir, logger: logger, now: time.Now}
}

// WithUploader publishes every archive through u before it is delivered.
func (c *Coordinator) WithUploader(u Uploader) *Coordinator {
	c.uploader = u
	return c
}

func (c *Coordinator) Dir() string {
	return c.dir
}

func (c *Coordinator) warn(res *Result, err error, msg string) {
	c.logger.WithFields(logrus.Fields{
		"export_id": res.ID,
		"name":      res.Name,
	}).WithError(err).Warn(msg)
	res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", msg, err))
}

func (c *Coordinator) Export(ctx context.Context, name string, artifacts []Artifact) (*Result, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("nothing to export")
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	archivePath := filepath.Join(c.dir, name+".zip")
	if _, err := os.Stat(archivePath); err == nil {
		return nil, &NameCollisionError{Name: name, Path: archivePath}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to check archive path: %w", err)
	}

	staging := filepath.Join(c.dir, name)
	if err := os.Mkdir(staging, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, &NameCollisionError{Name: name, Path: staging}
		}
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	res := &Result{ID: uuid.NewString(), Name: name}
	log := c.logger.WithFields(logrus.Fields{"export_id": res.ID, "name": name})
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			c.warn(res, err, "failed to remove staging directory")
		}
	}()

	seen := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file := a.FileName()
		if prev, ok := seen[file]; ok {
			return nil, fmt.Errorf("artifacts %q and %q both map to %s", prev, a.Label, file)
		}
		seen[file] = a.Label
		if err := os.WriteFile(filepath.Join(staging, file), a.Data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write artifact %s: %w", file, err)
		}
		res.Files = append(res.Files, file)
	}

	if err := c.archive(res, staging, archivePath); err != nil {
		return nil, err
	}
	res.ArchivePath = archivePath

	if c.uploader != nil {
		url, err := c.uploader.Upload(ctx, archivePath, name+".zip")
		if err != nil {
			if rmErr := os.Remove(archivePath); rmErr != nil {
				c.warn(res, rmErr, "failed to remove archive")
			}
			return nil, err
		}
		res.UploadURL = url
		log = log.WithField("upload_url", url)
	}

	log.WithField("files", len(res.Files)).Info("Export archive ready")
	return res, nil
}

// archive zips the staging directory into a temporary file next to the final
// path and links it into place once it is fully written. Linking fails on an
// existing archive, so a name claimed after the collision check is never
// overwritten.
func (c *Coordinator) archive(res *Result, staging, finalPath string) error {
	tmpPath := finalPath + ".tmp-" + res.ID
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temporary archive: %w", err)
	}

	defer func() {
		_ = tmp.Close()
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.warn(res, err, "failed to remove temporary archive")
		}
	}()

	zw := zip.NewWriter(tmp)
	entries, err := os.ReadDir(staging)
	if err != nil {
		return fmt.Errorf("failed to list staging directory: %w", err)
	}
	modified := c.now()
	for _, e := range entries {
		if err := addFile(zw, filepath.Join(staging, e.Name()), e.Name(), modified); err != nil {
			_ = zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}
	if err := os.Link(tmpPath, finalPath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &NameCollisionError{Name: res.Name, Path: finalPath}
		}
		return fmt.Errorf("failed to move archive into place: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string, modified time.Time) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modified})
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to compress %s: %w", name, err)
	}
	return nil
}

// Deliver streams the archive to w and removes it afterwards. A failed removal
// only adds a warning to res.
func (c *Coordinator) Deliver(res *Result, w io.Writer) error {
	f, err := os.Open(res.ArchivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	_, copyErr := io.Copy(w, f)
	_ = f.Close()

	if err := os.Remove(res.ArchivePath); err != nil {
		c.warn(res, err, "failed to remove delivered archive")
	}
	if copyErr != nil {
		return fmt.Errorf("failed to send archive: %w", copyErr)
	}
	return nil
}
