// Package backup implements the optional S3/R2 archive-and-upload backup
// of ORACLE's persisted state (AgentState file + decision log database):
// archive, checksum, upload.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Config configures the optional backup destination. Endpoint empty
// means real AWS S3; set it for an R2/S3-compatible endpoint.
type Config struct {
	Enabled         bool
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	StagingDir      string
}

// Service archives the configured source files and uploads the archive to
// the configured bucket.
type Service struct {
	cfg      Config
	uploader *manager.Uploader
	log      zerolog.Logger
}

// New builds a Service from cfg. Returns an error only on malformed AWS
// configuration; a disabled cfg still builds successfully so callers can
// treat Backup as a no-op without branching.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Service, error) {
	svc := &Service{cfg: cfg, log: log.With().Str("component", "backup").Logger()}
	if !cfg.Enabled {
		return svc, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("backup: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	svc.uploader = manager.NewUploader(client)

	return svc, nil
}

// sourceFile is one file included in the backup archive, with its
// destination name inside the tarball.
type sourceFile struct {
	path string
	name string
}

// Backup archives statePath and decisionLogPath (if either exists) and
// uploads the resulting tar.gz to the configured bucket, named by
// timestamp. A disabled Service is a no-op.
func (s *Service) Backup(ctx context.Context, statePath, decisionLogPath string) error {
	if !s.cfg.Enabled {
		return nil
	}

	sources := []sourceFile{}
	if _, err := os.Stat(statePath); err == nil {
		sources = append(sources, sourceFile{path: statePath, name: "agent_state.json"})
	}
	if _, err := os.Stat(decisionLogPath); err == nil {
		sources = append(sources, sourceFile{path: decisionLogPath, name: "decisions.db"})
	}
	if len(sources) == 0 {
		return nil
	}

	stagingDir := s.cfg.StagingDir
	if stagingDir == "" {
		stagingDir = os.TempDir()
	}
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return fmt.Errorf("backup: create staging dir: %w", err)
	}

	timestamp := time.Now().UTC().Format("20060102-150405")
	archiveName := fmt.Sprintf("oracle-backup-%s.tar.gz", timestamp)
	archivePath := filepath.Join(stagingDir, archiveName)

	checksum, err := s.writeArchive(archivePath, sources)
	if err != nil {
		return fmt.Errorf("backup: write archive: %w", err)
	}
	defer os.Remove(archivePath)

	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("backup: open archive: %w", err)
	}
	defer archiveFile.Close()

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(archiveName),
		Body:   archiveFile,
	})
	if err != nil {
		return fmt.Errorf("backup: upload to bucket %s: %w", s.cfg.Bucket, err)
	}

	s.log.Info().Str("archive", archiveName).Str("checksum", checksum).Msg("backup uploaded")
	return nil
}

func (s *Service) writeArchive(archivePath string, sources []sourceFile) (string, error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	hasher := sha256.New()
	gz := gzip.NewWriter(io.MultiWriter(out, hasher))
	tw := tar.NewWriter(gz)

	for _, src := range sources {
		if err := addFileToArchive(tw, src); err != nil {
			return "", err
		}
	}

	if err := tw.Close(); err != nil {
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func addFileToArchive(tw *tar.Writer, src sourceFile) error {
	f, err := os.Open(src.path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	if err := tw.WriteHeader(&tar.Header{Name: src.name, Size: info.Size(), Mode: 0o600}); err != nil {
		return err
	}

	_, err = io.Copy(tw, f)
	return err
}
