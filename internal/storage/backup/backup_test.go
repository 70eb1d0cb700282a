package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithDisabledConfigSkipsAWSSetup(t *testing.T) {
	svc, err := New(context.Background(), Config{Enabled: false}, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, svc.uploader)
}

func TestBackupWithDisabledConfigIsNoop(t *testing.T) {
	svc, err := New(context.Background(), Config{Enabled: false}, zerolog.Nop())
	require.NoError(t, err)

	err = svc.Backup(context.Background(), "/nonexistent/state.json", "/nonexistent/decisions.db")
	assert.NoError(t, err)
}

func TestBackupWithNoExistingSourceFilesIsNoop(t *testing.T) {
	dir := t.TempDir()
	svc := &Service{cfg: Config{Enabled: true, StagingDir: dir}, log: zerolog.Nop()}

	err := svc.Backup(context.Background(), filepath.Join(dir, "missing_state.json"), filepath.Join(dir, "missing.db"))
	assert.NoError(t, err)
}

func TestWriteArchiveProducesConsistentChecksum(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "agent_state.json")
	require.NoError(t, os.WriteFile(statePath, []byte(`{"bankroll":"100"}`), 0o600))

	svc := &Service{cfg: Config{StagingDir: dir}, log: zerolog.Nop()}
	archivePath := filepath.Join(dir, "archive.tar.gz")

	checksumA, err := svc.writeArchive(archivePath, []sourceFile{{path: statePath, name: "agent_state.json"}})
	require.NoError(t, err)

	checksumB, err := svc.writeArchive(filepath.Join(dir, "archive2.tar.gz"), []sourceFile{{path: statePath, name: "agent_state.json"}})
	require.NoError(t, err)

	assert.Equal(t, checksumA, checksumB)
	assert.NotEmpty(t, checksumA)
}
