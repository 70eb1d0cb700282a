package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oracle-trading/oracle/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateSeedsFreshStateWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent_state.json")

	store, err := LoadOrCreate(path, func() domain.AgentState {
		return domain.NewAgentState(decimal.NewFromFloat(1000), time.Now())
	})
	require.NoError(t, err)

	assert.True(t, store.Current().Bankroll.Equal(decimal.NewFromFloat(1000)))
	assert.FileExists(t, path)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent_state.json")

	store, err := LoadOrCreate(path, func() domain.AgentState {
		return domain.NewAgentState(decimal.NewFromFloat(1000), time.Now())
	})
	require.NoError(t, err)

	state := store.Current()
	state.Bankroll = decimal.NewFromFloat(1234.56)
	state.CycleCount = 7
	require.NoError(t, store.Save(state))

	reloaded, err := LoadOrCreate(path, func() domain.AgentState {
		t.Fatal("should not seed when file already exists")
		return domain.AgentState{}
	})
	require.NoError(t, err)

	assert.True(t, reloaded.Current().Bankroll.Equal(decimal.NewFromFloat(1234.56)))
	assert.Equal(t, 7, reloaded.Current().CycleCount)
}

func TestLoadOrCreateRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadOrCreate(path, func() domain.AgentState { return domain.AgentState{} })
	assert.Error(t, err)
}
