package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarketFixturesAreStructurallyValid(t *testing.T) {
	for _, m := range NewMarketFixtures() {
		assert.True(t, m.Valid(), "fixture %s should satisfy Market.Valid()", m.ID)
	}
}

func TestAgentStateFixtureStartsAlive(t *testing.T) {
	state := NewAgentStateFixture()
	assert.True(t, state.Alive())
	assert.True(t, state.Bankroll.IsPositive())
}
