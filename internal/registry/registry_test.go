package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brickfall/internal/core"
)

type stubGame struct{ id string }

func (s *stubGame) ID() string                           { return s.id }
func (s *stubGame) Title() string                        { return "Stub " + s.id }
func (s *stubGame) Reset(core.RuntimeConfig)             {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubGame) Render(*core.Screen)                  {}
func (s *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub", func() Game { return &stubGame{id: "zz-stub"} })
	Register("aa-stub", func() Game { return &stubGame{id: "aa-stub"} })

	assert.True(t, Exists("zz-stub"))
	assert.False(t, Exists("missing"))

	g, err := Create("aa-stub")
	require.NoError(t, err)
	assert.Equal(t, "aa-stub", g.ID())

	_, err = Create("missing")
	assert.ErrorContains(t, err, `unknown game "missing"`)

	games := List()
	require.GreaterOrEqual(t, len(games), 2)
	assert.Equal(t, GameInfo{ID: "aa-stub", Title: "Stub aa-stub"}, games[0])
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-stub", func() Game { return &stubGame{id: "dup-stub"} })
	assert.Panics(t, func() {
		Register("dup-stub", func() Game { return &stubGame{id: "dup-stub"} })
	})
	assert.Panics(t, func() {
		Register(" ", func() Game { return &stubGame{} })
	})
}
