package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-items/internal/pkg/idgen"
)

func TestSequential(t *testing.T) {
	gen := idgen.NewSequential("use")
	assert.Equal(t, "use_1", gen.Generate())
	assert.Equal(t, "use_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUID(t *testing.T) {
	id := idgen.NewUUID("use").Generate()
	require.True(t, strings.HasPrefix(id, "use_"))

	_, err := uuid.Parse(strings.TrimPrefix(id, "use_"))
	assert.NoError(t, err)

	assert.NotEqual(t, id, idgen.NewUUID("use").Generate())
}
