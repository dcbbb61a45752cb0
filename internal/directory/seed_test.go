package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/partner-hub/internal/config"
	"github.com/spec-kit/partner-hub/internal/domain"
)

func TestSeedDefaultFixture(t *testing.T) {
	seed := SeedDefault()
	require.Len(t, seed, 2)

	assert.Equal(t, "biz-fitness", seed[0].ID)
	assert.Equal(t, domain.VerticalFitness, seed[0].Vertical)
	assert.Equal(t, "biz-gastro", seed[1].ID)

	for _, entity := range seed {
		member, ok := entity.FindMember("u1")
		require.True(t, ok)
		assert.Equal(t, domain.RoleOwner, member.Role)
		assert.Equal(t, domain.MemberStatusActive, member.Status)
	}
}

func TestLoadSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	payload := `[
		{
			"id": "biz-cafe",
			"name": "Kaviaren",
			"vertical": "gastro",
			"city": "Bratislava",
			"members": [
				{"user_id": "u9", "name": "Jana", "email": "jana@x.sk", "role": "owner", "status": "active"},
				{"user_id": "u10", "name": "Peter", "email": "peter@x.sk", "role": "staff"}
			]
		}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed, 1)

	assert.Equal(t, "biz-cafe", seed[0].ID)
	assert.Equal(t, domain.VerticalGastro, seed[0].Vertical)
	require.Len(t, seed[0].Members, 2)

	member, ok := seed[0].FindMember("u10")
	require.True(t, ok)
	assert.Equal(t, domain.MemberStatusActive, member.Status, "omitted status defaults to active")
}

func TestLoadSeedErrors(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err = LoadSeed(path)
	assert.Error(t, err)
}

func TestSeedFromConfigFallsBackToDefault(t *testing.T) {
	seed, err := SeedFromConfig(config.DirectoryConfig{})
	require.NoError(t, err)
	assert.Equal(t, SeedDefault(), seed)
}
