package contracts

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/config"
)

const tokenArtifact = `{
	"abi": [{"type":"function","name":"mint","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable"}],
	"bytecode": {"object": "0x6080604052", "linkReferences": {}}
}`

func writeArtifact(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	root := t.TempDir()
	repo := NewRepository(&config.RuntimeConfig{ProjectRoot: root, ArtifactsDir: "out"}, slog.New(slog.DiscardHandler))
	return repo, filepath.Join(root, "out")
}

func TestRepository_GetArtifact(t *testing.T) {
	ctx := context.Background()

	t.Run("loads the foundry layout", func(t *testing.T) {
		repo, out := newTestRepository(t)
		writeArtifact(t, out, "MythsToken.sol/MythsToken.json", tokenArtifact)

		artifact, err := repo.GetArtifact(ctx, "MythsToken")
		require.NoError(t, err)
		assert.Equal(t, "MythsToken", artifact.Name)
		assert.Equal(t, filepath.Join(out, "MythsToken.sol", "MythsToken.json"), artifact.Path)
		assert.Contains(t, artifact.ABI.Methods, "mint")

		again, err := repo.GetArtifact(ctx, "MythsToken")
		require.NoError(t, err)
		assert.Same(t, artifact, again)
	})

	t.Run("finds contracts declared in another source file", func(t *testing.T) {
		repo, out := newTestRepository(t)
		writeArtifact(t, out, "governance/MythsDAOProxy.sol/MythsDAOProxy.json", tokenArtifact)
		writeArtifact(t, out, "build-info/MythsDAOProxy.json", `not json`)

		artifact, err := repo.GetArtifact(ctx, "MythsDAOProxy")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(out, "governance", "MythsDAOProxy.sol", "MythsDAOProxy.json"), artifact.Path)
	})

	t.Run("suggests close names", func(t *testing.T) {
		repo, out := newTestRepository(t)
		writeArtifact(t, out, "MythsToken.sol/MythsToken.json", tokenArtifact)
		writeArtifact(t, out, "MythsSeeder.sol/MythsSeeder.json", tokenArtifact)

		_, err := repo.GetArtifact(ctx, "MythToken")
		require.ErrorIs(t, err, domain.ErrNotFound)

		var notFound domain.ArtifactNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "MythToken", notFound.Name)
		assert.Contains(t, notFound.Suggestions, "MythsToken")
	})

	t.Run("missing build output", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		_, err := repo.GetArtifact(ctx, "MythsToken")
		assert.ErrorContains(t, err, "run forge build first")
	})

	t.Run("malformed artifacts", func(t *testing.T) {
		repo, out := newTestRepository(t)
		writeArtifact(t, out, "Broken.sol/Broken.json", `{"abi": "nope"}`)
		_, err := repo.GetArtifact(ctx, "Broken")
		assert.ErrorContains(t, err, "Broken")
	})
}
