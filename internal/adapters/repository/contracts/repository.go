package contracts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/config"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

const maxSuggestions = 3

// Repository loads Foundry artifacts from the build output directory
type Repository struct {
	outDir    string
	log       *slog.Logger
	mu        sync.RWMutex
	index     map[string]string // contract name -> artifact path
	artifacts map[string]*models.Artifact
	indexed   bool
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	outDir := cfg.ArtifactsDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(cfg.ProjectRoot, outDir)
	}
	return &Repository{
		outDir:    outDir,
		log:       log.With("component", "ArtifactRepository"),
		index:     make(map[string]string),
		artifacts: make(map[string]*models.Artifact),
	}
}

// GetArtifact returns the parsed artifact of a contract. Foundry's
// out/<Name>.sol/<Name>.json layout is tried first, then the whole tree.
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	r.mu.RLock()
	artifact, ok := r.artifacts[name]
	r.mu.RUnlock()
	if ok {
		return artifact, nil
	}

	path := filepath.Join(r.outDir, name+".sol", name+".json")
	if _, err := os.Stat(path); err != nil {
		if err := r.indexArtifacts(); err != nil {
			return nil, err
		}
		r.mu.RLock()
		indexed, found := r.index[name]
		r.mu.RUnlock()
		if !found {
			return nil, domain.ArtifactNotFoundError{Name: name, Suggestions: r.suggest(name)}
		}
		path = indexed
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	artifact, err = models.ParseArtifact(name, data)
	if err != nil {
		return nil, err
	}
	artifact.Path = path
	r.log.Debug("loaded artifact", "contract", name, "path", path)

	r.mu.Lock()
	r.artifacts[name] = artifact
	r.mu.Unlock()
	return artifact, nil
}

// indexArtifacts walks the output directory once, mapping file names to paths.
func (r *Repository) indexArtifacts() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}
	if _, err := os.Stat(r.outDir); os.IsNotExist(err) {
		return fmt.Errorf("artifacts directory %s not found, run forge build first", r.outDir)
	}

	err := filepath.Walk(r.outDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		if _, exists := r.index[name]; !exists {
			r.index[name] = path
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}
	r.indexed = true
	return nil
}

// suggest returns the closest known contract names.
func (r *Repository) suggest(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.index))
	for known := range r.index {
		names = append(names, known)
	}

	var suggestions []string
	for _, match := range fuzzy.Find(name, names) {
		suggestions = append(suggestions, match.Str)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
