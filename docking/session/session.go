package session

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/byte4ever/rules_plants/docking/digester"
	"github.com/byte4ever/rules_plants/docking/exec"
	"github.com/byte4ever/rules_plants/docking/ligand"
	"github.com/byte4ever/rules_plants/docking/results"
	"github.com/byte4ever/rules_plants/docking/stager"
	"github.com/byte4ever/rules_plants/preset"
	"github.com/byte4ever/rules_plants/templating"
)

var (
	// ErrNoRenderer is returned by New without a renderer.
	ErrNoRenderer = errors.New("no config renderer")

	// ErrNoEngine is returned by Run when no engine path is
	// configured.
	ErrNoEngine = errors.New("no engine path configured")

	// ErrNotPrepared is returned by Run before Prepare
	// succeeded.
	ErrNotPrepared = errors.New("session not prepared")
)

// LigandMerger combines ligand files into one engine input.
type LigandMerger interface {
	Merge(ligands []string, baseName string, format string) (string, error)
}

// FileStager copies a file into a directory.
type FileStager interface {
	Copy(src string, dstDir string) error
}

// ResultCollector lists result files matching a glob.
type ResultCollector interface {
	FindByPattern(pattern string) (iter.Seq[string], error)
}

// Runner invokes an external command once.
type Runner interface {
	Run(
		ctx context.Context,
		dir string,
		name string,
		arg ...string,
	) (string, error)
}

// Config holds all settings for a docking session. Zero
// fields take the defaults noted on each.
type Config struct {
	// EnginePath is the PLANTS binary name or path.
	EnginePath string

	// EngineArgs precede the config file name on the
	// engine command line. Default "--mode screen".
	EngineArgs []string

	// WorkDir receives the config, the merged ligands and
	// the staged protein; the engine runs there. Default ".".
	WorkDir string

	// ConfigName is the config file name. Default
	// "plants.conf".
	ConfigName string

	// LigandBaseName names the merged ligand file without
	// extension. Default "molecule".
	LigandBaseName string

	// LigandFormat is the merged ligand format. Default
	// "mol2".
	LigandFormat string

	// ResultPattern selects result files in WorkDir.
	// Default "*_entry_*.mol2".
	ResultPattern string

	Merger    LigandMerger
	Stager    FileStager
	Collector ResultCollector
	Runner    Runner
}

func (cfg Config) withDefaults() Config {
	if cfg.EngineArgs == nil {
		cfg.EngineArgs = []string{"--mode", "screen"}
	}

	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}

	if cfg.ConfigName == "" {
		cfg.ConfigName = "plants.conf"
	}

	if cfg.LigandBaseName == "" {
		cfg.LigandBaseName = "molecule"
	}

	if cfg.LigandFormat == "" {
		cfg.LigandFormat = ligand.FormatMol2
	}

	if cfg.ResultPattern == "" {
		cfg.ResultPattern = results.DefaultPattern
	}

	if cfg.Merger == nil {
		cfg.Merger = ligand.Mol2Merger{Dir: cfg.WorkDir}
	}

	if cfg.Stager == nil {
		cfg.Stager = stager.Local{}
	}

	if cfg.Collector == nil {
		cfg.Collector = results.Collector{Dir: cfg.WorkDir}
	}

	return cfg
}

// Session is a single docking run. It renders the custom
// preset of its renderer's store.
type Session struct {
	cfg      Config
	renderer *templating.Renderer
	runID    string
	digest   string
	prepared bool
}

// New returns a session with a fresh run id.
func New(cfg Config, renderer *templating.Renderer) (*Session, error) {
	if renderer == nil {
		return nil, fmt.Errorf("creating session: %w", ErrNoRenderer)
	}

	runID := uuid.NewString()

	cfg = cfg.withDefaults()
	if cfg.Runner == nil {
		cfg.Runner = exec.Local{Logger: slog.With("run", runID)}
	}

	return &Session{
		cfg:      cfg,
		renderer: renderer,
		runID:    runID,
	}, nil
}

// RunID identifies the session.
func (se *Session) RunID() string {
	return se.runID
}

// ConfigPath returns where the rendered config is written.
func (se *Session) ConfigPath() string {
	return filepath.Join(se.cfg.WorkDir, se.cfg.ConfigName)
}

// Prepare merges the ligands, points the custom preset at
// the merged ligand and the protein, writes the config and
// its digest, and stages the protein next to it.
func (se *Session) Prepare(ligands []string, protein string) error {
	const errCtx = "preparing session"

	if err := os.MkdirAll(se.cfg.WorkDir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	merged, err := se.cfg.Merger.Merge(
		ligands, se.cfg.LigandBaseName, se.cfg.LigandFormat,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"merged ligands",
		"run", se.runID,
		"count", len(ligands),
		"file", merged,
	)

	store := se.renderer.Store()
	store.SetValue(preset.KeyLigand, preset.String(filepath.Base(merged)))
	store.SetValue(preset.KeyProtein, preset.String(filepath.Base(protein)))

	configPath := se.ConfigPath()

	if err := se.renderer.WriteFile(preset.Custom, configPath); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	digest, err := digester.Save(configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"wrote config",
		"run", se.runID,
		"file", configPath,
		"digest", digest,
	)

	if err := se.cfg.Stager.Copy(protein, se.cfg.WorkDir); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"staged protein",
		"run", se.runID,
		"file", protein,
	)

	se.digest = digest
	se.prepared = true

	return nil
}

// Run invokes the engine once in the work directory. The
// config must still match the digest Prepare recorded.
func (se *Session) Run(ctx context.Context) error {
	const errCtx = "running session"

	if !se.prepared {
		return fmt.Errorf("%s: %w", errCtx, ErrNotPrepared)
	}

	if se.cfg.EnginePath == "" {
		return fmt.Errorf("%s: %w", errCtx, ErrNoEngine)
	}

	if err := digester.Verify(se.ConfigPath()); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	args := append(slices.Clone(se.cfg.EngineArgs), se.cfg.ConfigName)

	if _, err := se.cfg.Runner.Run(
		ctx, se.cfg.WorkDir, se.cfg.EnginePath, args...,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Solutions returns the result files of the run. The
// sequence may be ranged over more than once.
func (se *Session) Solutions() (iter.Seq[string], error) {
	seq, err := se.cfg.Collector.FindByPattern(se.cfg.ResultPattern)
	if err != nil {
		return nil, fmt.Errorf("collecting solutions: %w", err)
	}

	return seq, nil
}

// Manifest summarizes a session for later inspection.
type Manifest struct {
	RunID        string            `json:"run_id"`
	WorkDir      string            `json:"work_dir"`
	ConfigPath   string            `json:"config_path"`
	ConfigDigest string            `json:"config_digest"`
	Parameters   map[string]string `json:"parameters"`
	Solutions    []string          `json:"solutions"`
}

// Manifest returns the current summary of the session,
// listing the solutions found so far.
func (se *Session) Manifest() (Manifest, error) {
	const errCtx = "building manifest"

	params, err := se.renderer.Store().Get(preset.Custom)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	seq, err := se.Solutions()
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	mf := Manifest{
		RunID:        se.runID,
		WorkDir:      se.cfg.WorkDir,
		ConfigPath:   se.ConfigPath(),
		ConfigDigest: se.digest,
		Parameters:   make(map[string]string, len(params)),
		Solutions:    slices.AppendSeq([]string{}, seq),
	}

	for key, val := range params {
		mf.Parameters[key] = val.String()
	}

	return mf, nil
}

// WriteManifest writes the manifest as indented JSON.
func (se *Session) WriteManifest(path string) error {
	const errCtx = "writing manifest"

	mf, err := se.Manifest()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	by, err := json.MarshalIndent(mf, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.WriteFile( //nolint:gosec // path from caller
		path, append(by, '\n'), 0o666,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
