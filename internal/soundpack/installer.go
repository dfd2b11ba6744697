package soundpack

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/keycl/keycl/internal/model"
)

// BinaryFetcher is the slice of the fetch client the installer needs.
type BinaryFetcher interface {
	FetchBinary(ctx context.Context, rawURL, destPath string) error
}

// SoundLibrary is the library surface the installer drives after
// persisting a package.
type SoundLibrary interface {
	Reload() (int, []error)
	Has(name string) bool
}

// Installer persists fetched packages into the sounds directory and
// registers them with the sound library.
type Installer struct {
	dir       string
	fetcher   BinaryFetcher
	library   SoundLibrary
	log       *zap.Logger
	onInstall func(*model.InstalledPackage) // fired when the new sample resolves
}

// NewInstaller creates an installer over the sounds directory.
func NewInstaller(dir string, fetcher BinaryFetcher, library SoundLibrary, log *zap.Logger) *Installer {
	return &Installer{
		dir:     dir,
		fetcher: fetcher,
		library: library,
		log:     log,
	}
}

// SetInstallCallback registers a callback invoked after a successful
// install whose sample resolved in the library under the expected name.
// Callers use it to select the new sound.
func (i *Installer) SetInstallCallback(cb func(*model.InstalledPackage)) {
	i.onInstall = cb
}

// Install validates the descriptor, downloads its payload, writes the
// canonical sidecar, and reloads the library. A package whose sanitized
// title collides with an existing sound overwrites it: last install wins.
func (i *Installer) Install(ctx context.Context, desc model.PackageDescriptor) (*model.InstalledPackage, error) {
	desc.ApplyDefaults()
	desc.SourceURL = strings.TrimSpace(desc.SourceURL)

	if desc.SourceURL == "" {
		return nil, &ValidationError{Reason: "package has no source url"}
	}

	base := SanitizeTitle(desc.Title)
	audioPath := filepath.Join(i.dir, base+PayloadExtension(desc.SourceURL))

	if err := i.fetcher.FetchBinary(ctx, desc.SourceURL, audioPath); err != nil {
		return nil, err
	}

	sidecarPath := filepath.Join(i.dir, base+PackageExtension)
	if err := i.writeSidecar(sidecarPath, desc); err != nil {
		// The payload is already in place; keep the session usable and
		// report the sidecar failure without failing the install.
		i.log.Warn("failed to persist package sidecar",
			zap.String("path", sidecarPath),
			zap.Error(err))
	}

	if _, errs := i.library.Reload(); len(errs) > 0 {
		for _, err := range errs {
			i.log.Warn("reload after install", zap.Error(err))
		}
	}

	pkg := &model.InstalledPackage{
		Name:           base,
		Title:          desc.Title,
		AudioPath:      audioPath,
		DescriptorPath: sidecarPath,
		InstalledAt:    time.Now(),
	}

	i.log.Info("installed sound package",
		zap.String("title", desc.Title),
		zap.String("path", audioPath))

	if i.onInstall != nil && i.library.Has(base) {
		i.onInstall(pkg)
	}
	return pkg, nil
}

// InstallFromText parses descriptor text and installs the result.
func (i *Installer) InstallFromText(ctx context.Context, text string) (*model.InstalledPackage, error) {
	return i.Install(ctx, ParseDescriptor(text))
}

// InstallFromFile reads a local .keyclsound file and installs it.
func (i *Installer) InstallFromFile(ctx context.Context, path string) (*model.InstalledPackage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &PersistenceError{Path: path, Err: err}
	}
	return i.InstallFromText(ctx, string(data))
}

func (i *Installer) writeSidecar(path string, desc model.PackageDescriptor) error {
	data, err := SerializeDescriptor(desc)
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}
