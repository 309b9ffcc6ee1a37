// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/deptclassify/internal/cache"
	"github.com/tomtom215/deptclassify/internal/classify/tfidf"
)

const (
	// DirPrefix is prepended to a version to form its directory name.
	DirPrefix = "model_"

	// VersionLayout is the time layout of auto-generated versions. It sorts
	// lexicographically in creation order at second granularity.
	VersionLayout = "20060102_150405"

	modelFileName    = "tfidf_vectorizer.bin"
	versionFileName  = "version.txt"
	metadataFileName = "metadata.json"

	// metadataCacheSize bounds the parsed metadata kept for List.
	metadataCacheSize = 256

	// stagingPrefix marks in-progress writes. It does not start with
	// DirPrefix, so scan never lists them.
	stagingPrefix = ".staging-"

	// maxVersionSuffix bounds the search for a free generated version.
	maxVersionSuffix = 99
)

var (
	// ErrNotFound is returned when no stored version matches a load request.
	ErrNotFound = errors.New("model version not found")

	// ErrInvalidVersion is returned for version strings that cannot name a
	// directory under the store root.
	ErrInvalidVersion = errors.New("invalid model version")
)

// LoadError reports a version directory that exists but cannot be read back.
type LoadError struct {
	Version string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model %s: %v", e.Version, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Metadata describes one stored model version.
type Metadata struct {
	Version            string    `json:"version"`
	TrainedAt          time.Time `json:"trained_at"`
	SavedAt            time.Time `json:"saved_at"`
	DocumentCount      int       `json:"document_count"`
	Dimension          int       `json:"dimension"`
	Checksum           string    `json:"checksum"`
	Codec              Codec     `json:"codec"`
	SizeBytes          int64     `json:"size_bytes"`
	TrainingDurationMS int64     `json:"training_duration_ms"`
}

// storedFile is the gob envelope written to the model blob.
type storedFile struct {
	Metadata Metadata
	Codec    Codec
	Payload  []byte
}

// Store persists fitted vectorizers as versioned directories:
//
//	<root>/model_<version>/tfidf_vectorizer.bin
//	<root>/model_<version>/version.txt
//	<root>/model_<version>/metadata.json
//
// It is safe for concurrent use. Parsed metadata is cached per version and
// dropped when the version is replaced or deleted.
type Store struct {
	root  string
	codec Codec
	now   func() time.Time
	mu    sync.RWMutex
	meta  *cache.LRU[string, Metadata]
}

// NewStore opens a store rooted at dir, creating the directory if needed.
func NewStore(dir string, codec Codec) (*Store, error) {
	if dir == "" {
		return nil, errors.New("model directory is required")
	}
	if codec == "" {
		codec = CodecZstd
	}
	if _, err := ParseCodec(string(codec)); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create model directory: %w", err)
	}
	return &Store{
		root:  dir,
		codec: codec,
		now:   time.Now,
		meta:  cache.NewLRU[string, Metadata](metadataCacheSize, 0),
	}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// ValidateVersion rejects versions that are empty or could escape the root.
func ValidateVersion(version string) error {
	switch {
	case version == "", version == ".", version == "..":
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	case strings.ContainsAny(version, `/\`), strings.ContainsRune(version, 0):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidVersion, version)
	}
	return nil
}

// NewVersion returns a version string derived from the store clock.
func (s *Store) NewVersion() string {
	return s.now().Format(VersionLayout)
}

// Save writes state under version, generating one from the wall clock when
// version is empty, and returns the version used.
//
// The files are written to a staging directory that scan ignores and then
// renamed to model_<version> in one step, so readers never see a partially
// written version. A generated version that is already taken gets a numeric
// suffix (20261019_120000_1); an explicit version replaces the stored one.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, version string, state tfidf.ModelState, meta Metadata) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	generated := version == ""
	if generated {
		version = s.NewVersion()
	}
	if err := ValidateVersion(version); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(state); err != nil {
		return "", fmt.Errorf("encode model: %w", err)
	}
	sum := sha256.Sum256(raw.Bytes())

	payload, err := s.codec.compress(raw.Bytes())
	if err != nil {
		return "", err
	}

	meta.Checksum = hex.EncodeToString(sum[:])
	meta.Codec = s.codec
	meta.SizeBytes = int64(len(payload))
	meta.SavedAt = s.now()
	if meta.Dimension == 0 {
		meta.Dimension = len(state.Vocabulary)
	}

	base := version
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			if attempt > maxVersionSuffix {
				return "", fmt.Errorf("no free version for %s after %d attempts", base, maxVersionSuffix)
			}
			version = fmt.Sprintf("%s_%d", base, attempt)
		}
		if generated && s.exists(version) {
			continue
		}

		meta.Version = version
		err := s.publish(version, meta, payload, !generated)
		if generated && errors.Is(err, fs.ErrExist) {
			// Another process took the name between exists and rename.
			continue
		}
		if err != nil {
			return "", err
		}
		s.meta.Add(version, meta)
		return version, nil
	}
}

// publish stages the three files of a version and renames the staging
// directory into place. With replace set, an existing version directory is
// moved aside first and removed afterwards; otherwise an existing non-empty
// directory fails the rename with an error matching fs.ErrExist.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) publish(version string, meta Metadata, payload []byte, replace bool) error {
	var blob bytes.Buffer
	if err := gob.NewEncoder(&blob).Encode(storedFile{Metadata: meta, Codec: s.codec, Payload: payload}); err != nil {
		return fmt.Errorf("encode model file: %w", err)
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	staging, err := os.MkdirTemp(s.root, stagingPrefix+version+"-")
	if err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging) //nolint:errcheck // gone after a successful rename

	if err := writeFileAtomic(filepath.Join(staging, modelFileName), blob.Bytes()); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(staging, metadataFileName), metaJSON); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(staging, versionFileName), []byte(version)); err != nil {
		return fmt.Errorf("write version file: %w", err)
	}
	if err := os.Chmod(staging, 0o750); err != nil {
		return fmt.Errorf("chmod staging directory: %w", err)
	}

	target := s.versionDir(version)
	var replaced string
	if replace && s.exists(version) {
		// Renaming onto an empty directory is allowed, so the old version
		// swaps into a fresh empty one.
		replaced, err = os.MkdirTemp(s.root, stagingPrefix+"replaced-"+version+"-")
		if err != nil {
			return fmt.Errorf("create replace directory: %w", err)
		}
		if err := os.Rename(target, replaced); err != nil {
			_ = os.Remove(replaced) //nolint:errcheck // best-effort cleanup
			return fmt.Errorf("move old version aside: %w", err)
		}
		defer os.RemoveAll(replaced) //nolint:errcheck // best-effort cleanup
	}

	if err := os.Rename(staging, target); err != nil {
		if replaced != "" {
			_ = os.Rename(replaced, target) //nolint:errcheck // restore the old version
		}
		return fmt.Errorf("publish version %s: %w", version, err)
	}
	s.meta.Remove(version)
	return nil
}

// Sealed reports whether version has its version.txt, the last file Save
// writes. A directory without it is still being written by some other
// writer or was left behind by a crash.
func (s *Store) Sealed(version string) bool {
	if ValidateVersion(version) != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(s.versionDir(version), versionFileName))
	return err == nil && info.Mode().IsRegular()
}

// exists reports whether a version directory is present.
func (s *Store) exists(version string) bool {
	info, err := os.Stat(s.versionDir(version))
	return err == nil && info.IsDir()
}

// Load reads a stored model. An empty version selects the lexicographically
// greatest version directory. ErrNotFound is returned when nothing matches;
// a matching directory that cannot be decoded yields a *LoadError.
func (s *Store) Load(ctx context.Context, version string) (tfidf.ModelState, *Metadata, string, error) {
	var state tfidf.ModelState
	if err := ctx.Err(); err != nil {
		return state, nil, "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var dirName string
	if version == "" {
		versions, err := s.scan()
		if err != nil {
			return state, nil, "", err
		}
		if len(versions) == 0 {
			return state, nil, "", ErrNotFound
		}
		dirName = DirPrefix + versions[len(versions)-1]
	} else {
		if err := ValidateVersion(version); err != nil {
			return state, nil, "", err
		}
		dirName = DirPrefix + version
	}

	dir := filepath.Join(s.root, dirName)
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) || (err == nil && !info.IsDir()) {
		return state, nil, "", fmt.Errorf("%w: %s", ErrNotFound, strings.TrimPrefix(dirName, DirPrefix))
	}
	if err != nil {
		return state, nil, "", fmt.Errorf("stat version directory: %w", err)
	}

	resolved := readVersionFile(dir, strings.TrimPrefix(dirName, DirPrefix))

	meta, err := readModelFile(filepath.Join(dir, modelFileName), &state)
	if err != nil {
		return tfidf.ModelState{}, nil, "", &LoadError{Version: resolved, Err: err}
	}
	meta.Version = resolved
	return state, meta, resolved, nil
}

// Versions returns all stored versions in ascending order.
func (s *Store) Versions() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scan()
}

// Latest returns the greatest stored version, if any.
func (s *Store) Latest() (string, bool, error) {
	versions, err := s.Versions()
	if err != nil || len(versions) == 0 {
		return "", false, err
	}
	return versions[len(versions)-1], true, nil
}

// List returns metadata for every stored version, newest first. Versions
// whose metadata cannot be read are listed with the version field only.
func (s *Store) List(ctx context.Context) ([]Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	versions, err := s.scan()
	if err != nil {
		return nil, err
	}

	out := make([]Metadata, 0, len(versions))
	for i := len(versions) - 1; i >= 0; i-- {
		out = append(out, s.metadata(versions[i]))
	}
	return out, nil
}

// metadata returns the cached or on-disk metadata of version. Unreadable
// metadata yields the bare version and is not cached, so a later repair is
// picked up.
func (s *Store) metadata(version string) Metadata {
	if meta, ok := s.meta.Get(version); ok {
		return meta
	}

	meta := Metadata{Version: version}
	data, err := os.ReadFile(filepath.Join(s.versionDir(version), metadataFileName)) //nolint:gosec // path built from scanned directory names
	if err != nil {
		return meta
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{Version: version}
	}
	meta.Version = version
	s.meta.Add(version, meta)
	return meta
}

// Delete removes one stored version.
func (s *Store) Delete(ctx context.Context, version string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateVersion(version); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.versionDir(version)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, version)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("delete model: %w", err)
	}
	s.meta.Remove(version)
	return nil
}

// Prune removes all but the newest keep versions and returns the versions
// it removed. keep values below one are treated as one.
func (s *Store) Prune(ctx context.Context, keep int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if keep < 1 {
		keep = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	versions, err := s.scan()
	if err != nil {
		return nil, err
	}
	if len(versions) <= keep {
		return nil, nil
	}

	stale := versions[:len(versions)-keep]
	removed := make([]string, 0, len(stale))
	for _, v := range stale {
		if err := os.RemoveAll(s.versionDir(v)); err != nil {
			return removed, fmt.Errorf("prune model %s: %w", v, err)
		}
		s.meta.Remove(v)
		removed = append(removed, v)
	}
	return removed, nil
}

// scan lists version names of model_* directories in ascending order.
// Callers must hold mu.
func (s *Store) scan() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read model directory: %w", err)
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), DirPrefix) {
			continue
		}
		versions = append(versions, strings.TrimPrefix(entry.Name(), DirPrefix))
	}
	sort.Strings(versions)
	return versions, nil
}

func (s *Store) versionDir(version string) string {
	return filepath.Join(s.root, DirPrefix+version)
}

// readVersionFile returns the bare version recorded in dir, or fallback when
// the file is missing or empty.
func readVersionFile(dir, fallback string) string {
	data, err := os.ReadFile(filepath.Join(dir, versionFileName)) //nolint:gosec // dir is under the store root
	if err != nil {
		return fallback
	}
	if v := strings.TrimSpace(string(data)); v != "" {
		return v
	}
	return fallback
}

func readModelFile(path string, target *tfidf.ModelState) (*Metadata, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is under the store root
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	var sf storedFile
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode model file: %w", err)
	}

	raw, err := sf.Codec.decompress(sf.Payload)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(sum[:]); checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &sf.Metadata, nil
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) } //nolint:errcheck // best-effort cleanup

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error takes precedence
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close() //nolint:errcheck // sync error takes precedence
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
