// Package corpus reads the plain-text documents that feed the per-language
// retrieval indexes.
//
// On-disk layout:
//
//	<root>/
//	  common/   shared documents, indexed for every language
//	  pt/       Portuguese-only documents
//	  en/       English-only documents
//	  ...
//
// Unreadable files and missing directories are skipped: a partially
// available corpus degrades retrieval quality, never availability.
package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/54b3r/vincula-go/internal/logging"
)

// DefaultSharedDir is the subdirectory whose documents are indexed for every
// language.
const DefaultSharedDir = "common"

// DefaultExtensions lists the file extensions accepted as documents.
var DefaultExtensions = []string{".txt", ".md"}

// Document is a single source file loaded from the corpus.
type Document struct {
	// Source identifies the originating file as "<subdir>/<name>".
	Source string
	// Text is the raw file content.
	Text string
}

// Config describes where the corpus lives and which files qualify.
type Config struct {
	// Root is the corpus root directory.
	Root string
	// SharedDir is the shared-language subdirectory (default: common).
	SharedDir string
	// Extensions lists accepted file extensions, compared case-insensitively.
	Extensions []string
}

// Loader reads documents for a language from the configured root.
// It holds no mutable state and is safe for concurrent use.
type Loader struct {
	cfg Config
}

// NewLoader constructs a Loader, filling unset fields with defaults.
func NewLoader(cfg Config) (*Loader, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("corpus: root directory must not be empty")
	}
	if cfg.SharedDir == "" {
		cfg.SharedDir = DefaultSharedDir
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}
	exts := make([]string, 0, len(cfg.Extensions))
	for _, e := range cfg.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	cfg.Extensions = exts
	return &Loader{cfg: cfg}, nil
}

// Root returns the configured corpus root.
func (l *Loader) Root() string { return l.cfg.Root }

// Load returns the shared documents followed by the documents of language.
// Files within each directory are returned in name order.
func (l *Loader) Load(ctx context.Context, language string) []Document {
	log := logging.FromContext(ctx)

	var docs []Document
	for _, sub := range []string{l.cfg.SharedDir, language} {
		docs = append(docs, l.readDir(log, sub)...)
	}
	return docs
}

// readDir loads every accepted file directly under root/sub.
func (l *Loader) readDir(log *slog.Logger, sub string) []Document {
	dir := filepath.Join(l.cfg.Root, sub)
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug("corpus: skipping directory", slog.String("dir", dir), slog.Any("error", err))
		return nil
	}

	docs := make([]Document, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !l.accepts(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Debug("corpus: skipping unreadable file", slog.String("path", path), slog.Any("error", err))
			continue
		}
		docs = append(docs, Document{
			Source: sub + "/" + e.Name(),
			Text:   string(data),
		})
	}
	return docs
}

// accepts reports whether name carries one of the configured extensions.
func (l *Loader) accepts(name string) bool {
	return slices.Contains(l.cfg.Extensions, strings.ToLower(filepath.Ext(name)))
}
