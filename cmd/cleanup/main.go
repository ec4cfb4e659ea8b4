package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KeithDimech1/Thermo-App-sub001/config"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/database"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/storage"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/repository"
)

var (
	dryRun        = flag.Bool("dry-run", true, "Dry run mode, don't actually delete files")
	sessionExpire = flag.Int("session-expire", 24, "Hours to keep session working directories")
	cleanOrphans  = flag.Bool("clean-orphans", true, "Clean temp directories with no session row")
	cleanBlobs    = flag.Bool("clean-blobs", true, "Delete expired sessions' table CSVs from the blob store")
)

func main() {
	flag.Parse()

	log.Println("🧹 Starting cleanup task...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sessions := repository.NewSessionRepository(db)
	tables := repository.NewExtractedTableRepository(db)

	var store storage.Store
	if cfg.Storage.Endpoint != "" {
		store, err = storage.NewClient(&cfg.Storage)
	} else {
		store, err = storage.NewLocalStore(cfg.Storage.LocalDir)
	}
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}

	tempDir := cfg.Upload.TempDir
	cutoff := time.Now().Add(-time.Duration(*sessionExpire) * time.Hour)

	deletedSize := int64(0)
	deletedDirs := 0

	// 1. Working directories of sessions past the retention window.
	log.Printf("\n📦 Cleaning session directories older than %d hours...", *sessionExpire)
	expired, err := sessions.ListOlderThan(cutoff)
	if err != nil {
		log.Fatalf("Failed to list expired sessions: %v", err)
	}

	known := make(map[string]bool, len(expired))
	for _, session := range expired {
		known[session.SessionID] = true
		dirPath := filepath.Join(tempDir, session.SessionID)
		info, err := os.Stat(dirPath)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			log.Printf("  ⚠️  Failed to stat %s: %v", session.SessionID, err)
			continue
		}

		size := getDirSize(dirPath)
		log.Printf("  - %s (state=%s, %.2f MB, %s old)",
			session.SessionID,
			session.State,
			float64(size)/1024/1024,
			time.Since(info.ModTime()).Round(time.Hour))

		if !*dryRun {
			if err := os.RemoveAll(dirPath); err != nil {
				log.Printf("    ❌ Failed to delete: %v", err)
				continue
			}
		}
		deletedSize += size
		deletedDirs++
	}

	// 2. Table CSV blobs of those sessions. Imported copies live under the
	// dataset prefix and are not touched.
	deletedBlobs := 0
	if *cleanBlobs {
		log.Println("\n📦 Cleaning extracted table blobs of expired sessions...")
		deletedBlobs = cleanSessionBlobs(store, tables, expired, *dryRun)
	}

	// 3. Directories left behind with no session row at all.
	if *cleanOrphans {
		log.Println("\n🗑  Cleaning orphan temp directories...")
		size, count := cleanOrphanDirs(tempDir, cutoff, known, *dryRun)
		deletedSize += size
		deletedDirs += count
	}

	totalSize := int64(0)
	totalFiles := 0
	filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			totalSize += info.Size()
			totalFiles++
		}
		return nil
	})

	log.Println("\n" + strings.Repeat("=", 60))
	log.Println("📊 Cleanup Summary")
	log.Println(strings.Repeat("=", 60))
	log.Printf("Remaining files: %d (%s)", totalFiles, formatSize(totalSize))
	log.Printf("Deleted directories: %d", deletedDirs)
	log.Printf("Deleted blobs: %d", deletedBlobs)
	log.Printf("Freed space: %s", formatSize(deletedSize))
	if *dryRun {
		log.Println("\n⚠️  DRY RUN MODE - No files were actually deleted")
		log.Println("   Run with -dry-run=false to actually delete files")
	} else {
		log.Println("\n✅ Cleanup completed!")
	}
	log.Println(strings.Repeat("=", 60))
}

// cleanSessionBlobs deletes the extracted-table CSVs of the given sessions
// from the blob store and returns how many it deleted (or would delete, in
// dry-run mode).
func cleanSessionBlobs(store storage.Store, tables *repository.ExtractedTableRepository, expired []*model.ExtractionSession, dryRun bool) int {
	deleted := 0
	for _, session := range expired {
		rows, err := tables.ListBySession(session.SessionID)
		if err != nil {
			log.Printf("  ⚠️  Failed to list tables for %s: %v", session.SessionID, err)
			continue
		}
		for _, row := range rows {
			log.Printf("  - %s", row.CSVPath)
			if !dryRun {
				if err := store.Delete(row.CSVPath); err != nil {
					log.Printf("    ❌ Failed to delete blob: %v", err)
					continue
				}
			}
			deleted++
		}
	}
	return deleted
}

// cleanOrphanDirs removes old directories under tempDir whose name is not a
// known expired session. Directories newer than the cutoff are kept, since a
// live session may still be writing into them.
func cleanOrphanDirs(tempDir string, cutoff time.Time, known map[string]bool, dryRun bool) (int64, int) {
	var totalSize int64
	var count int

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		log.Printf("Failed to read temp dir: %v", err)
		return 0, 0
	}

	for _, entry := range entries {
		if !entry.IsDir() || known[entry.Name()] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		dirPath := filepath.Join(tempDir, entry.Name())
		size := getDirSize(dirPath)

		log.Printf("  - %s (%.2f MB, %s old)",
			entry.Name(),
			float64(size)/1024/1024,
			time.Since(info.ModTime()).Round(time.Hour))

		if !dryRun {
			if err := os.RemoveAll(dirPath); err != nil {
				log.Printf("    ❌ Failed to delete: %v", err)
				continue
			}
		}
		totalSize += size
		count++
	}

	return totalSize, count
}

// getDirSize walks a directory and sums file sizes.
func getDirSize(path string) int64 {
	var size int64
	filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size
}

// formatSize renders a byte count for logs.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
