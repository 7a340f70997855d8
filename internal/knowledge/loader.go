// internal/knowledge/loader.go
package knowledge

import (
	"context"

	"chatbot-workers/internal/common/config"
	"chatbot-workers/internal/common/logger"
	"chatbot-workers/internal/engine"
	"chatbot-workers/pkg/kbfile"
)

// Snapshot assembles the knowledge base the engine will be built from, falling
// back source by source: database, then file, then compiled-in defaults. It
// never returns an empty base; a degraded source is logged, not fatal.
func Snapshot(ctx context.Context, cfg config.ChatbotConfig, repo *Repository, log logger.Logger) []engine.KnowledgeEntry {
	if cfg.KnowledgeBaseSource == "postgres" && repo != nil {
		entries, err := repo.List(ctx)
		if err == nil {
			log.Info("knowledge base loaded", map[string]interface{}{
				"source":  "postgres",
				"entries": len(entries),
			})
			return entries
		}
		log.Warn("knowledge base unavailable in postgres, falling back", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if cfg.KnowledgeBasePath != "" {
		f, err := kbfile.Load(cfg.KnowledgeBasePath)
		if err == nil {
			entries := fromFile(f)
			log.Info("knowledge base loaded", map[string]interface{}{
				"source":  "file",
				"path":    cfg.KnowledgeBasePath,
				"entries": len(entries),
			})
			return entries
		}
		log.Warn("knowledge base file unreadable, falling back", map[string]interface{}{
			"path":  cfg.KnowledgeBasePath,
			"error": err.Error(),
		})
	}

	entries := Default()
	log.Info("knowledge base loaded", map[string]interface{}{
		"source":  "default",
		"entries": len(entries),
	})
	return entries
}

func fromFile(f *kbfile.File) []engine.KnowledgeEntry {
	entries := make([]engine.KnowledgeEntry, 0, len(f.Entries))
	for _, e := range f.Entries {
		entries = append(entries, engine.KnowledgeEntry{
			Keywords:         e.Keywords,
			RequiredKeywords: e.RequiredKeywords,
			Category:         engine.Category(e.Category),
			Response:         e.Response,
		})
	}
	return entries
}
