package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/common"
	"github.com/ternarybob/scientia/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db        *BadgerDB
	cache     interfaces.CacheStorage
	knowledge interfaces.KnowledgeStorage
	logger    arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:        db,
		cache:     NewCacheStorage(db, logger),
		knowledge: NewKnowledgeStorage(db, logger),
		logger:    logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// CacheStorage returns the semantic cache storage interface
func (m *Manager) CacheStorage() interfaces.CacheStorage {
	return m.cache
}

// KnowledgeStorage returns the knowledge base storage interface
func (m *Manager) KnowledgeStorage() interfaces.KnowledgeStorage {
	return m.knowledge
}

// Close closes the underlying database connection
func (m *Manager) Close() error {
	return m.db.Close()
}
