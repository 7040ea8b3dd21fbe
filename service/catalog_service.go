package services

import (
	"fmt"

	"tp-server/dao/redis"
	"tp-server/logger"
	"tp-server/util"
)

// CatalogService loads the seed temple catalog into the store.
type CatalogService struct {
	templeDao *redis.RedisTempleDAO
	seedPath  string
}

func NewCatalogService(templeDao *redis.RedisTempleDAO, seedPath string) *CatalogService {
	return &CatalogService{templeDao: templeDao, seedPath: seedPath}
}

// Seed upserts the seed catalog when the store is empty and returns the number
// of temples written.
func (cs *CatalogService) Seed() (int, error) {
	ids, err := cs.templeDao.ListTempleIDs()
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		logger.Info("[CatalogService] Store already has temples, skipping seed", "count", len(ids))
		return 0, nil
	}

	temples, err := util.ReadTemplesFromJSON(cs.seedPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed catalog: %w", err)
	}
	for _, t := range temples {
		if err := t.ToVenue().Validate(); err != nil {
			return 0, fmt.Errorf("seed temple %s: %w", t.ID, err)
		}
		if err := cs.templeDao.UpsertTemple(t); err != nil {
			return 0, err
		}
	}
	logger.Info("[CatalogService] Seeded temple catalog", "count", len(temples), "path", cs.seedPath)
	return len(temples), nil
}
