package graph

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/extract"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// mentionKey identifies one chunk-local mention: mention ids are only
// unique within the chunk that produced them.
type mentionKey struct {
	chunk   int
	mention string
}

// chunkResult pairs a chunk index with its extraction output.
type chunkResult struct {
	index  int
	result *extract.Result
}

// resolveEntities folds chunk-level entity mentions into canonical entities.
// Results are processed in strict chunk-index order so the outcome is
// deterministic regardless of extraction scheduling. Identity is the
// normalized (type, label) pair; properties merge first-write-wins.
//
// The returned mention map translates (chunk, mention id) pairs to canonical
// entity ids for relationship reconciliation.
func resolveEntities(
	results []chunkResult,
	documentID string,
) ([]common.Entity, map[mentionKey]string, error) {
	sorted := make([]chunkResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].index < sorted[j].index })

	entities := make([]common.Entity, 0)
	indexByKey := make(map[string]int)
	mentions := make(map[mentionKey]string)
	now := time.Now().UTC()

	for _, cr := range sorted {
		if cr.result == nil {
			continue
		}
		for _, candidate := range cr.result.Entities {
			label := strings.TrimSpace(candidate.Label)
			if label == "" {
				continue
			}

			entityType := NormalizeType(candidate.Type)
			key := resolutionKey(entityType, label)

			if idx, ok := indexByKey[key]; ok {
				mergeEntityMention(&entities[idx], candidate, cr.index)
				mentions[mentionKey{chunk: cr.index, mention: candidate.Mention}] = entities[idx].ID
				continue
			}

			id, err := gonanoid.New()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to generate ID for entity: %w", err)
			}
			entity := common.Entity{
				ID:         id,
				Type:       entityType,
				Label:      label,
				Properties: common.SanitizeProperties(candidate.Properties),
				Metadata: common.Properties{
					common.MetaMentionCount:     1,
					common.MetaSourceChunks:     []int{cr.index},
					common.MetaSourceDocumentID: documentID,
				},
				CreatedAt: now,
				UpdatedAt: now,
			}

			indexByKey[key] = len(entities)
			entities = append(entities, entity)
			mentions[mentionKey{chunk: cr.index, mention: candidate.Mention}] = id
		}
	}

	return entities, mentions, nil
}

// mergeEntityMention folds a repeated mention into an existing entity.
// Existing property values win; new keys are added. Mention bookkeeping
// is updated in place.
func mergeEntityMention(entity *common.Entity, candidate extract.CandidateEntity, chunkIndex int) {
	entity.Properties = mergeProperties(entity.Properties, common.SanitizeProperties(candidate.Properties))

	if count, ok := entity.Metadata[common.MetaMentionCount].(int); ok {
		entity.Metadata[common.MetaMentionCount] = count + 1
	}
	if chunks, ok := entity.Metadata[common.MetaSourceChunks].([]int); ok {
		seen := false
		for _, c := range chunks {
			if c == chunkIndex {
				seen = true
				break
			}
		}
		if !seen {
			entity.Metadata[common.MetaSourceChunks] = append(chunks, chunkIndex)
		}
	}
}

// mergeProperties unions two property bags with a first-write-wins policy:
// a key already present in base keeps its value.
func mergeProperties(base, incoming common.Properties) common.Properties {
	if len(incoming) == 0 {
		return base
	}
	if base == nil {
		base = make(common.Properties, len(incoming))
	}
	for key, value := range incoming {
		if _, ok := base[key]; ok {
			continue
		}
		base[key] = value
	}
	return base
}
