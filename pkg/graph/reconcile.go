package graph

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/graphloom/graphloom/pkg/common"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type relationshipKey struct {
	from    string
	to      string
	relType string
}

// reconcileRelationships rewrites candidate relationship endpoints through
// the mention map and merges duplicates. A candidate whose endpoint has no
// resolved entity is dropped and counted, not treated as a failure.
// Duplicates on (from, to, type) keep the maximum confidence and union
// their properties first-write-wins. Self-loops are permitted.
func reconcileRelationships(
	results []chunkResult,
	mentions map[mentionKey]string,
	documentID string,
) ([]common.Relationship, int, error) {
	sorted := make([]chunkResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].index < sorted[j].index })

	relationships := make([]common.Relationship, 0)
	indexByKey := make(map[relationshipKey]int)
	dropped := 0
	now := time.Now().UTC()

	for _, cr := range sorted {
		if cr.result == nil {
			continue
		}
		for _, candidate := range cr.result.Relationships {
			fromID, fromOK := mentions[mentionKey{chunk: cr.index, mention: candidate.From}]
			toID, toOK := mentions[mentionKey{chunk: cr.index, mention: candidate.To}]
			if !fromOK || !toOK {
				dropped++
				continue
			}

			relType := strings.TrimSpace(candidate.Type)
			if relType == "" {
				dropped++
				continue
			}

			key := relationshipKey{from: fromID, to: toID, relType: relType}
			if idx, ok := indexByKey[key]; ok {
				existing := &relationships[idx]
				if candidate.Confidence > existing.Confidence {
					existing.Confidence = candidate.Confidence
				}
				existing.Properties = mergeProperties(existing.Properties, common.SanitizeProperties(candidate.Properties))
				continue
			}

			id, err := gonanoid.New()
			if err != nil {
				return nil, 0, fmt.Errorf("failed to generate ID for relationship: %w", err)
			}
			relationships = append(relationships, common.Relationship{
				ID:         id,
				FromID:     fromID,
				ToID:       toID,
				Type:       relType,
				Properties: common.SanitizeProperties(candidate.Properties),
				Confidence: candidate.Confidence,
				Source:     common.SourceExtraction,
				DocumentID: documentID,
				CreatedAt:  now,
			})
			indexByKey[key] = len(relationships) - 1
		}
	}

	return relationships, dropped, nil
}
