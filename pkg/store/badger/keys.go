package badger

import "strings"

// Key scheme:
//
//	v/<partition>/<id>  vertex records, partition derived from entity type
//	e/<id>              edge records
//	pv/<partition>      partition registry, scanned to probe vertex lookups
const (
	vertexPrefix    = "v/"
	edgePrefix      = "e/"
	partitionPrefix = "pv/"
)

// partitionOf derives the vertex partition from an entity type.
func partitionOf(entityType string) string {
	return strings.ToLower(strings.TrimSpace(entityType))
}

func vertexKey(partition, id string) []byte {
	return []byte(vertexPrefix + partition + "/" + id)
}

func edgeKey(id string) []byte {
	return []byte(edgePrefix + id)
}

func partitionKey(partition string) []byte {
	return []byte(partitionPrefix + partition)
}
