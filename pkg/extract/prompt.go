package extract

import (
	"fmt"
	"strings"
)

// DefaultEntityTypes are the categories suggested to the extraction model.
// The resolver normalizes whatever comes back, so these are guidance, not
// an enum.
var DefaultEntityTypes = []string{
	"Person", "Organization", "Location", "Event", "Time",
	"Account", "Claim", "Vehicle", "Branch", "Concept",
}

// SummarySystemPrompt frames free-text summarization of graph context for
// the analysis endpoint.
const SummarySystemPrompt = "You are a helpful AI assistant summarizing graph data."

const extractPrompt = `
# Task Context
You are tasked with extracting **structured entity and relationship information** from the provided text. Capture **all details explicitly present in the text**, without omission or invention.

# Background Data
- **Entity_types:** [%s]

# Detailed Task Description & Rules

## Entity Extraction
1. Identify all entities mentioned in the text.
2. For each entity, extract:
   - **label:** The name of the entity exactly as it is most completely written in the text.
   - **type:** The best matching category from [%s].
   - **properties:** Key/value attributes explicitly stated in the text (roles, dates, amounts, identifiers). Use lowercase snake_case keys. Do not invent attributes.

## Relationship Extraction
3. Identify all relationships between the extracted entities.
4. For each relationship, extract:
   - **source / target:** Entity labels exactly as listed in step 2.
   - **type:** A short UPPER_SNAKE_CASE verb phrase (e.g. WORKS_FOR, LOCATED_IN, FILED).
   - **confidence:** A score between 0 and 1 reflecting how explicitly the text states the relationship.
   - **properties:** Explicit attributes of the relationship itself.

# Output Formatting
Return only the structured JSON response. No commentary, no extra text.
`

// SystemPrompt renders the extraction instructions for the given entity
// types, falling back to DefaultEntityTypes when none are provided.
func SystemPrompt(entityTypes []string) string {
	if len(entityTypes) == 0 {
		entityTypes = DefaultEntityTypes
	}
	joined := strings.Join(entityTypes, ", ")
	return fmt.Sprintf(extractPrompt, joined, joined)
}
