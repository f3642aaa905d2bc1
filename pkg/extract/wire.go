package extract

import "github.com/graphloom/graphloom/pkg/common"

// ModelProperty is a single key/value pair in the model response. Properties
// are flattened to pairs because strict response schemas cannot express an
// open-keyed object.
type ModelProperty struct {
	Key   string `json:"key" jsonschema_description:"Property name, lowercase snake_case"`
	Value string `json:"value" jsonschema_description:"Property value as a plain string"`
}

// ModelEntity is the wire shape of one extracted entity.
type ModelEntity struct {
	Label      string          `json:"label" jsonschema_description:"Canonical name of the entity as written in the text"`
	Type       string          `json:"type" jsonschema_description:"Entity category, e.g. Person, Organization, Location, Event, Concept"`
	Properties []ModelProperty `json:"properties" jsonschema_description:"Attributes of the entity explicitly stated in the text"`
}

// ModelRelationship is the wire shape of one extracted relationship.
// Source and target reference entity labels from the same response.
type ModelRelationship struct {
	Source     string          `json:"source" jsonschema_description:"Label of the source entity, exactly as listed in entities"`
	Target     string          `json:"target" jsonschema_description:"Label of the target entity, exactly as listed in entities"`
	Type       string          `json:"type" jsonschema_description:"Relationship type in UPPER_SNAKE_CASE, e.g. WORKS_FOR"`
	Confidence float64         `json:"confidence" jsonschema_description:"Confidence score between 0 and 1"`
	Properties []ModelProperty `json:"properties" jsonschema_description:"Attributes of the relationship explicitly stated in the text"`
}

// ModelResponse is the structured output contract shared by all extraction
// adapters.
type ModelResponse struct {
	Entities      []ModelEntity      `json:"entities" jsonschema_description:"Entities identified in the text"`
	Relationships []ModelRelationship `json:"relationships" jsonschema_description:"Relationships between the identified entities"`
}

// ToResult converts a model response into candidate form: properties become
// a sanitized map, mention ids are derived from labels, and relationship
// endpoints are rewritten from labels to mention ids. Confidence is clamped
// to [0,1].
func (r ModelResponse) ToResult() *Result {
	out := &Result{
		Entities:      make([]CandidateEntity, 0, len(r.Entities)),
		Relationships: make([]CandidateRelationship, 0, len(r.Relationships)),
	}

	for _, e := range r.Entities {
		if e.Label == "" {
			continue
		}
		out.Entities = append(out.Entities, CandidateEntity{
			Mention:    MentionID(e.Label),
			Label:      e.Label,
			Type:       e.Type,
			Properties: common.SanitizeProperties(propertyMap(e.Properties)),
		})
	}

	for _, rel := range r.Relationships {
		if rel.Source == "" || rel.Target == "" || rel.Type == "" {
			continue
		}
		confidence := rel.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}
		out.Relationships = append(out.Relationships, CandidateRelationship{
			From:       MentionID(rel.Source),
			To:         MentionID(rel.Target),
			Type:       rel.Type,
			Confidence: confidence,
			Properties: common.SanitizeProperties(propertyMap(rel.Properties)),
		})
	}

	return out
}

func propertyMap(props []ModelProperty) common.Properties {
	if len(props) == 0 {
		return nil
	}
	out := make(common.Properties, len(props))
	for _, p := range props {
		if p.Key == "" {
			continue
		}
		out[p.Key] = p.Value
	}
	return out
}
