package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/logger"
	"github.com/graphloom/graphloom/pkg/store"
)

// AnalyzeNodeHandler summarizes the role of one node from its 1-hop
// context. With a chat-capable adapter the summary comes from the model;
// otherwise a plain structural summary is produced.
func AnalyzeNodeHandler(c echo.Context) error {
	type analyzeBody struct {
		NodeID string `json:"node_id" validate:"required"`
	}

	data := new(analyzeBody)
	if err := c.Bind(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}
	if err := c.Validate(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: node_id is required", common.ErrValidation))
	}

	ctx := c.Request().Context()
	subgraph, err := app(c).Storage.GetNeighbors(ctx, data.NodeID, 1)
	if err != nil {
		return jsonError(c, err)
	}

	var target *common.Entity
	labels := make(map[string]string, len(subgraph.Entities))
	for i, entity := range subgraph.Entities {
		labels[entity.ID] = entity.Label
		if entity.ID == data.NodeID {
			target = &subgraph.Entities[i]
		}
	}
	if target == nil {
		return jsonError(c, store.NotFound("entity", data.NodeID))
	}

	incoming := make([]string, 0)
	outgoing := make([]string, 0)
	for _, rel := range subgraph.Relationships {
		if rel.ToID == data.NodeID {
			incoming = append(incoming, fmt.Sprintf("- %s (%s)", labels[rel.FromID], rel.Type))
		}
		if rel.FromID == data.NodeID {
			outgoing = append(outgoing, fmt.Sprintf("- (%s) -> %s", rel.Type, labels[rel.ToID]))
		}
	}

	summary := logicSummary(target.Label, len(incoming), len(outgoing))
	if summarizer := app(c).Summarizer; summarizer != nil {
		generated, err := summarizer.Summarize(ctx, analysisPrompt(target, incoming, outgoing))
		if err != nil {
			logger.Warn("[API] Node analysis fell back to structural summary", "node", data.NodeID, "err", err)
		} else if generated != "" {
			summary = generated
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"summary": summary})
}

// analysisPrompt renders the node and its 1-hop context for summarization.
func analysisPrompt(target *common.Entity, incoming, outgoing []string) string {
	causes := "(None - This is a start node)"
	if len(incoming) > 0 {
		causes = strings.Join(incoming, "\n")
	}
	effects := "(None - This is an end node)"
	if len(outgoing) > 0 {
		effects = strings.Join(outgoing, "\n")
	}

	return fmt.Sprintf(`You are a process analyst analyzing a knowledge graph.

SUBJECT NODE: %s (ID: %s)
TYPE: %s
PROPERTIES: %v

INCOMING LINKS (CAUSES/PREDECESSORS):
%s

OUTGOING LINKS (EFFECTS/SUCCESSORS):
%s

TASK:
Write a concise 2-3 sentence summary explaining the role of this node in the graph.
Explain what leads to it and what happens next. Do not list IDs unless necessary.`,
		target.Label, target.ID, target.Type, target.Properties, causes, effects)
}

// logicSummary is the non-AI fallback: a structural one-liner built from
// the degree counts.
func logicSummary(name string, incoming, outgoing int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is a key node in the graph. ", name)
	if incoming > 0 {
		fmt.Fprintf(&b, "It is triggered by %d upstream events. ", incoming)
	} else {
		b.WriteString("It appears to be a starting point. ")
	}
	if outgoing > 0 {
		fmt.Fprintf(&b, "It leads to %d downstream outcomes.", outgoing)
	} else {
		b.WriteString("It represents a terminal state.")
	}
	return b.String()
}
