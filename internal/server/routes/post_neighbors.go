package routes

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/pkg/common"
)

// GetNeighborsHandler returns the subgraph around one node up to the
// requested depth.
func GetNeighborsHandler(c echo.Context) error {
	type neighborsBody struct {
		NodeID string `json:"node_id" validate:"required"`
		Depth  int    `json:"depth"`
	}

	data := new(neighborsBody)
	if err := c.Bind(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}
	if err := c.Validate(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: node_id is required", common.ErrValidation))
	}
	if data.Depth <= 0 {
		data.Depth = 1
	}

	subgraph, err := app(c).Storage.GetNeighbors(c.Request().Context(), data.NodeID, data.Depth)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, subgraph)
}
