package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/graphloom/graphloom/pkg/common"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseText returns the file content as-is, minus a UTF-8 BOM.
func ParseText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%w: file contains no text", common.ErrValidation)
	}
	return text, nil
}
