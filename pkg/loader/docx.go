package loader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/graphloom/graphloom/pkg/common"
)

// ParseDOCX extracts paragraph text from word/document.xml inside the
// DOCX container. Runs within a paragraph are concatenated; paragraphs
// become blank-line separated blocks.
func ParseDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX container: %w", err)
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("%w: word/document.xml not found in DOCX", common.ErrValidation)
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer rc.Close()

	text, err := extractDocumentXML(rc)
	if err != nil {
		return "", fmt.Errorf("failed to parse document.xml: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: DOCX contains no text", common.ErrValidation)
	}
	return text, nil
}

// ParseDOC handles .doc uploads. Files already in the OOXML container
// (commonly produced with a .doc name by modern tooling) parse as DOCX;
// the legacy OLE binary format has no native parser and is rejected with
// a hint to convert.
func ParseDOC(data []byte) (string, error) {
	if _, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		return "", fmt.Errorf("%w: legacy .doc format is not supported, convert the file to .docx", common.ErrValidation)
	}
	return ParseDOCX(data)
}

// extractDocumentXML walks the WordprocessingML token stream collecting
// the text runs ("t" elements). Paragraph ends ("p") become paragraph
// breaks, explicit breaks ("br") and tabs keep words separated.
func extractDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var output strings.Builder
	var paragraph strings.Builder
	inText := false

	flush := func() {
		text := strings.TrimSpace(paragraph.String())
		paragraph.Reset()
		if text == "" {
			return
		}
		if output.Len() > 0 {
			output.WriteString("\n\n")
		}
		output.WriteString(text)
	}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br", "tab":
				paragraph.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}
	flush()

	return output.String(), nil
}
