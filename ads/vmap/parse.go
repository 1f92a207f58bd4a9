package vmap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Document is a decoded ad server response. Exactly one field is set.
type Document struct {
	VMAP *VMAP
	VAST *VAST
}

// Parse decodes a VMAP playlist or a bare VAST response, picking by the root
// element.
func Parse(data []byte) (Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return Document{}, ErrUnsupportedDocument
		}
		if err != nil {
			return Document{}, fmt.Errorf("decode ad response: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "VMAP":
			var v VMAP
			if err := dec.DecodeElement(&v, &start); err != nil {
				return Document{}, fmt.Errorf("decode VMAP: %w", err)
			}
			return Document{VMAP: &v}, nil
		case "VAST":
			var v VAST
			if err := dec.DecodeElement(&v, &start); err != nil {
				return Document{}, fmt.Errorf("decode VAST: %w", err)
			}
			return Document{VAST: &v}, nil
		default:
			return Document{}, fmt.Errorf("%w: root <%s>", ErrUnsupportedDocument, start.Name.Local)
		}
	}
}

// ParseVAST decodes a response that must be VAST, as returned by wrapper and
// AdTagURI fetches.
func ParseVAST(data []byte) (*VAST, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if doc.VAST == nil {
		return nil, fmt.Errorf("%w: expected VAST", ErrUnsupportedDocument)
	}
	return doc.VAST, nil
}
