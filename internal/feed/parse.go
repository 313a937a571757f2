package feed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/nao1215/backlinkreport/internal/model"
	"golang.org/x/net/html/charset"
)

// Element and attribute names used by the feed.
const (
	elemToken = "TOKEN"
	elemSetup = "SETUP"
	elemUser  = "USER"

	attrPrefix            = "PREFIX"
	attrObjectID          = "OBJECT_ID"
	attrObjectDescription = "OBJECT_DESCRIPTION"
	attrUsername          = "USERNAME"
)

// tokenEntry collects the data of one TOKEN element while it is open.
type tokenEntry struct {
	prefix   string
	hasSetup bool
	hasUser  bool
	record   model.EnrichmentRecord
}

// Parse reads a feed document and builds the token lookup.
//
// Every TOKEN element anywhere in the document contributes one record keyed
// by its PREFIX attribute. The first SETUP and USER elements nested inside a
// TOKEN provide its fields; a missing element leaves the matching fields
// empty. summaryURL is the page the affiliate display links to; the record's
// AccessURL is summaryURL with the SETUP OBJECT_ID as its id parameter.
//
// A document that is not well-formed XML yields ErrMalformedResponse and no
// records.
func Parse(r io.Reader, summaryURL string) (model.Lookup, error) {
	dec := xml.NewDecoder(r)
	// Documents declaring a non UTF-8 encoding are transcoded.
	dec.CharsetReader = charset.NewReaderLabel

	var (
		entries  []*tokenEntry // document order of TOKEN start tags
		open     []*tokenEntry // TOKEN elements currently open
		depth    int
		sawRoot  bool
		tokStack []bool // whether each open element is a TOKEN
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawRoot = true
			depth++
			isToken := t.Name.Local == elemToken
			tokStack = append(tokStack, isToken)

			switch t.Name.Local {
			case elemToken:
				e := &tokenEntry{prefix: attr(t, attrPrefix)}
				entries = append(entries, e)
				open = append(open, e)
			case elemSetup:
				for _, e := range open {
					if e.hasSetup {
						continue
					}
					e.hasSetup = true
					e.record.ObjectID = attr(t, attrObjectID)
					e.record.ObjectDescription = attr(t, attrObjectDescription)
					e.record.AccessURL = accessURL(summaryURL, e.record.ObjectID)
				}
			case elemUser:
				for _, e := range open {
					if e.hasUser {
						continue
					}
					e.hasUser = true
					e.record.Username = attr(t, attrUsername)
				}
			}
		case xml.EndElement:
			depth--
			if n := len(tokStack); n > 0 {
				if tokStack[n-1] && len(open) > 0 {
					open = open[:len(open)-1]
				}
				tokStack = tokStack[:n-1]
			}
		}
	}

	if !sawRoot || depth != 0 {
		return nil, fmt.Errorf("%w: no complete root element", ErrMalformedResponse)
	}

	lookup := make(model.Lookup, len(entries))
	for _, e := range entries {
		if e.prefix == "" {
			continue
		}
		// Later duplicates win, like repeated assignments would.
		lookup[model.Token(e.prefix)] = e.record
	}
	return lookup, nil
}

// attr returns the value of the named attribute, ignoring namespaces.
func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// accessURL builds the affiliate summary link for an object id.
func accessURL(summaryURL, objectID string) string {
	if summaryURL == "" {
		return ""
	}
	return summaryURL + "?id=" + url.QueryEscape(objectID)
}
