// Package metadata assembles the descriptive document uploaded alongside
// every publish. The document references the payload and thumbnail by CID and
// carries display attributes; it is itself content-addressed, so each version
// gets its own metadata identifier.
package metadata

import (
	"fmt"
	"strings"
	"time"

	"vitrine/internal/record"
)

// RefScheme prefixes content identifiers in document URI fields.
const RefScheme = "ref://"

// Attribute is one trait entry in the document's attribute list.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// Properties carries the machine-readable fields of a document.
type Properties struct {
	PayloadRef   string `json:"payload_ref"`
	ThumbnailRef string `json:"thumbnail_ref,omitempty"`
	Version      int    `json:"version"`
	CreatedAt    string `json:"created_at"`
}

// Document is the metadata uploaded next to a payload.
type Document struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Image        string      `json:"image"`
	AnimationURL string      `json:"animation_url"`
	Attributes   []Attribute `json:"attributes"`
	Properties   Properties  `json:"properties"`
}

// Refs bundles the content identifiers a document points at.
type Refs struct {
	PayloadRef   string
	ThumbnailRef string
}

// ForObjectRoot builds the document for a newly published object.
func ForObjectRoot(name, objectType, category string, refs Refs, createdAt time.Time) Document {
	doc := newDocument(name, fmt.Sprintf("%s published with vitrine", objectType), refs, 1, createdAt)
	doc.Attributes = append(doc.Attributes,
		Attribute{TraitType: "Type", Value: objectType},
	)
	if category = strings.TrimSpace(category); category != "" {
		doc.Attributes = append(doc.Attributes, Attribute{TraitType: "Category", Value: category})
	}
	return doc
}

// ForChamberRoot builds the document for a new chamber lineage.
func ForChamberRoot(name string, objectCount int, remixable bool, refs Refs, createdAt time.Time) Document {
	doc := newDocument(name, fmt.Sprintf("Chamber with %d objects", objectCount), refs, 1, createdAt)
	doc.Attributes = append(doc.Attributes,
		Attribute{TraitType: "Objects", Value: objectCount},
		Attribute{TraitType: "Remixable", Value: remixable},
	)
	return doc
}

// ForVersion builds the document for a child version. The parent's display
// name carries over unchanged; the description records the version number.
func ForVersion(parent record.Record, objectCount, version int, refs Refs, createdAt time.Time) Document {
	doc := newDocument(parent.DisplayLabel(), fmt.Sprintf("Version %d of %s", version, parent.DisplayLabel()), refs, version, createdAt)
	doc.Attributes = append(doc.Attributes,
		Attribute{TraitType: "Objects", Value: objectCount},
		Attribute{TraitType: "Remixable", Value: parent.Remixable},
	)
	return doc
}

// ForRemix builds the document for a remix seeded from another creator's
// record. Remixes start their own lineage: version 1, remixable defaulting to
// false regardless of the source's flag, with attribution back to the source.
func ForRemix(source record.Record, name string, objectCount int, remixable bool, refs Refs, createdAt time.Time) Document {
	if strings.TrimSpace(name) == "" {
		name = source.DisplayLabel() + " (remix)"
	}
	doc := newDocument(name, fmt.Sprintf("Remix of %s", source.DisplayLabel()), refs, 1, createdAt)
	doc.Attributes = append(doc.Attributes,
		Attribute{TraitType: "Objects", Value: objectCount},
		Attribute{TraitType: "Remixable", Value: remixable},
		Attribute{TraitType: "Remixed From", Value: fmt.Sprintf("#%d", source.ID)},
		Attribute{TraitType: "Original Creator", Value: source.OriginalCreator},
	)
	return doc
}

func newDocument(name, description string, refs Refs, version int, createdAt time.Time) Document {
	image := refs.ThumbnailRef
	if image == "" {
		image = refs.PayloadRef
	}
	return Document{
		Name:         name,
		Description:  description,
		Image:        RefScheme + image,
		AnimationURL: RefScheme + refs.PayloadRef,
		Attributes:   []Attribute{},
		Properties: Properties{
			PayloadRef:   refs.PayloadRef,
			ThumbnailRef: refs.ThumbnailRef,
			Version:      version,
			CreatedAt:    createdAt.UTC().Format(time.RFC3339),
		},
	}
}
