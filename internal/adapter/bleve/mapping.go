package bleve

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

func IndexMapping() *mapping.IndexMappingImpl {
	mapping := bleve.NewIndexMapping()

	mapping.TypeField = "_type"

	noteMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Store = false
	titleFieldMapping.IncludeTermVectors = true
	noteMapping.AddFieldMappingsAt("title", titleFieldMapping)

	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Store = false
	contentFieldMapping.IncludeTermVectors = true
	noteMapping.AddFieldMappingsAt("content", contentFieldMapping)

	categoryFieldMapping := bleve.NewKeywordFieldMapping()
	categoryFieldMapping.Store = false
	noteMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	mapping.AddDocumentMapping("note", noteMapping)

	return mapping
}
