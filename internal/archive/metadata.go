package archive

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/tropy-archive/internal/jsonld"
)

// Upload headers that are always part of an item's metadata.
const (
	HeaderAutoMakeBucket = "x-amz-auto-make-bucket"
	HeaderCollection     = "x-archive-meta01-collection"
	HeaderMediaType      = "x-archive-meta-mediatype"

	metaPrefix = "x-archive-meta"
	mediaType  = "image"
)

// Metadata maps upload header names to encoded values.
type Metadata map[string]string

type mergeMode int

const (
	appendValues mergeMode = iota
	replaceValues
)

type dcField struct {
	name string
	mode mergeMode
}

// dcFields is the Dublin Core table, in header emission order.
var dcFields = []dcField{
	{"title", replaceValues},
	{"description", appendValues},
	{"creator", replaceValues},
	{"contributor", appendValues},
	{"publisher", appendValues},
	{"date", appendValues},
	{"language", appendValues},
	{"subject", appendValues},
	{"type", appendValues},
	{"format", appendValues},
	{"identifier", appendValues},
	{"source", replaceValues},
	{"relation", appendValues},
	{"coverage", appendValues},
	{"rights", appendValues},
}

var dcNamespaces = []string{
	"http://purl.org/dc/elements/1.1/",
	"http://purl.org/dc/terms/",
}

var fieldsByProperty = func() map[string]dcField {
	m := make(map[string]dcField, len(dcFields)*len(dcNamespaces))
	for _, f := range dcFields {
		for _, ns := range dcNamespaces {
			m[ns+f.name] = f
		}
	}
	return m
}()

// BuildMetadata maps the Dublin Core properties of an item onto archive
// upload headers. Title, creator and source replace earlier values each
// time a matching property is seen; every other field accumulates. Fields
// with one value become x-archive-meta-<field>, fields with several become
// x-archive-metaNN-<field> numbered from 01.
func BuildMetadata(item jsonld.Item, collection string) Metadata {
	if collection == "" {
		collection = DefaultCollection
	}

	values := map[string][]string{
		"creator": {Product},
		"source":  {userAgent()},
	}

	for _, p := range item.Properties {
		field, ok := fieldsByProperty[p.URI]
		if !ok {
			continue
		}
		encoded := encodeValues(p.Values)
		if len(encoded) == 0 {
			continue
		}
		if field.mode == replaceValues {
			values[field.name] = encoded
		} else {
			values[field.name] = append(values[field.name], encoded...)
		}
	}

	md := Metadata{
		HeaderAutoMakeBucket: "1",
		HeaderCollection:     collection,
		HeaderMediaType:      mediaType,
	}
	for _, f := range dcFields {
		vs := values[f.name]
		switch len(vs) {
		case 0:
		case 1:
			md[metaPrefix+"-"+f.name] = vs[0]
		default:
			for i, v := range vs {
				md[fmt.Sprintf("%s%02d-%s", metaPrefix, i+1, f.name)] = v
			}
		}
	}
	return md
}

func encodeValues(values []jsonld.Value) []string {
	var out []string
	for _, v := range values {
		s, ok := v.AsString()
		if !ok {
			continue
		}
		if enc := EncodeHeaderValue(s); enc != "" {
			out = append(out, enc)
		}
	}
	return out
}

// IsMetadataHeader reports whether a header name carries item metadata.
func IsMetadataHeader(name string) bool {
	name = strings.ToLower(name)
	return name == HeaderAutoMakeBucket || strings.HasPrefix(name, metaPrefix)
}
