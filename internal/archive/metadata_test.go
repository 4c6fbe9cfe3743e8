package archive

import (
	"testing"

	"github.com/lehigh-university-libraries/tropy-archive/internal/jsonld"
)

const (
	dcTerms    = "http://purl.org/dc/terms/"
	dcElements = "http://purl.org/dc/elements/1.1/"
)

func lit(values ...string) []jsonld.Value {
	out := make([]jsonld.Value, 0, len(values))
	for _, v := range values {
		out = append(out, jsonld.Value{Kind: jsonld.KindLiteral, Text: v})
	}
	return out
}

func itemOf(props ...jsonld.Property) jsonld.Item {
	return jsonld.Item{Properties: props}
}

func prop(uri string, values ...string) jsonld.Property {
	return jsonld.Property{URI: uri, Values: lit(values...)}
}

func TestBuildMetadataBasics(t *testing.T) {
	md := BuildMetadata(itemOf(prop(dcTerms+"title", "Test Item")), "test_collection")

	expected := map[string]string{
		"x-amz-auto-make-bucket":      "1",
		"x-archive-meta01-collection": "test_collection",
		"x-archive-meta-mediatype":    "image",
		"x-archive-meta-title":        "Test Item",
		"x-archive-meta-creator":      Product,
		"x-archive-meta-source":       Product + " " + Version,
	}
	for k, v := range expected {
		if md[k] != v {
			t.Errorf("Expected %s=%q, got %q", k, v, md[k])
		}
	}
	if len(md) != len(expected) {
		t.Errorf("Expected %d headers, got %d: %v", len(expected), len(md), md)
	}
}

func TestBuildMetadataDefaultCollection(t *testing.T) {
	md := BuildMetadata(itemOf(), "")
	if md[HeaderCollection] != DefaultCollection {
		t.Errorf("Expected collection %q, got %q", DefaultCollection, md[HeaderCollection])
	}
}

func TestBuildMetadataDublinCore(t *testing.T) {
	md := BuildMetadata(itemOf(
		prop(dcTerms+"title", "Test Title"),
		prop(dcTerms+"description", "Test Description"),
		prop(dcTerms+"creator", "Test Creator"),
		prop(dcTerms+"date", "2023-01-01"),
		prop(dcTerms+"language", "French"),
		prop(dcElements+"publisher", "Elements Publisher"),
		prop(dcTerms+"rights", "CC0"),
		prop("https://tropy.org/v1/tropy#box", "ignored"),
	), "")

	expected := map[string]string{
		"x-archive-meta-title":       "Test Title",
		"x-archive-meta-description": "Test Description",
		"x-archive-meta-creator":     "Test Creator",
		"x-archive-meta-date":        "2023-01-01",
		"x-archive-meta-language":    "French",
		"x-archive-meta-publisher":   "Elements Publisher",
		"x-archive-meta-rights":      "CC0",
	}
	for k, v := range expected {
		if md[k] != v {
			t.Errorf("Expected %s=%q, got %q", k, v, md[k])
		}
	}
	if _, ok := md["x-archive-meta-box"]; ok {
		t.Error("Expected unrecognized property to be ignored")
	}
}

func TestBuildMetadataTitleNotDuplicatedAcrossNamespaces(t *testing.T) {
	md := BuildMetadata(itemOf(
		prop(dcElements+"title", "Same Title"),
		prop(dcTerms+"title", "Same Title"),
	), "")

	if md["x-archive-meta-title"] != "Same Title" {
		t.Errorf("Expected single title header, got %q", md["x-archive-meta-title"])
	}
	if _, ok := md["x-archive-meta01-title"]; ok {
		t.Error("Expected no numbered title headers")
	}
}

func TestBuildMetadataLastTitleWins(t *testing.T) {
	item := itemOf(
		prop(dcElements+"title", "Elements Title"),
		prop(dcTerms+"title", "Terms Title"),
	)

	md := BuildMetadata(item, "")
	if md["x-archive-meta-title"] != "Terms Title" {
		t.Errorf("Expected last title property to win, got %q", md["x-archive-meta-title"])
	}
	if item.Title() != "Elements Title" {
		t.Errorf("Expected identifier title to stay first match, got %q", item.Title())
	}
}

func TestBuildMetadataMultiValue(t *testing.T) {
	md := BuildMetadata(itemOf(prop(dcTerms+"subject", "postcard", "switzerland")), "")

	if md["x-archive-meta01-subject"] != "postcard" {
		t.Errorf("Expected meta01-subject=postcard, got %q", md["x-archive-meta01-subject"])
	}
	if md["x-archive-meta02-subject"] != "switzerland" {
		t.Errorf("Expected meta02-subject=switzerland, got %q", md["x-archive-meta02-subject"])
	}
	if _, ok := md["x-archive-meta-subject"]; ok {
		t.Error("Expected no plain subject header")
	}
}

func TestBuildMetadataAppendAcrossNamespaces(t *testing.T) {
	md := BuildMetadata(itemOf(
		prop(dcElements+"subject", "maps"),
		prop(dcTerms+"subject", "alps", "rail"),
	), "")

	expected := map[string]string{
		"x-archive-meta01-subject": "maps",
		"x-archive-meta02-subject": "alps",
		"x-archive-meta03-subject": "rail",
	}
	for k, v := range expected {
		if md[k] != v {
			t.Errorf("Expected %s=%q, got %q", k, v, md[k])
		}
	}
}

func TestBuildMetadataReplaceFields(t *testing.T) {
	md := BuildMetadata(itemOf(
		prop(dcElements+"creator", "First Creator"),
		prop(dcTerms+"creator", "Second Creator"),
		prop(dcTerms+"source", "Swiss National Library"),
	), "")

	if md["x-archive-meta-creator"] != "Second Creator" {
		t.Errorf("Expected creator to be replaced, got %q", md["x-archive-meta-creator"])
	}
	if md["x-archive-meta-source"] != "Swiss National Library" {
		t.Errorf("Expected source override, got %q", md["x-archive-meta-source"])
	}
}

func TestBuildMetadataDropsEmptyValues(t *testing.T) {
	md := BuildMetadata(itemOf(
		prop(dcTerms+"title", "Valid Title"),
		prop(dcTerms+"description", "   "),
		prop(dcTerms+"creator", "   "),
		prop(dcTerms+"subject", "", "one", "\t"),
		prop(dcTerms+"publisher", "Valid Publisher"),
	), "")

	if _, ok := md["x-archive-meta-description"]; ok {
		t.Error("Expected whitespace-only description to be dropped")
	}
	if md["x-archive-meta-creator"] != Product {
		t.Errorf("Expected creator to fall back to %q, got %q", Product, md["x-archive-meta-creator"])
	}
	if md["x-archive-meta-subject"] != "one" {
		t.Errorf("Expected single retained subject, got %q", md["x-archive-meta-subject"])
	}
	if md["x-archive-meta-publisher"] != "Valid Publisher" {
		t.Errorf("Expected publisher, got %q", md["x-archive-meta-publisher"])
	}
}

func TestBuildMetadataSkipsNonStringValues(t *testing.T) {
	md := BuildMetadata(itemOf(jsonld.Property{
		URI:    dcTerms + "date",
		Values: []jsonld.Value{
			{Kind: jsonld.KindOther},
			{Kind: jsonld.KindString, Text: "1901"},
		},
	}), "")

	if md["x-archive-meta-date"] != "1901" {
		t.Errorf("Expected date 1901, got %q", md["x-archive-meta-date"])
	}
}

func TestBuildMetadataEncodesValues(t *testing.T) {
	md := BuildMetadata(itemOf(prop(dcTerms+"title", "Café\nde Paris")), "")
	if md["x-archive-meta-title"] != "uri(Caf%C3%A9%20de%20Paris)" {
		t.Errorf("Expected encoded title, got %q", md["x-archive-meta-title"])
	}
}

func TestIsMetadataHeader(t *testing.T) {
	tests := map[string]bool{
		"x-amz-auto-make-bucket":   true,
		"X-Archive-Meta-Title":     true,
		"x-archive-meta02-subject": true,
		"Content-Type":             false,
		"Authorization":            false,
		"x-archive-queue-derive":   false,
	}
	for name, expected := range tests {
		if got := IsMetadataHeader(name); got != expected {
			t.Errorf("IsMetadataHeader(%q): expected %v, got %v", name, expected, got)
		}
	}
}
