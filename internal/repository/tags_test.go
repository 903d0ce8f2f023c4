package repository

import (
	"reflect"
	"strings"
	"testing"
)

func TestJoinAndSplitTags(t *testing.T) {
	joined := joinTags([]string{" Software ", "", "Fintech"})
	if joined != "Software,Fintech" {
		t.Fatalf("unexpected joined value: %q", joined)
	}

	tags := splitTags(" Software, Fintech ,, ")
	if !reflect.DeepEqual(tags, []string{"Software", "Fintech"}) {
		t.Fatalf("unexpected tags: %v", tags)
	}

	if splitTags("   ") != nil {
		t.Fatalf("expected nil for blank input")
	}
}

func TestTagMatchClause(t *testing.T) {
	clause := tagMatchClause("industries", 3)
	if !strings.Contains(clause, "string_to_array(industries, ',')") || !strings.Contains(clause, "$3") {
		t.Fatalf("unexpected clause: %s", clause)
	}
}
