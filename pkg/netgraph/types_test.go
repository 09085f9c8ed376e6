package netgraph

import (
	"reflect"
	"testing"
)

func TestAllowedParentTypes(t *testing.T) {
	tests := []struct {
		childType ElementType
		expected  []ElementType
	}{
		{TypeOLT, []ElementType{}},
		{TypeODF, []ElementType{TypeOLT}},
		{TypeClosure, []ElementType{TypeOLT, TypeODF, TypeClosure}},
		{TypeLCP, []ElementType{TypeOLT, TypeClosure}},
		{TypeNAP, []ElementType{TypeLCP}},
	}

	for _, tt := range tests {
		got := AllowedParentTypes(tt.childType)
		if len(got) == 0 && len(tt.expected) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("AllowedParentTypes(%s) = %v, want %v", tt.childType, got, tt.expected)
		}
	}
}

func TestAllowedChildTypesIsInverse(t *testing.T) {
	// Every (child, parent) pair in the table must appear in the inverse
	// lookup, and nothing else may.
	for _, childType := range elementTypes {
		for _, parentType := range AllowedParentTypes(childType) {
			found := false
			for _, c := range AllowedChildTypes(parentType) {
				if c == childType {
					found = true
				}
			}
			if !found {
				t.Errorf("AllowedChildTypes(%s) missing %s", parentType, childType)
			}
		}
	}

	if got := AllowedChildTypes(TypeLCP); !reflect.DeepEqual(got, []ElementType{TypeNAP}) {
		t.Errorf("AllowedChildTypes(LCP) = %v, want [NAP]", got)
	}
	if got := AllowedChildTypes(TypeNAP); len(got) != 0 {
		t.Errorf("NAP is a leaf, got children %v", got)
	}
	if got := AllowedChildTypes(TypeOLT); !reflect.DeepEqual(got, []ElementType{TypeODF, TypeClosure, TypeLCP}) {
		t.Errorf("AllowedChildTypes(OLT) = %v", got)
	}
}

func TestTypePredicates(t *testing.T) {
	if !TypeOLT.IsRoot() || TypeODF.IsRoot() {
		t.Errorf("only OLT is a root type")
	}
	for _, enclosure := range []ElementType{TypeClosure, TypeLCP, TypeNAP} {
		if !enclosure.IsEnclosure() {
			t.Errorf("%s should hold trays", enclosure)
		}
	}
	for _, frame := range []ElementType{TypeOLT, TypeODF} {
		if frame.IsEnclosure() {
			t.Errorf("%s should not hold trays", frame)
		}
	}
	if ElementType("SWITCH").Valid() {
		t.Errorf("unknown type should not validate")
	}
}

func TestElementClone(t *testing.T) {
	lat, lon := 40.1, -88.2
	el := &Element{ID: "x", Type: TypeNAP, Latitude: &lat, Longitude: &lon}
	clone := el.Clone()
	*clone.Latitude = 0
	if *el.Latitude != 40.1 {
		t.Errorf("Clone shares GPS pointers")
	}
}
