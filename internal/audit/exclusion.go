package audit

import (
	"reflect"

	"notas/internal/models"
)

// ExclusionSet holds entity types that are never audited. It is built once
// and has no mutators, so it can be shared between requests without locking.
type ExclusionSet struct {
	types map[reflect.Type]struct{}
}

// DefaultExclusions keeps the audit log out of its own trail.
var DefaultExclusions = NewExclusionSet(&models.AuditLog{})

// NewExclusionSet builds a set from sample values. Pointers and values of the
// same type are equivalent.
func NewExclusionSet(samples ...any) ExclusionSet {
	types := make(map[reflect.Type]struct{}, len(samples))
	for _, s := range samples {
		if t := baseType(s); t != nil {
			types[t] = struct{}{}
		}
	}
	return ExclusionSet{types: types}
}

func (s ExclusionSet) Contains(entity any) bool {
	t := baseType(entity)
	if t == nil {
		return false
	}
	_, ok := s.types[t]
	return ok
}

func (s ExclusionSet) Len() int {
	return len(s.types)
}

func baseType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
