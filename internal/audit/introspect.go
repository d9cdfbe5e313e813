// Package audit records every create, update and delete that goes through a
// repository.UnitOfWork. The Interceptor runs in the commit's pending phase,
// describes each entity through optional capability interfaces, resolves the
// actor from the request context and enqueues one models.AuditLog per
// mutation into the same transaction.
//
// Entity types opt into richer records by implementing any of the small
// interfaces below. Nothing has to be registered: a new model that implements
// none of them is still audited with its type name and action.
package audit

import (
	"reflect"
	"strings"
	"unicode/utf8"
)

const (
	descriptionLimit = 50
	maxMetaLength    = 255
)

type Identifiable interface {
	PrimaryKey() (uint, bool)
}

type HasCode interface {
	DisplayCode() string
}

type HasName interface {
	DisplayName() string
}

type HasTitle interface {
	DisplayTitle() string
}

type HasDescription interface {
	DisplayDescription() string
}

type HasEmail interface {
	ContactEmail() string
}

// HasTenant is implemented by tenant-scoped entities. Their own tenant takes
// precedence over the tenant found in the request context.
type HasTenant interface {
	OwnerTenantID() (uint, bool)
}

// Description is what the introspector could learn about an entity.
type Description struct {
	TypeName string
	ID       *uint
	Summary  *string
}

// Describe extracts type name, id and summary from any entity.
func Describe(entity any) Description {
	d := Description{TypeName: typeName(entity)}
	if e, ok := entity.(Identifiable); ok {
		if id, ok := e.PrimaryKey(); ok {
			d.ID = &id
		}
	}
	if s := summarize(entity); s != "" {
		s = truncate(s, maxMetaLength, "")
		d.Summary = &s
	}
	return d
}

func typeName(entity any) string {
	t := reflect.TypeOf(entity)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// summarize applies the first matching rule: code (joined with name or
// title when present), name, title, truncated description, email.
func summarize(entity any) string {
	code := probe[HasCode](entity, HasCode.DisplayCode)
	label := probe[HasName](entity, HasName.DisplayName)
	if label == "" {
		label = probe[HasTitle](entity, HasTitle.DisplayTitle)
	}

	switch {
	case code != "" && label != "":
		return code + " - " + label
	case code != "":
		return code
	case label != "":
		return label
	}

	if desc := probe[HasDescription](entity, HasDescription.DisplayDescription); desc != "" {
		return truncate(desc, descriptionLimit, "...")
	}
	return probe[HasEmail](entity, HasEmail.ContactEmail)
}

func probe[C any](entity any, get func(C) string) string {
	c, ok := entity.(C)
	if !ok {
		return ""
	}
	return strings.TrimSpace(get(c))
}

func truncate(s string, limit int, suffix string) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + suffix
}
