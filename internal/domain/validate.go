package domain

import "strings"

const (
	maxTitleLen       = 120
	maxDescriptionLen = 1000
)

// Validate normalizes and checks a create input. Title is trimmed; an empty
// or oversized field fails with a ValidationError naming it.
func (in *TodoInput) Validate() error {
	fields := map[string]string{}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		fields["title"] = "must not be empty"
	} else if len(in.Title) > maxTitleLen {
		fields["title"] = "too long"
	}
	if in.Description != nil && len(*in.Description) > maxDescriptionLen {
		fields["description"] = "too long"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate checks the fields a patch actually sets; absent fields are not
// inspected. The same per-field rules as TodoInput apply.
func (p *TodoPatch) Validate() error {
	fields := map[string]string{}

	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			fields["title"] = "must not be empty"
		} else if len(t) > maxTitleLen {
			fields["title"] = "too long"
		}
		p.Title = &t
	}
	if p.Description != nil && len(*p.Description) > maxDescriptionLen {
		fields["description"] = "too long"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
