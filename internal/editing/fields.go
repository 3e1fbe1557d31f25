package editing

import (
	"fmt"

	"github.com/jonathan/resume-editor/internal/types"
)

// DocumentField names a top-level text field of the document.
type DocumentField string

// Top-level fields.
const (
	FieldName  DocumentField = "name"
	FieldTitle DocumentField = "title"
)

// ContactField names a slot of the contact block.
type ContactField string

// Contact fields, in the order the contact line renders them.
const (
	ContactEmail    ContactField = "email"
	ContactPhone    ContactField = "phone"
	ContactLocation ContactField = "location"
	ContactLinkedIn ContactField = "linkedin"
	ContactGitHub   ContactField = "github"
)

// SetField replaces the name or title of the document.
func SetField(field DocumentField, value string) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		out := doc.Clone()
		switch field {
		case FieldName:
			out.Name = value
		case FieldTitle:
			out.Title = value
		default:
			return doc, fmt.Errorf("document field %q: %w", field, ErrUnknownField)
		}
		return out, nil
	}
}

// SetContactField replaces one slot of the contact block.
func SetContactField(field ContactField, value string) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		out := doc.Clone()
		switch field {
		case ContactEmail:
			out.Contact.Email = value
		case ContactPhone:
			out.Contact.Phone = value
		case ContactLocation:
			out.Contact.Location = value
		case ContactLinkedIn:
			out.Contact.LinkedIn = value
		case ContactGitHub:
			out.Contact.GitHub = value
		default:
			return doc, fmt.Errorf("contact field %q: %w", field, ErrUnknownField)
		}
		return out, nil
	}
}
