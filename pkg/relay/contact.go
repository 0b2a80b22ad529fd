package relay

import (
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Contact is the visitor's details attached to a purchase request.
type Contact struct {
	Name    string `form:"name" sanitize:"trim,strip_html,single_line,collapse"`
	Email   string `form:"email" sanitize:"trim,lower,strip_html,single_line"`
	Phone   string `form:"phone" sanitize:"trim,strip_html,single_line"`
	Address string `form:"address" sanitize:"trim,strip_html,single_line,collapse"`
	Message string `form:"message" sanitize:"trim,strip_html"`
}

// Validate cleans c in place and checks the required fields.
func (c *Contact) Validate() error {
	if err := sanitizer.Apply(c); err != nil {
		return err
	}
	return validator.Apply(
		validator.RequiredString("name", c.Name),
		validator.MaxLenString("name", c.Name, 100),
		validator.RequiredString("email", c.Email),
		validator.ValidEmail("email", c.Email),
		validator.RequiredString("phone", c.Phone),
		validator.ValidPhone("phone", c.Phone),
		validator.RequiredString("address", c.Address),
		validator.MaxLenString("address", c.Address, 300),
		validator.MaxLenString("message", c.Message, 2000),
	)
}

// ContactMessage is a general enquiry from the contact form.
type ContactMessage struct {
	Name    string `form:"name" sanitize:"trim,strip_html,single_line,collapse"`
	Email   string `form:"email" sanitize:"trim,lower,strip_html,single_line"`
	Message string `form:"message" sanitize:"trim,strip_html"`
}

// Validate cleans m in place and checks that every field is present.
func (m *ContactMessage) Validate() error {
	if err := sanitizer.Apply(m); err != nil {
		return err
	}
	return validator.Apply(
		validator.RequiredString("name", m.Name),
		validator.MaxLenString("name", m.Name, 100),
		validator.RequiredString("email", m.Email),
		validator.ValidEmail("email", m.Email),
		validator.RequiredString("message", m.Message),
		validator.MaxLenString("message", m.Message, 2000),
	)
}

// Subscription is a newsletter signup.
type Subscription struct {
	Email string `form:"email" sanitize:"trim,lower,strip_html,single_line"`
}

// Validate cleans s in place and checks the address.
func (s *Subscription) Validate() error {
	if err := sanitizer.Apply(s); err != nil {
		return err
	}
	return validator.Apply(
		validator.RequiredString("email", s.Email),
		validator.ValidEmail("email", s.Email),
	)
}
