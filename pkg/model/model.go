package model

import "github.com/goliatone/go-formfields/pkg/rules"

// FormModel is the contract widgets read attribute metadata from.
type FormModel interface {
	// FormName scopes input names, e.g. "LoginForm" yields LoginForm[login].
	// An empty name renders attributes unscoped.
	FormName() string
	HasAttribute(attribute string) bool
	AttributeValue(attribute string) any
	AttributeLabel(attribute string) string
	AttributeHint(attribute string) string
	AttributePlaceholder(attribute string) string
	Rules(attribute string) []rules.Rule
	Errors() *Errors
}
