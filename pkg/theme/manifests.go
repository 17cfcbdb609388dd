package theme

import (
	gotheme "github.com/goliatone/go-theme"
)

// Built-in theme names.
const (
	Bootstrap5 = "bootstrap5"
	Bulma      = "bulma"
	Tailwind   = "tailwind"

	// VariantFloating renders bootstrap5 labels floating over their input.
	VariantFloating = "floating"
)

// Token keys read from a selection. Per-kind input classes use
// TokenInputClass + "." + kind, e.g. "field.inputClass.select".
const (
	TokenTemplate       = "field.template"
	TokenContainerTag   = "field.containerTag"
	TokenContainerClass = "field.containerClass"
	TokenLabelClass     = "field.labelClass"
	TokenInputClass     = "field.inputClass"
	TokenHintClass      = "field.hintClass"
	TokenErrorClass     = "field.errorClass"
	TokenInvalidClass   = "field.invalidClass"
	TokenValidClass     = "field.validClass"
	TokenSummaryClass   = "summary.class"
	TokenButtonClass    = "button.class"
	TokenFormClass      = "form.class"

	// TemplateLayout names the template override for whole-form layouts.
	TemplateLayout = "forms.layout"
)

// Manifests returns fresh copies of the built-in manifests.
func Manifests() []*gotheme.Manifest {
	return []*gotheme.Manifest{bootstrap5(), bulma(), tailwind()}
}

func bootstrap5() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    Bootstrap5,
		Version: "5.3.0",
		Tokens: map[string]string{
			TokenContainerClass:               "mb-3",
			TokenLabelClass:                   "form-label",
			TokenInputClass:                   "form-control",
			TokenInputClass + ".select":       "form-select",
			TokenInputClass + ".listbox":      "form-select",
			TokenInputClass + ".checkbox":     "form-check-input",
			TokenInputClass + ".radio":        "form-check-input",
			TokenInputClass + ".range":        "form-range",
			TokenInputClass + ".color":        "form-control form-control-color",
			TokenInputClass + ".checkboxlist": NoClass,
			TokenInputClass + ".radiolist":    NoClass,
			TokenHintClass:                    "form-text",
			TokenErrorClass:                   "invalid-feedback",
			TokenInvalidClass:                 "is-invalid",
			TokenValidClass:                   "is-valid",
			TokenSummaryClass:                 "alert alert-danger",
			TokenButtonClass:                  "btn btn-primary",
		},
		Assets: gotheme.Assets{
			Prefix: "https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist",
			Files: map[string]string{
				"stylesheet": "css/bootstrap.min.css",
			},
		},
		Variants: map[string]gotheme.Variant{
			VariantFloating: {
				Tokens: map[string]string{
					TokenContainerClass: "form-floating mb-3",
					TokenTemplate:       "{input}\n{label}\n{hint}\n{error}",
				},
			},
		},
	}
}

func bulma() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    Bulma,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenContainerClass:               "field",
			TokenLabelClass:                   "label",
			TokenInputClass:                   "input",
			TokenInputClass + ".textarea":     "textarea",
			TokenInputClass + ".checkbox":     NoClass,
			TokenInputClass + ".radio":        NoClass,
			TokenInputClass + ".checkboxlist": NoClass,
			TokenInputClass + ".radiolist":    NoClass,
			TokenInputClass + ".select":       NoClass,
			TokenInputClass + ".listbox":      NoClass,
			TokenHintClass:                    "help",
			TokenErrorClass:                   "help is-danger",
			TokenInvalidClass:                 "is-danger",
			TokenValidClass:                   "is-success",
			TokenSummaryClass:                 "notification is-danger",
			TokenButtonClass:                  "button is-primary",
		},
		Assets: gotheme.Assets{
			Prefix: "https://cdn.jsdelivr.net/npm/bulma@1.0.0/css",
			Files: map[string]string{
				"stylesheet": "bulma.min.css",
			},
		},
	}
}

func tailwind() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    Tailwind,
		Version: "3.4.0",
		Tokens: map[string]string{
			TokenContainerClass:               "mb-4",
			TokenLabelClass:                   "block text-sm font-medium text-gray-700",
			TokenInputClass:                   "mt-1 block w-full rounded-md border-gray-300 shadow-sm",
			TokenInputClass + ".checkbox":     "h-4 w-4 rounded border-gray-300",
			TokenInputClass + ".radio":        "h-4 w-4 border-gray-300",
			TokenInputClass + ".checkboxlist": "space-y-1",
			TokenInputClass + ".radiolist":    "space-y-1",
			TokenHintClass:                    "mt-2 text-sm text-gray-500",
			TokenErrorClass:                   "mt-2 text-sm text-red-600",
			TokenInvalidClass:                 "border-red-500",
			TokenSummaryClass:                 "mb-4 rounded-md bg-red-50 p-4 text-sm text-red-700",
			TokenButtonClass:                  "rounded-md bg-indigo-600 px-4 py-2 text-white",
			TokenFormClass:                    "space-y-6",
		},
	}
}
