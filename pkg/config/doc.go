// Package config loads field presets and form definitions from JSON or YAML
// documents. A document may declare either or both sections:
//
//	presets:
//	  compact:
//	    containerClass: mb-2
//	forms:
//	  login:
//	    formName: LoginForm
//	    preset: compact
//	    fields:
//	      - attribute: login
//	        rules: {required: true, minLength: 3}
//
// Names must be unique across every document of a store.
package config
