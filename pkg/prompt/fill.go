package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/config"
	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/widget"
)

// Option configures Fill.
type Option func(*filler)

type filler struct {
	resolver *widget.Resolver
	only     map[string]struct{}
}

// WithResolver picks kinds for fields that declare no widget.
func WithResolver(resolver *widget.Resolver) Option {
	return func(f *filler) {
		f.resolver = resolver
	}
}

// WithOnly limits prompting to the named attributes.
func WithOnly(attributes ...string) Option {
	return func(f *filler) {
		if f.only == nil {
			f.only = make(map[string]struct{}, len(attributes))
		}
		for _, name := range attributes {
			f.only[strings.TrimSpace(name)] = struct{}{}
		}
	}
}

// Fill asks for every field of def in order and stores the answers in form.
// Hidden and file fields keep their current value.
func Fill(ctx context.Context, driver Driver, def config.FormDefinition, form *model.Form, opts ...Option) error {
	if driver == nil {
		return errors.New("prompt: driver is required")
	}
	if form == nil {
		return ErrNoModel
	}
	f := &filler{}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.resolver == nil {
		f.resolver = widget.NewResolver()
	}

	if title := strings.TrimSpace(def.FormName); title != "" {
		if err := driver.Info(ctx, title); err != nil {
			return err
		}
	}
	for _, fd := range def.Fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := strings.TrimSpace(fd.Attribute)
		if f.only != nil {
			if _, ok := f.only[name]; !ok {
				continue
			}
		}
		kind := fd.Kind()
		if kind == "" {
			kind = f.resolver.Resolve(form, name)
		}
		value, ok, err := ask(ctx, driver, kind, fd, form, name)
		if err != nil {
			return fmt.Errorf("prompt: %s: %w", name, err)
		}
		if !ok {
			continue
		}
		if err := form.Set(name, value); err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
	}
	return nil
}

func ask(ctx context.Context, driver Driver, kind widget.Kind, fd config.FieldDefinition, form *model.Form, name string) (any, bool, error) {
	message := form.AttributeLabel(name)
	help := form.AttributeHint(name)
	current := form.AttributeValue(name)
	currentText, _ := html.Stringify(current)

	switch kind {
	case widget.KindHidden, widget.KindFile:
		return nil, false, nil

	case widget.KindCheckbox, widget.KindRadio:
		answer, err := driver.Confirm(ctx, ConfirmConfig{Message: message, Help: help, Default: currentText == "1"})
		return answer, err == nil, err

	case widget.KindPassword:
		answer, err := driver.Password(ctx, InputConfig{Message: message, Help: help})
		return answer, err == nil, err

	case widget.KindTextarea:
		answer, err := driver.TextArea(ctx, TextAreaConfig{Message: message, Help: help, Default: currentText})
		return answer, err == nil, err

	case widget.KindNumber, widget.KindRange:
		answer, err := driver.Input(ctx, InputConfig{
			Message:   message,
			Help:      help,
			Default:   currentText,
			Validator: validateNumber,
		})
		if err != nil {
			return nil, false, err
		}
		value, err := parseNumber(answer)
		return value, err == nil, err

	case widget.KindCheckboxList, widget.KindListBox:
		return askMany(ctx, driver, fd, message, help, current)

	case widget.KindSelect, widget.KindRadioList:
		if fd.Multiple {
			return askMany(ctx, driver, fd, message, help, current)
		}
		return askOne(ctx, driver, fd, message, help, currentText)

	default:
		answer, err := driver.Input(ctx, InputConfig{Message: message, Help: help, Default: currentText})
		return answer, err == nil, err
	}
}

func askOne(ctx context.Context, driver Driver, fd config.FieldDefinition, message, help, current string) (any, bool, error) {
	choices := flatten(fd.Items, "")
	if fd.Prompt != nil {
		choices = append([]choice{{label: fd.Prompt.Label, value: fd.Prompt.Value}}, choices...)
	}
	if len(choices) == 0 {
		return nil, false, nil
	}
	idx, err := driver.Select(ctx, SelectConfig{
		Message:      message,
		Help:         help,
		Options:      labels(choices),
		DefaultIndex: indexOfValue(choices, current),
	})
	if err != nil {
		return nil, false, err
	}
	if idx < 0 || idx >= len(choices) {
		return nil, false, fmt.Errorf("selection %d out of range", idx)
	}
	return choices[idx].value, true, nil
}

func askMany(ctx context.Context, driver Driver, fd config.FieldDefinition, message, help string, current any) (any, bool, error) {
	choices := flatten(fd.Items, "")
	if len(choices) == 0 {
		return nil, false, nil
	}
	selected := map[string]struct{}{}
	switch v := current.(type) {
	case []string:
		for _, s := range v {
			selected[s] = struct{}{}
		}
	case string:
		selected[v] = struct{}{}
	}
	var defaults []int
	for i, c := range choices {
		if _, ok := selected[c.value]; ok {
			defaults = append(defaults, i)
		}
	}

	indices, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  message,
		Help:     help,
		Options:  labels(choices),
		Defaults: defaults,
	})
	if err != nil {
		return nil, false, err
	}
	values := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(choices) {
			values = append(values, choices[idx].value)
		}
	}
	return values, true, nil
}

type choice struct {
	label string
	value string
}

// flatten turns optgroups into "Group / Label" choices.
func flatten(items []widget.Item, prefix string) []choice {
	var out []choice
	for _, item := range items {
		label := item.Label
		if label == "" {
			label = item.Value
		}
		if prefix != "" {
			label = prefix + " / " + label
		}
		if item.IsGroup() {
			out = append(out, flatten(item.Options, label)...)
			continue
		}
		out = append(out, choice{label: label, value: item.Value})
	}
	return out
}

func labels(choices []choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.label
	}
	return out
}

func indexOfValue(choices []choice, value string) int {
	for i, c := range choices {
		if c.value == value {
			return i
		}
	}
	return -1
}

func validateNumber(s string) error {
	_, err := parseNumber(s)
	return err
}

// parseNumber returns nil for blank input, an int64 for whole numbers and a
// float64 otherwise.
func parseNumber(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	return f, nil
}
