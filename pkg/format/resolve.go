package format

import (
	"errors"
	"fmt"
)

// ResolveRules determines which rules run: the registry's default-enabled
// rules, minus disable, plus enable. An explicit enable wins over a disable of
// the same rule. Unknown names are reported together.
func ResolveRules(registry *Registry, enable, disable []string) (map[string]bool, error) {
	if err := checkNames(registry, enable, disable); err != nil {
		return nil, err
	}

	enabled := make(map[string]bool)
	for _, rule := range registry.Rules() {
		if rule.DefaultEnabled() {
			enabled[rule.Name()] = true
		}
	}
	for _, name := range disable {
		delete(enabled, name)
	}
	for _, name := range enable {
		enabled[name] = true
	}

	return enabled, nil
}

// OnlyRules enables exactly the named rules.
func OnlyRules(registry *Registry, names []string) (map[string]bool, error) {
	if err := checkNames(registry, names); err != nil {
		return nil, err
	}

	enabled := make(map[string]bool, len(names))
	for _, name := range names {
		enabled[name] = true
	}
	return enabled, nil
}

func checkNames(registry *Registry, lists ...[]string) error {
	var errs []error
	for _, names := range lists {
		for _, name := range names {
			if _, ok := registry.Get(name); !ok {
				errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownRule, name))
			}
		}
	}
	return errors.Join(errs...)
}
