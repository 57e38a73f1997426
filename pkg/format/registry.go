package format

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/swiftfmt/pkg/options"
)

// Registry holds the rules available to a run. Registries are built
// explicitly and passed to the scheduler; there is no global instance.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Rule),
	}
}

// Register adds a rule to the registry.
// A rule whose name is already registered is rejected.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[rule.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, rule.Name())
	}
	r.byName[rule.Name()] = rule
	return nil
}

// MustRegister is Register for static rule sets; it panics on error.
func (r *Registry) MustRegister(rules ...Rule) {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
}

// Get retrieves a rule by name.
func (r *Registry) Get(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byName[name]
	return rule, ok
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Rules returns all registered rules sorted by name.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byName))
	for _, rule := range r.byName {
		result = append(result, rule)
	}

	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.Name(), b.Name())
	})

	return result
}

// Names returns all registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byName))
	for name := range r.byName {
		result = append(result, name)
	}

	slices.Sort(result)
	return result
}

// Validate checks the registry's static metadata: every runsAfter target is
// registered, every option key is known to descriptors, and the runsAfter
// graph over all rules is acyclic.
func (r *Registry) Validate(descriptors *options.Descriptors) error {
	var errs []error

	for _, rule := range r.Rules() {
		for _, dep := range rule.RunsAfter() {
			if _, ok := r.Get(dep); !ok {
				errs = append(errs, fmt.Errorf("%w: %s runs after %s", ErrUnknownRule, rule.Name(), dep))
			}
		}
		if descriptors == nil {
			continue
		}
		for _, key := range slices.Concat(rule.Options(), rule.SharedOptions()) {
			if !descriptors.Has(key) {
				errs = append(errs, fmt.Errorf("%w: %s uses %s", ErrUnknownOption, rule.Name(), key))
			}
		}
	}

	if len(errs) == 0 {
		all := make(map[string]bool, r.Len())
		for _, name := range r.Names() {
			all[name] = true
		}
		if _, err := Schedule(r, all); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// RuleInfo describes a rule for listings.
type RuleInfo struct {
	Name           string   `json:"name"`
	Help           string   `json:"help"`
	DefaultEnabled bool     `json:"defaultEnabled"`
	Options        []string `json:"options,omitempty"`
	SharedOptions  []string `json:"sharedOptions,omitempty"`
	RunsAfter      []string `json:"runsAfter,omitempty"`
	RunOnce        bool     `json:"runOnce,omitempty"`
	Deprecated     string   `json:"deprecated,omitempty"`
}

// List describes every registered rule, sorted by name.
func (r *Registry) List() []RuleInfo {
	rules := r.Rules()
	infos := make([]RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, RuleInfo{
			Name:           rule.Name(),
			Help:           rule.Help(),
			DefaultEnabled: rule.DefaultEnabled(),
			Options:        rule.Options(),
			SharedOptions:  rule.SharedOptions(),
			RunsAfter:      rule.RunsAfter(),
			RunOnce:        rule.RunOnce(),
			Deprecated:     rule.Deprecated(),
		})
	}
	return infos
}
