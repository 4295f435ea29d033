package classify

import (
	"context"
	_ "embed"
	"fmt"
	"github.com/go-playground/validator"
	"github.com/viant/afs"
	"github.com/viant/factgraph/graph"
	"gopkg.in/yaml.v3"
	"sort"
	"strings"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule represents a single textual indicator rule
type Rule struct {
	Name                string     `yaml:"name"`
	Role                graph.Role `yaml:"role" validate:"oneof=source sink sanitizer normal"`
	Priority            int        `yaml:"priority"`                      // lower rank is evaluated first
	Contains            []string   `yaml:"contains,omitempty"`            // identifier or description, case-insensitive
	IDContains          []string   `yaml:"idContains,omitempty"`          // identifier only, case-insensitive
	DescriptionContains []string   `yaml:"descriptionContains,omitempty"` // description only, case-insensitive
	IDPrefix            []string   `yaml:"idPrefix,omitempty"`            // case-sensitive
	IDSuffix            []string   `yaml:"idSuffix,omitempty"`            // case-sensitive
}

// Promotion forces a role over the whole accumulated node set
type Promotion struct {
	Role         graph.Role `yaml:"role" validate:"oneof=source sink sanitizer normal"`
	IDContains   []string   `yaml:"idContains,omitempty"`
	TypeContains []string   `yaml:"typeContains,omitempty"`
}

// Rules represents classification configuration
type Rules struct {
	DefaultRole     graph.Role            `yaml:"defaultRole" validate:"oneof=source sink sanitizer normal"`
	DefaultType     string                `yaml:"defaultType"`
	SensitivePrefix string                `yaml:"sensitivePrefix"`
	Rules           []*Rule               `yaml:"rules" validate:"dive"`
	TypeMapping     map[string]graph.Role `yaml:"typeMapping" validate:"dive,oneof=source sink sanitizer normal"`
	Promotion       *Promotion            `yaml:"promotion,omitempty"`
}

// Default returns built-in pathway rules
func Default() *Rules {
	rules, err := Parse(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in rules: %v", err))
	}
	return rules
}

// Parse decodes and validates YAML rules
func Parse(data []byte) (*Rules, error) {
	rules := &Rules{}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to decode rules: %w", err)
	}
	if err := rules.Init(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Load loads rules from URL
func Load(ctx context.Context, fs afs.Service, URL string) (*Rules, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules %v: %w", URL, err)
	}
	return Parse(data)
}

// Init applies defaults, validates roles and orders rules by priority
func (r *Rules) Init() error {
	if r.DefaultRole == "" {
		r.DefaultRole = graph.Normal
	}
	if r.DefaultType == "" {
		r.DefaultType = "compound"
	}
	for i, rule := range r.Rules {
		if rule == nil {
			return fmt.Errorf("rule %d is empty", i)
		}
		rule.Contains = lower(rule.Contains)
		rule.IDContains = lower(rule.IDContains)
		rule.DescriptionContains = lower(rule.DescriptionContains)
	}
	sort.SliceStable(r.Rules, func(i, j int) bool {
		return r.Rules[i].Priority < r.Rules[j].Priority
	})
	mapping := make(map[string]graph.Role, len(r.TypeMapping))
	for kind, role := range r.TypeMapping {
		mapping[strings.ToLower(kind)] = role
	}
	r.TypeMapping = mapping
	if p := r.Promotion; p != nil {
		if p.Role == "" {
			p.Role = graph.Source
		}
		p.IDContains = lower(p.IDContains)
		p.TypeContains = lower(p.TypeContains)
	}
	if err := validator.New().Struct(r); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	return nil
}

// Rule returns a rule by name
func (r *Rules) Rule(name string) *Rule {
	for _, rule := range r.Rules {
		if rule.Name == name {
			return rule
		}
	}
	return nil
}

// Classify returns the role of the first matching rule
func (r *Rules) Classify(id, description string) graph.Role {
	lowerID := strings.ToLower(id)
	lowerDesc := strings.ToLower(description)
	for _, rule := range r.Rules {
		if rule.match(id, lowerID, lowerDesc) {
			return rule.Role
		}
	}
	return r.DefaultRole
}

// MapType maps a declared node type to a role
func (r *Rules) MapType(kind string) graph.Role {
	if role, ok := r.TypeMapping[strings.ToLower(kind)]; ok {
		return role
	}
	return r.DefaultRole
}

// Match returns true if rule matches identifier or description
func (r *Rule) Match(id, description string) bool {
	return r.match(id, strings.ToLower(id), strings.ToLower(description))
}

func (r *Rule) match(id, lowerID, lowerDesc string) bool {
	if containsAny(lowerID, r.Contains) || containsAny(lowerDesc, r.Contains) {
		return true
	}
	if containsAny(lowerID, r.IDContains) || containsAny(lowerDesc, r.DescriptionContains) {
		return true
	}
	for _, prefix := range r.IDPrefix {
		if prefix != "" && strings.HasPrefix(id, prefix) {
			return true
		}
	}
	for _, suffix := range r.IDSuffix {
		if suffix != "" && strings.HasSuffix(id, suffix) {
			return true
		}
	}
	return false
}

func containsAny(text string, tokens []string) bool {
	if text == "" {
		return false
	}
	for _, token := range tokens {
		if token != "" && strings.Contains(text, token) {
			return true
		}
	}
	return false
}

func lower(tokens []string) []string {
	for i, token := range tokens {
		tokens[i] = strings.ToLower(token)
	}
	return tokens
}
