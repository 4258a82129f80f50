// Package compiler turns raw form definitions (nested key-value
// documents in JSON or YAML) into the strongly-typed element tree.
// Parsing is eager and strict: malformed definitions are rejected at
// this boundary instead of surfacing as ad-hoc nils during evaluation.
package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/formweave/formweave/pkg/domain"
)

// legacyTypeCodes maps the numeric discriminators of older stored
// definitions onto the variant tags. New definitions use the string
// names directly.
var legacyTypeCodes = map[int]domain.ElementType{
	1:  domain.TypeStep,
	2:  domain.TypeGroup,
	3:  domain.TypeReplicatingContainer,
	10: domain.TypeTextInput,
	11: domain.TypeTextareaInput,
	12: domain.TypeNumberInput,
	13: domain.TypeDateInput,
	14: domain.TypeCheckboxInput,
	15: domain.TypeSelectInput,
	16: domain.TypeTableInput,
}

// Parse decodes a raw definition document. JSON is detected by the
// leading byte; everything else is treated as YAML.
func Parse(data []byte) (*domain.Element, error) {
	raw, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	root, err := parseElement(raw, "")
	if err != nil {
		return nil, err
	}
	if err := ValidateStructure(root); err != nil {
		return nil, err
	}
	return root, nil
}

func decodeDocument(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty definition document")
	}
	var raw map[string]any
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON definition: %w", err)
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML definition: %w", err)
	}
	return raw, nil
}

// elementDef is the loosely-typed decoding target; mapstructure carries
// the scalar attributes, functions and children are handled by hand.
type elementDef struct {
	ID                  string            `mapstructure:"id"`
	Label               string            `mapstructure:"label"`
	Metadata            map[string]string `mapstructure:"metadata"`
	Required            bool              `mapstructure:"required"`
	Disabled            bool              `mapstructure:"disabled"`
	Technical           bool              `mapstructure:"technical"`
	DestinationKey      string            `mapstructure:"destination_key"`
	Options             []string          `mapstructure:"options"`
	Headers             []string          `mapstructure:"headers"`
	MinimumRequiredSets int               `mapstructure:"minimum_required_sets"`
	MaximumSets         int               `mapstructure:"maximum_sets"`
	HeadlineTemplate    string            `mapstructure:"headline_template"`
	NoDataText          string            `mapstructure:"no_data_text"`
}

func parseElement(raw map[string]any, path string) (*domain.Element, error) {
	id, _ := raw["id"].(string)
	at := path + "/" + id
	if id == "" {
		return nil, fmt.Errorf("element at %q: missing id", path+"/")
	}

	elType, err := parseType(raw["type"])
	if err != nil {
		return nil, fmt.Errorf("element %q: %w", at, err)
	}

	var def elementDef
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("element %q: %w", at, err)
	}

	el := &domain.Element{
		ID:                  def.ID,
		Type:                elType,
		Label:               def.Label,
		Metadata:            def.Metadata,
		Required:            def.Required,
		Disabled:            def.Disabled,
		Technical:           def.Technical,
		DestinationKey:      def.DestinationKey,
		Options:             def.Options,
		Headers:             def.Headers,
		MinimumRequiredSets: def.MinimumRequiredSets,
		MaximumSets:         def.MaximumSets,
		HeadlineTemplate:    def.HeadlineTemplate,
		NoDataText:          def.NoDataText,
	}

	for key, target := range map[string]**domain.Function{
		"visibility":    &el.Visibility,
		"patch":         &el.Patch,
		"validate":      &el.Validate,
		"compute_value": &el.ComputeValue,
	} {
		fnRaw, ok := raw[key]
		if !ok || fnRaw == nil {
			continue
		}
		fn, err := parseFunction(fnRaw)
		if err != nil {
			return nil, fmt.Errorf("element %q: %s: %w", at, key, err)
		}
		*target = fn
	}

	if (el.Validate != nil || el.ComputeValue != nil) && !el.IsInput() {
		return nil, fmt.Errorf("element %q: validate/compute_value only apply to input elements", at)
	}

	// A patch must yield an attribute object; a condition set can only
	// yield a boolean, so it is rejected here rather than silently
	// ignored at evaluation time.
	if el.Patch != nil && el.Patch.NoCode != nil {
		return nil, fmt.Errorf("element %q: patch must be a script function", at)
	}

	childrenRaw, ok := raw["children"]
	if ok && childrenRaw != nil {
		if !el.IsContainer() {
			return nil, fmt.Errorf("element %q: type %q cannot own children", at, el.Type)
		}
		list, ok := childrenRaw.([]any)
		if !ok {
			return nil, fmt.Errorf("element %q: children must be a list", at)
		}
		for i, childRaw := range list {
			childMap, ok := childRaw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("element %q: child %d is not an object", at, i)
			}
			child, err := parseElement(childMap, at)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
		}
	}

	return el, nil
}

func parseType(raw any) (domain.ElementType, error) {
	switch t := raw.(type) {
	case nil:
		return "", fmt.Errorf("missing type")
	case string:
		et := domain.ElementType(t)
		if !domain.KnownType(et) {
			return "", fmt.Errorf("unknown type %q", t)
		}
		return et, nil
	case int:
		return legacyType(t)
	case int64:
		return legacyType(int(t))
	case float64:
		return legacyType(int(t))
	default:
		return "", fmt.Errorf("type must be a string or a legacy numeric code, got %T", raw)
	}
}

func legacyType(code int) (domain.ElementType, error) {
	et, ok := legacyTypeCodes[code]
	if !ok {
		return "", fmt.Errorf("unknown legacy type code %d", code)
	}
	return et, nil
}

// parseFunction decodes the Function sum: {"code": "..."} for script
// snippets, or a condition-set object for no-code logic. Exactly one
// shape must be present.
func parseFunction(raw any) (*domain.Function, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("function must be an object, got %T", raw)
	}

	code, hasCode := m["code"].(string)
	if hasCode && code != "" {
		if len(m) > 1 {
			return nil, fmt.Errorf("function cannot mix code and no-code attributes")
		}
		return &domain.Function{Code: code}, nil
	}

	set, err := parseConditionSet(m)
	if err != nil {
		return nil, err
	}
	return &domain.Function{NoCode: set}, nil
}

func parseConditionSet(m map[string]any) (*domain.ConditionSet, error) {
	set := &domain.ConditionSet{Mode: domain.ModeAll}

	if msg, ok := m["unmet_message"].(string); ok {
		set.UnmetMessage = msg
	}

	// Shorthand: {"all": [...]} or {"any": [...]}.
	for _, mode := range []domain.ConditionMode{domain.ModeAll, domain.ModeAny} {
		if members, ok := m[string(mode)]; ok {
			set.Mode = mode
			return set, parseMembers(set, members)
		}
	}

	// Canonical: {"mode": ..., "conditions": [...], "sets": [...]}.
	if mode, ok := m["mode"].(string); ok {
		switch domain.ConditionMode(mode) {
		case domain.ModeAll, domain.ModeAny:
			set.Mode = domain.ConditionMode(mode)
		default:
			return nil, fmt.Errorf("unknown condition mode %q", mode)
		}
	}
	if conditions, ok := m["conditions"]; ok {
		if err := parseMembers(set, conditions); err != nil {
			return nil, err
		}
	}
	if sets, ok := m["sets"]; ok {
		if err := parseMembers(set, sets); err != nil {
			return nil, err
		}
	}
	if len(set.Conditions) == 0 && len(set.Sets) == 0 {
		return nil, fmt.Errorf("condition set has no members")
	}
	return set, nil
}

// parseMembers sorts raw members into conditions (objects with an
// "operator" key) and nested sets (everything else).
func parseMembers(set *domain.ConditionSet, raw any) error {
	list, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("condition members must be a list, got %T", raw)
	}
	for i, memberRaw := range list {
		m, ok := memberRaw.(map[string]any)
		if !ok {
			return fmt.Errorf("condition member %d is not an object", i)
		}
		if _, isCondition := m["operator"]; isCondition {
			cond, err := parseCondition(m)
			if err != nil {
				return fmt.Errorf("condition member %d: %w", i, err)
			}
			set.Conditions = append(set.Conditions, cond)
			continue
		}
		nested, err := parseConditionSet(m)
		if err != nil {
			return fmt.Errorf("condition member %d: %w", i, err)
		}
		set.Sets = append(set.Sets, nested)
	}
	return nil
}

func parseCondition(m map[string]any) (*domain.Condition, error) {
	cond := &domain.Condition{}
	var ok bool
	if cond.Operator, ok = m["operator"].(string); !ok || cond.Operator == "" {
		return nil, fmt.Errorf("condition missing operator")
	}
	if cond.Reference, ok = m["reference"].(string); !ok || cond.Reference == "" {
		return nil, fmt.Errorf("condition missing reference")
	}
	cond.Target, _ = m["target"].(string)
	cond.Value = m["value"]
	if cond.Target != "" && cond.Value != nil {
		return nil, fmt.Errorf("condition cannot carry both target and literal value")
	}
	return cond, nil
}
