package runtime

import (
	"context"
	"strconv"
	"strings"

	"github.com/formweave/formweave/pkg/domain"
	"github.com/formweave/formweave/pkg/nocode"
)

const (
	stepHeadlineLevel     = 1
	instanceHeadlineLevel = 2

	// defaultNoDataText is rendered for an empty replicating container
	// when the definition configures nothing of its own.
	defaultNoDataText = "no entries"

	// instanceIndexPlaceholder in a headline template is substituted
	// with the 1-based instance index.
	instanceIndexPlaceholder = "#"
)

// rowsFor flattens one element into printable rows. Exclusion rules:
// technical inputs always; disabled inputs in template mode; invisible
// elements along with their entire subtree.
func (r *run) rowsFor(ctx context.Context, el *domain.Element, prefix string) ([]domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	effective, visible, err := r.prepare(ctx, el, prefix)
	if err != nil {
		return nil, err
	}
	if !visible || effective.Technical {
		return nil, nil
	}
	if r.template && effective.Disabled {
		return nil, nil
	}

	resolvedID := domain.Resolve(effective.ID, prefix)

	switch effective.Type {
	case domain.TypeStep:
		children, err := r.childRows(ctx, effective, prefix)
		if err != nil {
			return nil, err
		}
		// An empty step contributes nothing: no orphaned headline.
		if len(children) == 0 {
			return nil, nil
		}
		rows := make([]domain.Row, 0, len(children)+1)
		rows = append(rows, domain.Headline{Text: effective.DisplayLabel(), Level: stepHeadlineLevel})
		return append(rows, children...), nil

	case domain.TypeGroup:
		return r.childRows(ctx, effective, prefix)

	case domain.TypeReplicatingContainer:
		return r.replicationRows(ctx, effective, resolvedID)

	case domain.TypeTableInput:
		return []domain.Row{r.tableRow(effective, resolvedID)}, nil

	default:
		text := ""
		if !r.template {
			text = nocode.ToString(r.dctx.GetValue(resolvedID))
		}
		return []domain.Row{domain.Value{Label: effective.DisplayLabel(), Text: text}}, nil
	}
}

func (r *run) childRows(ctx context.Context, el *domain.Element, prefix string) ([]domain.Row, error) {
	var rows []domain.Row
	for _, child := range el.Children {
		childRows, err := r.rowsFor(ctx, child, prefix)
		if err != nil {
			return nil, err
		}
		rows = append(rows, childRows...)
	}
	return rows, nil
}

// replicationRows expands a container once per instance. In data mode
// the stored instance-id list drives the expansion; an empty list
// yields a single "no data" row. In template mode a heuristic count
// derived from the replication bounds drives it.
func (r *run) replicationRows(ctx context.Context, el *domain.Element, resolvedID string) ([]domain.Row, error) {
	var instanceIDs []string
	if r.template {
		count := templateInstanceCount(el, r.engine.templateSetCount)
		for i := 1; i <= count; i++ {
			instanceIDs = append(instanceIDs, strconv.Itoa(i))
		}
	} else {
		instanceIDs = r.dctx.InstanceIDs(resolvedID)
		if len(instanceIDs) == 0 {
			text := el.NoDataText
			if text == "" {
				text = defaultNoDataText
			}
			return []domain.Row{domain.Value{Label: el.DisplayLabel(), Text: text}}, nil
		}
	}

	var rows []domain.Row
	for index, instanceID := range instanceIDs {
		instanceRows, err := r.childRows(ctx, el, domain.InstancePrefix(resolvedID, instanceID))
		if err != nil {
			return nil, err
		}
		if len(instanceRows) == 0 {
			continue
		}
		markInstanceBoundaries(instanceRows)
		rows = append(rows, domain.Headline{
			Text:  instanceHeadline(el, index+1),
			Level: instanceHeadlineLevel,
		})
		rows = append(rows, instanceRows...)
	}
	return rows, nil
}

// markInstanceBoundaries tags the first and last value rows of one
// instance so a renderer can visually group them.
func markInstanceBoundaries(rows []domain.Row) {
	for i := range rows {
		if v, ok := rows[i].(domain.Value); ok {
			v.GroupStart = true
			rows[i] = v
			break
		}
	}
	for i := len(rows) - 1; i >= 0; i-- {
		if v, ok := rows[i].(domain.Value); ok {
			v.GroupEnd = true
			rows[i] = v
			break
		}
	}
}

func instanceHeadline(el *domain.Element, index int) string {
	template := el.HeadlineTemplate
	if template == "" {
		template = el.DisplayLabel() + " " + instanceIndexPlaceholder
	}
	return strings.ReplaceAll(template, instanceIndexPlaceholder, strconv.Itoa(index))
}

// templateInstanceCount decides how many blank instances a template
// render expands: the required minimum when set, else the maximum
// capped at the fallback, else the fallback itself.
func templateInstanceCount(el *domain.Element, fallback int) int {
	if el.MinimumRequiredSets > 0 {
		return el.MinimumRequiredSets
	}
	if el.MaximumSets > 0 && el.MaximumSets < fallback {
		return el.MaximumSets
	}
	return fallback
}

func (r *run) tableRow(el *domain.Element, resolvedID string) domain.Row {
	table := domain.Table{Headers: el.Headers}
	if r.template {
		return table
	}
	raw, _ := r.dctx.GetValue(resolvedID).([]any)
	for _, rowRaw := range raw {
		cells, ok := rowRaw.([]any)
		if !ok {
			continue
		}
		row := make([]string, 0, len(cells))
		for _, cell := range cells {
			row = append(row, nocode.ToString(cell))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
