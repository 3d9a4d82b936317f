package pipeline

import (
	"fmt"

	"chartisan/internal/types"
)

// artifactTemplate is the structural contract for one component type: a
// literal example embedded in construction prompts, plus the key paths a
// candidate payload must contain. Validation checks presence only; values
// are model-generated content, not caller data.
type artifactTemplate struct {
	example  string
	required []string
}

var envelopePaths = []string{
	"title",
	"description",
	"component_type",
	"style.width",
	"style.height",
}

var templates = map[types.ComponentType]artifactTemplate{
	types.ComponentTable: {
		example: `{
  "title": "Quarterly Revenue by Region",
  "description": "One sentence describing what the table shows",
  "component_type": "table",
  "style": {"width": "800px", "height": "500px"},
  "data": {
    "headers": ["Region", "Q1", "Q2"],
    "rows": [["North", "120", "135"], ["South", "98", "110"]]
  },
  "configuration": {"sortable": true}
}`,
		required: append([]string{"data.headers", "data.rows"}, envelopePaths...),
	},
	types.ComponentChart: {
		example: `{
  "title": "Monthly Active Users",
  "description": "One sentence describing what the chart shows",
  "component_type": "chart",
  "component_subtype": "bar",
  "style": {"width": "800px", "height": "500px"},
  "data": {
    "labels": ["Jan", "Feb", "Mar"],
    "values": [
      {"entity": "Product A", "data": [120, 140, 160]},
      {"entity": "Product B", "data": [80, 95, 90]}
    ]
  },
  "configuration": {
    "axes": {"x": "Month", "y": "Users"},
    "legend": {"position": "bottom"}
  }
}`,
		required: append([]string{
			"data.labels",
			"data.values[].entity",
			"data.values[].data",
			"configuration.axes",
			"configuration.legend",
		}, envelopePaths...),
	},
	types.ComponentCard: {
		example: `{
  "title": "Key Metrics Summary",
  "description": "One sentence describing what the card shows",
  "component_type": "card",
  "style": {"width": "400px", "height": "300px"},
  "data": {
    "metrics": [
      {"label": "Revenue", "value": "1.2M", "trend": "up", "description": "vs last quarter"}
    ]
  },
  "configuration": {}
}`,
		required: append([]string{"data.metrics"}, envelopePaths...),
	},
}

// templateFor returns the structural contract for a component type. Text has
// no template; it never reaches the builder.
func templateFor(component types.ComponentType) (artifactTemplate, bool) {
	t, ok := templates[component]
	return t, ok
}

// validatePayload checks that every required key path of the template is
// present in the payload. The first missing path is reported.
func (t artifactTemplate) validatePayload(payload Object) error {
	for _, path := range t.required {
		if !payload.Lookup(path) {
			return fmt.Errorf("%w: %s", errMissingKey, path)
		}
	}
	return nil
}
