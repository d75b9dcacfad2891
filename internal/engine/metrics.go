package engine

import (
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// reportUsage evaluates every resource at the operating point and classifies
// which ones bind. A resource with less than one unit of slack is exhausted.
// All exhausted wins over a single one; otherwise the first exhausted
// resource in input order is reported.
func reportUsage(p *model.Problem, at model.Point) ([]model.ResourceUsage, model.Binding) {
	usage := make([]model.ResourceUsage, p.NumConstraints())
	exhausted := 0
	first := -1
	for i := range usage {
		c := p.Constraint(i)
		used := c.Usage(at)
		u := model.ResourceUsage{
			Name:     p.ResourceName(i),
			Used:     used,
			Capacity: c.Limit,
			Slack:    c.Limit - used,
		}
		if c.Limit > 0 {
			u.Utilization = used / c.Limit
		}
		u.Exhausted = u.Slack < model.ExhaustedThreshold
		if u.Exhausted {
			exhausted++
			if first < 0 {
				first = i
			}
		}
		usage[i] = u
	}

	switch {
	case len(usage) > 0 && exhausted == len(usage):
		return usage, model.Binding{Kind: model.BindingAll, Resource: -1}
	case first >= 0:
		return usage, model.Binding{Kind: model.BindingResource, Resource: first, Name: usage[first].Name}
	default:
		return usage, model.Binding{Kind: model.BindingSlack, Resource: -1}
	}
}
