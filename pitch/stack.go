package pitch

// Stack is a vertical via-to-metal-to-metal grouping inferred from
// overlapping bounding boxes across three layers. Immutable; valid for one
// analysis run.
type Stack struct {
	Via    Rect
	MetalA Rect
	MetalB Rect
	Center Point
}

// MatchPolicy decides which metal partners qualify a via as a stack.
// Candidate slices arrive in table insertion order; implementations must
// preserve that order when breaking ties so results stay reproducible.
type MatchPolicy interface {
	Match(via Rect, metalA, metalB []Rect, eps float64) (Stack, bool)
}

// ValidMatchPolicies is the set of recognized match policy names.
// Shared by Config.Validate() and NewMatchPolicy() to avoid duplication.
var ValidMatchPolicies = map[string]bool{"": true, "any-overlap": true, "best-overlap": true}

// NewMatchPolicy creates a match policy by name. An empty string defaults to
// the permissive any-overlap policy.
func NewMatchPolicy(name string) (MatchPolicy, error) {
	switch name {
	case "", "any-overlap":
		return &AnyOverlap{}, nil
	case "best-overlap":
		return &BestOverlap{}, nil
	default:
		return nil, NewError(CodeInvalidPolicy, "unknown match policy %q; valid policies: [any-overlap, best-overlap]", name)
	}
}

// AnyOverlap accepts a via that overlaps at least one rectangle on each
// metal layer. The recorded partners are the first overlapping candidates;
// downstream pitch estimation consumes only the center coordinates, so no
// best-partner selection is needed.
type AnyOverlap struct{}

func (p *AnyOverlap) Match(via Rect, metalA, metalB []Rect, eps float64) (Stack, bool) {
	ma, okA := firstOverlap(via, metalA, eps)
	mb, okB := firstOverlap(via, metalB, eps)
	if !okA || !okB {
		return Stack{}, false
	}
	return Stack{Via: via, MetalA: ma, MetalB: mb, Center: via.Center()}, true
}

// BestOverlap picks, per metal layer, the overlapping candidate with the
// maximum intersection area. The first-encountered candidate wins ties, so
// the result is deterministic for a given table order.
type BestOverlap struct{}

func (p *BestOverlap) Match(via Rect, metalA, metalB []Rect, eps float64) (Stack, bool) {
	ma, okA := bestOverlap(via, metalA, eps)
	mb, okB := bestOverlap(via, metalB, eps)
	if !okA || !okB {
		return Stack{}, false
	}
	return Stack{Via: via, MetalA: ma, MetalB: mb, Center: via.Center()}, true
}

func firstOverlap(via Rect, candidates []Rect, eps float64) (Rect, bool) {
	for _, c := range candidates {
		if via.Overlaps(c, eps) {
			return c, true
		}
	}
	return Rect{}, false
}

func bestOverlap(via Rect, candidates []Rect, eps float64) (Rect, bool) {
	var best Rect
	bestArea := 0.0
	found := false
	for _, c := range candidates {
		if !via.Overlaps(c, eps) {
			continue
		}
		area := via.IntersectionArea(c)
		if area <= 0 {
			continue
		}
		if !found || area > bestArea {
			best, bestArea, found = c, area, true
		}
	}
	return best, found
}

// FindStacks matches every via rectangle against the metal layers named by
// roles, using the given policy. Vias are visited in table insertion order.
// A cell filter that matches nothing yields zero stacks, not an error.
func FindStacks(table LayerTable, roles LayerRoles, match MatchConfig, policy MatchPolicy) []Stack {
	vias := filterCell(table.Layer(roles.Via), match.Cell)
	metalA := filterCell(table.Layer(roles.MetalA), match.Cell)
	metalB := filterCell(table.Layer(roles.MetalB), match.Cell)

	var stacks []Stack
	for _, via := range vias {
		if s, ok := policy.Match(via, metalA, metalB, match.Eps); ok {
			stacks = append(stacks, s)
		}
	}
	return stacks
}

func filterCell(rects []Rect, cell string) []Rect {
	if cell == "" {
		return rects
	}
	var out []Rect
	for _, r := range rects {
		if r.CellName == cell {
			out = append(out, r)
		}
	}
	return out
}
