package model

// ItemDef is one assessed item/subdomain within a group
type ItemDef struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// GroupDef is one thematic grouping of items. Slice order is the canonical
// composition order for synthesis prompts.
type GroupDef struct {
	Key   string    `json:"key"`
	Title string    `json:"title"`
	Items []ItemDef `json:"items"`
}

// ToolDef describes one assessment tool: its groups and items in the fixed
// order every synthesis pass walks them in.
type ToolDef struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Groups []GroupDef `json:"groups"`
}

// Group finds a group by key
func (t *ToolDef) Group(key string) *GroupDef {
	for i := range t.Groups {
		if t.Groups[i].Key == key {
			return &t.Groups[i]
		}
	}
	return nil
}

// HasItem reports whether any group contains the item
func (t *ToolDef) HasItem(itemKey string) bool {
	for _, g := range t.Groups {
		for _, it := range g.Items {
			if it.Key == itemKey {
				return true
			}
		}
	}
	return false
}

// ItemTitle returns the display title for an item, or the key itself when
// the item is unknown (titles are presentation sugar, not identity).
func (t *ToolDef) ItemTitle(itemKey string) string {
	for _, g := range t.Groups {
		for _, it := range g.Items {
			if it.Key == itemKey {
				return it.Title
			}
		}
	}
	return itemKey
}

// ItemKeys returns all item keys of a group in definition order
func (g *GroupDef) ItemKeys() []string {
	keys := make([]string, 0, len(g.Items))
	for _, it := range g.Items {
		keys = append(keys, it.Key)
	}
	return keys
}

// ToolCatalog is the fixed set of assessment tools the platform serves
type ToolCatalog struct {
	tools   map[string]*ToolDef
	ordered []*ToolDef
}

// NewToolCatalog builds a catalog preserving definition order
func NewToolCatalog(tools ...*ToolDef) *ToolCatalog {
	c := &ToolCatalog{tools: make(map[string]*ToolDef, len(tools))}
	for _, t := range tools {
		c.tools[t.ID] = t
		c.ordered = append(c.ordered, t)
	}
	return c
}

// Tool returns a tool by ID, nil when unknown
func (c *ToolCatalog) Tool(id string) *ToolDef {
	return c.tools[id]
}

// Tools returns all tools in definition order
func (c *ToolCatalog) Tools() []*ToolDef {
	return c.ordered
}

// DefaultCatalog returns the built-in assessment tools.
func DefaultCatalog() *ToolCatalog {
	return NewToolCatalog(
		&ToolDef{
			ID:    "money-beliefs",
			Title: "Money Beliefs Profile",
			Groups: []GroupDef{
				{
					Key:   "scarcity",
					Title: "Scarcity Patterns",
					Items: []ItemDef{
						{Key: "belief", Title: "Core Belief"},
						{Key: "behavior", Title: "Spending Behavior"},
						{Key: "feeling", Title: "Emotional Response"},
						{Key: "consequence", Title: "Life Consequence"},
					},
				},
				{
					Key:   "security",
					Title: "Security & Planning",
					Items: []ItemDef{
						{Key: "saving", Title: "Saving Habits"},
						{Key: "planning", Title: "Future Planning"},
						{Key: "risk", Title: "Risk Comfort"},
					},
				},
				{
					Key:   "selfworth",
					Title: "Money & Self-Worth",
					Items: []ItemDef{
						{Key: "comparison", Title: "Social Comparison"},
						{Key: "earning", Title: "Earning Confidence"},
						{Key: "deserving", Title: "Sense of Deserving"},
					},
				},
			},
		},
		&ToolDef{
			ID:    "life-balance",
			Title: "Life Balance Wheel",
			Groups: []GroupDef{
				{
					Key:   "inner",
					Title: "Inner Life",
					Items: []ItemDef{
						{Key: "health", Title: "Health & Energy"},
						{Key: "growth", Title: "Personal Growth"},
						{Key: "purpose", Title: "Sense of Purpose"},
					},
				},
				{
					Key:   "outer",
					Title: "Outer Life",
					Items: []ItemDef{
						{Key: "career", Title: "Career & Work"},
						{Key: "finances", Title: "Finances"},
						{Key: "relationships", Title: "Relationships"},
						{Key: "environment", Title: "Living Environment"},
					},
				},
			},
		},
	)
}
