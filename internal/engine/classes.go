package engine

// ClassName identifies a character class.
type ClassName string

const (
	ClassTechnomancer    ClassName = "Technomancer"
	ClassCodeWarrior     ClassName = "Code Warrior"
	ClassDataWizard      ClassName = "Data Wizard"
	ClassCyberKnight     ClassName = "Cyber Knight"
	ClassDigitalAssassin ClassName = "Digital Assassin"
	ClassSystemAdmin     ClassName = "System Admin"
)

// DefaultClass is what unknown class names resolve to.
const DefaultClass = ClassTechnomancer

// ClassDefinition describes one character class. Values handed out by the catalog
// are copies; mutating them never affects the catalog.
type ClassDefinition struct {
	Name          ClassName
	Description   string
	Icon          string
	BaseStats     Stats
	GrowthStats   Stats
	CategoryBonus map[Category]float64
}

func (d ClassDefinition) clone() ClassDefinition {
	bonus := make(map[Category]float64, len(d.CategoryBonus))
	for k, v := range d.CategoryBonus {
		bonus[k] = v
	}
	d.BaseStats = d.BaseStats.Clone()
	d.GrowthStats = d.GrowthStats.Clone()
	d.CategoryBonus = bonus
	return d
}

// ClassCatalog is a read-only registry of class definitions.
type ClassCatalog struct {
	order []ClassName
	defs  map[ClassName]ClassDefinition
}

// NewClassCatalog builds a catalog from defs, keeping their order. Unknown names
// resolve to DefaultClass, or to the first definition when DefaultClass is not
// registered. Duplicate names keep the first definition.
func NewClassCatalog(defs []ClassDefinition) *ClassCatalog {
	c := &ClassCatalog{defs: make(map[ClassName]ClassDefinition, len(defs))}
	for _, d := range defs {
		if _, dup := c.defs[d.Name]; dup {
			continue
		}
		c.order = append(c.order, d.Name)
		c.defs[d.Name] = d.clone()
	}
	return c
}

// Catalog is the built-in class registry.
var Catalog = NewClassCatalog(builtinClasses())

// Has reports whether name is registered.
func (c *ClassCatalog) Has(name ClassName) bool {
	_, ok := c.defs[name]
	return ok
}

// Resolve returns name if registered, DefaultClass otherwise.
func (c *ClassCatalog) Resolve(name ClassName) ClassName {
	if c.Has(name) {
		return name
	}
	if c.Has(DefaultClass) || len(c.order) == 0 {
		return DefaultClass
	}
	return c.order[0]
}

// Get returns the definition for name, falling back to the default class.
func (c *ClassCatalog) Get(name ClassName) ClassDefinition {
	d, ok := c.defs[c.Resolve(name)]
	if !ok {
		return ClassDefinition{Name: DefaultClass}
	}
	return d.clone()
}

// Names returns class names in registration order.
func (c *ClassCatalog) Names() []ClassName {
	out := make([]ClassName, len(c.order))
	copy(out, c.order)
	return out
}

// BonusFor returns the XP multiplier the class earns for category; 1.0 when the
// class has no bonus for it.
func (c *ClassCatalog) BonusFor(name ClassName, category Category) float64 {
	d, ok := c.defs[c.Resolve(name)]
	if !ok {
		return 1.0
	}
	if b, ok := d.CategoryBonus[category]; ok {
		return b
	}
	return 1.0
}

// ParseClassName matches input case-insensitively against the catalog. ok is false
// when nothing matched; the returned name is then DefaultClass.
func (c *ClassCatalog) ParseClassName(input string) (ClassName, bool) {
	s := normalizeKey(input)
	for _, n := range c.order {
		if normalizeKey(string(n)) == s {
			return n, true
		}
	}
	return c.Resolve(""), false
}

func builtinClasses() []ClassDefinition {
	return []ClassDefinition{
		{
			Name:        ClassTechnomancer,
			Description: "Master of code and digital realms",
			Icon:        "🧙",
			BaseStats:   Stats{StatStrength: 8, StatIntelligence: 16, StatAgility: 10, StatFocus: 14, StatCreativity: 12},
			GrowthStats: Stats{StatIntelligence: 3, StatFocus: 2, StatCreativity: 1},
			CategoryBonus: map[Category]float64{
				"Programming": 1.5,
				"Learning":    1.3,
				"Work":        1.2,
			},
		},
		{
			Name:        ClassCodeWarrior,
			Description: "Battles bugs with strength and intellect",
			Icon:        "⚔️",
			BaseStats:   Stats{StatStrength: 14, StatIntelligence: 13, StatAgility: 11, StatFocus: 12, StatCreativity: 10},
			GrowthStats: Stats{StatStrength: 2, StatIntelligence: 2, StatFocus: 2},
			CategoryBonus: map[Category]float64{
				"Programming": 1.4,
				"Work":        1.3,
				"Health":      1.2,
			},
		},
		{
			Name:        ClassDataWizard,
			Description: "Weaves magic with data and algorithms",
			Icon:        "🔮",
			BaseStats:   Stats{StatStrength: 7, StatIntelligence: 17, StatAgility: 9, StatFocus: 13, StatCreativity: 14},
			GrowthStats: Stats{StatIntelligence: 3, StatCreativity: 2, StatFocus: 1},
			CategoryBonus: map[Category]float64{
				"Learning":    1.5,
				"Programming": 1.3,
				"Creative":    1.4,
			},
		},
		{
			Name:        ClassCyberKnight,
			Description: "Protector of digital honor and security",
			Icon:        "🛡️",
			BaseStats:   Stats{StatStrength: 15, StatIntelligence: 11, StatAgility: 13, StatFocus: 13, StatCreativity: 8},
			GrowthStats: Stats{StatStrength: 2, StatAgility: 2, StatFocus: 2},
			CategoryBonus: map[Category]float64{
				"Work":   1.4,
				"Health": 1.3,
				"Social": 1.2,
			},
		},
		{
			Name:        ClassDigitalAssassin,
			Description: "Swift and precise in the digital shadows",
			Icon:        "🥷",
			BaseStats:   Stats{StatStrength: 10, StatIntelligence: 12, StatAgility: 16, StatFocus: 14, StatCreativity: 8},
			GrowthStats: Stats{StatAgility: 3, StatFocus: 2, StatIntelligence: 1},
			CategoryBonus: map[Category]float64{
				"Programming": 1.3,
				"Gaming":      1.5,
				"Health":      1.2,
			},
		},
		{
			Name:        ClassSystemAdmin,
			Description: "Keeper of servers and digital infrastructure",
			Icon:        "⚙️",
			BaseStats:   Stats{StatStrength: 11, StatIntelligence: 14, StatAgility: 9, StatFocus: 16, StatCreativity: 10},
			GrowthStats: Stats{StatFocus: 3, StatIntelligence: 2, StatStrength: 1},
			CategoryBonus: map[Category]float64{
				"Work":        1.5,
				"Programming": 1.3,
				"Learning":    1.2,
			},
		},
	}
}
