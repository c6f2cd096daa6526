package sim

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is an element of the elaborated design. Components form an
// explicit ownership tree: every component except the root is owned by
// exactly one parent. Cross-component references are borrowed handles and do
// not imply ownership.
type Component interface {
	Named

	Parent() Component
	Children() []Component
}

// ComponentBase provides the name and ownership bookkeeping that other
// components can embed.
type ComponentBase struct {
	HookableBase

	name     string
	parent   Component
	children []Component
	adopted  bool
}

// NewComponentBase creates a new ComponentBase. The component's full name is
// the parent's name extended with elemName. Pass a nil parent for the
// composition root.
func NewComponentBase(parent Component, elemName string) *ComponentBase {
	name := elemName
	if parent != nil {
		name = BuildName(parent.Name(), elemName)
	}

	NameMustBeValid(name)

	return &ComponentBase{
		name:   name,
		parent: parent,
	}
}

// Name returns the full hierarchical name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}

// Parent returns the owner of the component, or nil for the root.
func (c *ComponentBase) Parent() Component {
	return c.parent
}

// Children returns the components owned by this component.
func (c *ComponentBase) Children() []Component {
	return c.children
}

// Adopt places child under this component in the ownership tree. A component
// has exactly one owner for its whole lifetime; adopting a component twice
// panics.
func (c *ComponentBase) Adopt(child Component) {
	base := child.(interface{ base() *ComponentBase }).base()
	if base.adopted {
		panic("component " + child.Name() + " already has an owner")
	}

	base.adopted = true
	c.children = append(c.children, child)
}

func (c *ComponentBase) base() *ComponentBase {
	return c
}

// Walk visits the component and all its descendants in depth-first order.
func Walk(c Component, visit func(Component)) {
	visit(c)
	for _, child := range c.Children() {
		Walk(child, visit)
	}
}
