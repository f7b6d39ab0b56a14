package category

import (
	"github.com/tothedarktowercame/loom/internal/registry"
	"github.com/tothedarktowercame/loom/internal/wiring"
)

// Morphism is one arrow: a primitive viewed by its first input and
// first output types, or a synthesized identity.
type Morphism struct {
	Name     string
	Dom      wiring.PortType
	Cod      wiring.PortType
	Identity bool
}

// Category is the derived view over a registry. Build it once per
// registry version; construction enumerates every primitive and law
// checking is quadratic/cubic in the morphism count.
type Category struct {
	Objects   []wiring.PortType
	Morphisms []Morphism

	byName map[string]Morphism
}

// Build derives the category from a registry. Zero-input primitives
// (context extractors) get dom = context, since they read the ambient
// neighborhood; every primitive in the registry has at least one
// output, so cod always comes from the declared ports.
func Build(reg *registry.Registry) *Category {
	c := &Category{
		Objects: append([]wiring.PortType{}, wiring.AllTypes...),
		byName:  make(map[string]Morphism),
	}

	for _, t := range wiring.AllTypes {
		m := Morphism{Name: "id:" + string(t), Dom: t, Cod: t, Identity: true}
		c.Morphisms = append(c.Morphisms, m)
		c.byName[m.Name] = m
	}

	for _, id := range reg.IDs() {
		def, _ := reg.Lookup(id)
		m := Morphism{Name: id, Dom: wiring.TypeContext, Cod: wiring.TypeContext}
		if p, ok := def.FirstInput(); ok {
			m.Dom = p.Type
		}
		if p, ok := def.FirstOutput(); ok {
			m.Cod = p.Type
		}
		c.Morphisms = append(c.Morphisms, m)
		c.byName[m.Name] = m
	}

	return c
}

// Composable reports whether f after g is defined: cod(g) = dom(f).
func Composable(f, g Morphism) bool {
	return g.Cod == f.Dom
}

// Compose returns the signature of f after g. Callers must check
// Composable first; the result is purely the (dom g, cod f) arrow.
func Compose(f, g Morphism) Morphism {
	return Morphism{Name: f.Name + "." + g.Name, Dom: g.Dom, Cod: f.Cod}
}

// Identity returns the identity morphism for an object.
func (c *Category) Identity(t wiring.PortType) (Morphism, bool) {
	m, ok := c.byName["id:"+string(t)]
	return m, ok
}

// ComposablePairs enumerates every (f, g) with cod(g) = dom(f),
// excluding identity morphisms. Cost is O(n^2) in registry size.
func (c *Category) ComposablePairs() [][2]Morphism {
	var pairs [][2]Morphism
	for _, f := range c.Morphisms {
		if f.Identity {
			continue
		}
		for _, g := range c.Morphisms {
			if g.Identity {
				continue
			}
			if Composable(f, g) {
				pairs = append(pairs, [2]Morphism{f, g})
			}
		}
	}
	return pairs
}
