package category

import "fmt"

// LawFailure is one violated law instance, structured for diagnostic
// tooling.
type LawFailure struct {
	Law       string   `json:"law"`
	Morphisms []string `json:"morphisms"`
	Message   string   `json:"message"`
}

// LawReport is the outcome of a law verification pass.
type LawReport struct {
	Passed   bool         `json:"passed"`
	Checked  int          `json:"checked"`
	Failures []LawFailure `json:"failures,omitempty"`
}

// VerifyIdentityLaws checks, for every non-identity morphism f, that
// id_cod(f) . f and f . id_dom(f) both exist and preserve f's
// signature. Exhaustive over the primitive set.
func (c *Category) VerifyIdentityLaws() LawReport {
	report := LawReport{Passed: true}

	for _, f := range c.Morphisms {
		if f.Identity {
			continue
		}
		report.Checked++

		idDom, ok := c.Identity(f.Dom)
		if !ok {
			report.fail("identity", []string{f.Name},
				fmt.Sprintf("no identity morphism for domain %s", f.Dom))
			continue
		}
		idCod, ok := c.Identity(f.Cod)
		if !ok {
			report.fail("identity", []string{f.Name},
				fmt.Sprintf("no identity morphism for codomain %s", f.Cod))
			continue
		}

		if !Composable(f, idDom) {
			report.fail("identity", []string{f.Name, idDom.Name},
				"f . id_dom(f) is not composable")
			continue
		}
		if right := Compose(f, idDom); right.Dom != f.Dom || right.Cod != f.Cod {
			report.fail("identity", []string{f.Name, idDom.Name},
				fmt.Sprintf("f . id changed signature: %s->%s", right.Dom, right.Cod))
		}

		if !Composable(idCod, f) {
			report.fail("identity", []string{idCod.Name, f.Name},
				"id_cod(f) . f is not composable")
			continue
		}
		if left := Compose(idCod, f); left.Dom != f.Dom || left.Cod != f.Cod {
			report.fail("identity", []string{idCod.Name, f.Name},
				fmt.Sprintf("id . f changed signature: %s->%s", left.Dom, left.Cod))
		}
	}

	return report
}

// VerifyAssociativity checks (f.g).h = f.(g.h) over every composable
// triple of non-identity morphisms. Exhaustive, so cost is O(n^3) in
// registry size; callers should cache the report per registry version.
func (c *Category) VerifyAssociativity() LawReport {
	report := LawReport{Passed: true}

	for _, f := range c.Morphisms {
		if f.Identity {
			continue
		}
		for _, g := range c.Morphisms {
			if g.Identity || !Composable(f, g) {
				continue
			}
			for _, h := range c.Morphisms {
				if h.Identity || !Composable(g, h) {
					continue
				}
				report.Checked++

				fg := Compose(f, g)
				gh := Compose(g, h)
				if !Composable(fg, h) {
					report.fail("associativity", []string{f.Name, g.Name, h.Name},
						"(f.g).h is not composable")
					continue
				}
				if !Composable(f, gh) {
					report.fail("associativity", []string{f.Name, g.Name, h.Name},
						"f.(g.h) is not composable")
					continue
				}
				left := Compose(fg, h)
				right := Compose(f, gh)
				if left.Dom != right.Dom || left.Cod != right.Cod {
					report.fail("associativity", []string{f.Name, g.Name, h.Name},
						fmt.Sprintf("signatures diverge: %s->%s vs %s->%s",
							left.Dom, left.Cod, right.Dom, right.Cod))
				}
			}
		}
	}

	return report
}

func (r *LawReport) fail(law string, morphisms []string, message string) {
	r.Passed = false
	r.Failures = append(r.Failures, LawFailure{Law: law, Morphisms: morphisms, Message: message})
}
