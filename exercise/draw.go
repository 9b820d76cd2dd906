package exercise

import (
	"github.com/Daniel-dg-conta1/math-Suite/diagram"
	"github.com/Daniel-dg-conta1/math-Suite/geom"
)

// Specs returns the arrows to draw for the exercise. Given vectors always
// appear. The resultant R is shown on answer keys and on missing-vector
// exercises, where it is the target. Answer keys of missing-vector
// exercises also show Vf.
func (e VectorExercise) Specs(answerKey bool) []diagram.VectorSpec {
	specs := make([]diagram.VectorSpec, 0, len(e.Vectors)+2)
	for i, pv := range e.Vectors {
		specs = append(specs, diagram.VectorSpec{ID: i, Label: pv.Label, V: pv.Vector(), Role: diagram.RoleGiven})
	}
	missing := e.Target != nil
	if answerKey && missing {
		specs = append(specs, diagram.VectorSpec{
			ID:    len(specs),
			Label: e.Solution.Label,
			V:     e.Solution.Vector(),
			Role:  diagram.RoleMissing,
		})
	}
	if answerKey || missing {
		r := geom.Sum(e.Given()...)
		if missing {
			r = *e.Target
		}
		specs = append(specs, diagram.VectorSpec{ID: len(specs), Label: "R", V: r, Role: diagram.RoleResultant})
	}
	return specs
}
