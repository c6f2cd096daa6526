package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type sampleComp struct {
	*ComponentBase
}

func newSampleComp(parent Component, name string) *sampleComp {
	c := &sampleComp{
		ComponentBase: NewComponentBase(parent, name),
	}

	if parent != nil {
		parent.(*sampleComp).Adopt(c)
	}

	return c
}

var _ = Describe("ComponentBase", func() {
	It("should build hierarchical names", func() {
		root := newSampleComp(nil, "Top")
		child := newSampleComp(root, "CRG")

		Expect(child.Name()).To(Equal("Top.CRG"))
		Expect(child.Parent()).To(BeIdenticalTo(Component(root)))
		Expect(root.Children()).To(HaveLen(1))
	})

	It("should refuse a second owner", func() {
		root := newSampleComp(nil, "Top")
		other := newSampleComp(nil, "Other")
		child := newSampleComp(root, "CRG")

		Expect(func() { other.Adopt(child) }).To(Panic())
	})

	It("should refuse invalid names", func() {
		Expect(func() { newSampleComp(nil, "lower") }).To(Panic())
		Expect(func() { newSampleComp(nil, "Has_Underscore") }).To(Panic())
	})

	It("should walk the ownership tree", func() {
		root := newSampleComp(nil, "Top")
		a := newSampleComp(root, "A")
		newSampleComp(a, "B")

		visited := []string{}
		Walk(root, func(c Component) {
			visited = append(visited, c.Name())
		})

		Expect(visited).To(Equal([]string{"Top", "Top.A", "Top.A.B"}))
	})
})
