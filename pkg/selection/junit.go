package selection

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
)

// WriteJUnit writes the plan as a JUnit skeleton: selected cases in run
// order, then skipped cases with their reasons. CI systems pick the seed up
// from the suite properties.
func (p Plan) WriteJUnit(w io.Writer, suite string) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("testsuite")
	root.CreateAttr("name", suite)
	root.CreateAttr("tests", strconv.Itoa(len(p.Selected)+len(p.Skipped)))
	root.CreateAttr("skipped", strconv.Itoa(len(p.Skipped)))

	props := root.CreateElement("properties")
	addProperty(props, "platform", p.Platform)
	addProperty(props, "ordering", p.Ordering)
	if p.Seed != 0 {
		addProperty(props, "seed", strconv.FormatUint(p.Seed, 10))
	}

	for _, c := range p.Selected {
		testcase(root, suite, c)
	}
	for _, s := range p.Skipped {
		tc := testcase(root, suite, s.Case)
		tc.CreateElement("skipped").CreateAttr("message", s.Reason)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func addProperty(props *etree.Element, name, value string) {
	el := props.CreateElement("property")
	el.CreateAttr("name", name)
	el.CreateAttr("value", value)
}

func testcase(root *etree.Element, suite string, c Case) *etree.Element {
	tc := root.CreateElement("testcase")
	tc.CreateAttr("classname", suite)
	tc.CreateAttr("name", c.Name)
	return tc
}
