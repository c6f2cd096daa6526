package sim

import "strings"

// NameMustBeValid panics if the name does not follow the naming convention.
// Component names are hierarchical, with dot-separated elements. Every
// element must be non-empty, capitalized CamelCase. For example,
// "Tfoil.CRG.PLL4X" is valid, while "A..B", "A.b", and "Has_Underscore"
// are not.
func NameMustBeValid(name string) {
	for _, elem := range strings.Split(name, ".") {
		elementMustBeValid(name, elem)
	}
}

func elementMustBeValid(name, elem string) {
	if elem == "" {
		panic("Name " + name + " is not valid: element must not be empty")
	}

	invalidChars := []string{
		"_", "\"", "'", "-", "[", "]",
	}

	for _, c := range invalidChars {
		if strings.Contains(elem, c) {
			panic("Name " + name +
				" is not valid: element must not contain " + c)
		}
	}

	if elem[0] < 'A' || elem[0] > 'Z' {
		panic("Name " + name +
			" is not valid: element must start with a capital letter")
	}
}

// BuildName builds a name from a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}
