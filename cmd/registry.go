package main

import "io"

// Demo defines the interface that all demos must implement
type Demo interface {
	Name() string
	Description() string
	Run(w io.Writer) error
}

// getAllDemos returns all registered demos in a consistent order
func getAllDemos() []Demo {
	return []Demo{
		&basicsDemo{},
		&flattenDemo{},
		&sharingDemo{},
		&enumeratorDemo{},
		&recoverDemo{},
	}
}

// getDemoByName returns a specific demo by name
func getDemoByName(name string) (Demo, bool) {
	for _, d := range getAllDemos() {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}
