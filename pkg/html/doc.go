// Package html provides the tag and attribute primitives every widget builds
// on. Attribute maps render in a stable order, text is escaped with the
// standard library encoder and raw content passes through a bluemonday
// policy before it reaches the page.
package html
