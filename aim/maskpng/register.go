// register.go wires the PNG loader into the aim package's registration
// variable (NewMaskLoaderFunc). This init() runs when any package imports
// aim/maskpng, breaking the import cycle between aim/ (interface owner)
// and the decoder. Production code imports aim/maskpng directly; aim
// package tests that need a loader pass one explicitly.
package maskpng

import "github.com/caddie-sim/caddie-sim/aim"

func init() {
	aim.NewMaskLoaderFunc = func() aim.MaskLoader {
		return NewLoader()
	}
}
