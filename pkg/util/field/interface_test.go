package field

import (
	"github.com/merl990827/monachan/pkg/util/field/babybear"
	"github.com/merl990827/monachan/pkg/util/field/bls12_377"
)

func init() {
	// make sure the interface is adhered to.
	_ = Element[babybear.Element](babybear.Element{})
	_ = Element[bls12_377.Element](bls12_377.Element{})
}
