package htmx

// SwapStrategy is an hx-swap value.
type SwapStrategy string

const (
	SwapInnerHTML  SwapStrategy = "innerHTML"
	SwapOuterHTML  SwapStrategy = "outerHTML"
	SwapAfterBegin SwapStrategy = "afterbegin"
	SwapBeforeEnd  SwapStrategy = "beforeend"
	SwapDelete     SwapStrategy = "delete"
	SwapNone       SwapStrategy = "none"
)
