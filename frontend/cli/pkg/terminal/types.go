package terminal

type focus int

const (
	FocusInput focus = iota
	FocusCancel
	FocusSubmit
)

const focusCount = 3

func (f focus) next() focus {
	return (f + 1) % focusCount
}

func (f focus) prev() focus {
	return (f + focusCount - 1) % focusCount
}

type clearErrorMsg struct {
	seq int
}
