package fetch

// Progress receives cumulative transfer counts while a download runs.
// total is -1 when the server does not declare a content length.
// Implementations must be fast; they run on the transfer path.
type Progress interface {
	Update(transferred, total int64)
}

// NopProgress discards all updates.
type NopProgress struct{}

func (NopProgress) Update(int64, int64) {}

// ProgressFunc adapts a function to the Progress interface.
type ProgressFunc func(transferred, total int64)

func (f ProgressFunc) Update(transferred, total int64) { f(transferred, total) }
