package output

import (
	"io"
)

var _ Handler[any] = (*TextHandler[any])(nil)

// DefaultEmptyMessage is printed by TextHandler when there are no results.
const DefaultEmptyMessage = "No items found"

// TextHandler renders items with a Printer.
type TextHandler[T any] struct {
	out     io.Writer
	printer Printer[T]
	empty   string
}

// NewTextHandler constructs a new TextHandler which renders items of type T using p.
func NewTextHandler[T any](w io.Writer, p Printer[T]) *TextHandler[T] {
	return &TextHandler[T]{
		out:     w,
		printer: p,
		empty:   DefaultEmptyMessage,
	}
}

// SetEmptyMessage configures the line printed when there are no results.
func (h *TextHandler[T]) SetEmptyMessage(msg string) {
	h.empty = msg
}

// Writer returns the underlying io.Writer where text will be written.
func (h *TextHandler[T]) Writer() io.Writer {
	return h.out
}

// HandleResult prints a single item, surrounded by the printer's header and footer.
func (h *TextHandler[T]) HandleResult(item T) error {
	h.printer.Header(h.out, 1)
	if err := h.printer.Item(h.out, item); err != nil {
		return err
	}
	h.printer.Footer(h.out, 1)

	return nil
}

// HandleResults prints every item, or the empty message when there are none.
func (h *TextHandler[T]) HandleResults(items ...T) error {
	if len(items) == 0 {
		_, _ = io.WriteString(h.out, h.empty+"\n")
		return nil
	}

	h.printer.Header(h.out, len(items))

	for _, it := range items {
		if err := h.printer.Item(h.out, it); err != nil {
			return err
		}
	}

	h.printer.Footer(h.out, len(items))

	return nil
}

// HandleError returns err unchanged so that it is reported by the command.
func (h *TextHandler[T]) HandleError(err error) error {
	return err
}
