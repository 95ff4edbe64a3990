package model

import (
	"github.com/quillbuf/coretext/buffer"
	"github.com/quillbuf/coretext/decoration"
)

// DecorationsAccessor is the mutation surface handed to a ChangeDecorations
// callback, bound to the ownerID the call was opened with.
type DecorationsAccessor struct {
	m       *TextModel
	ownerID string
}

// AddDecoration inserts a new decoration and returns its allocated id.
func (a *DecorationsAccessor) AddDecoration(r buffer.Range, opts decoration.Options) string {
	id, _ := a.m.decorations.AddDecoration(a.ownerID, a.m.validateRangeRelaxed(r), opts)
	return id
}

// ChangeDecoration moves an existing decoration to r and opts, preserving
// its id and node identity.
func (a *DecorationsAccessor) ChangeDecoration(id string, r buffer.Range, opts decoration.Options) {
	a.m.decorations.DeltaDecorations(a.ownerID, []string{id}, []struct {
		Range   buffer.Range
		Options decoration.Options
	}{{Range: a.m.validateRangeRelaxed(r), Options: opts}})
}

// ChangeDecorationOptions replaces a decoration's options without moving it.
func (a *DecorationsAccessor) ChangeDecorationOptions(id string, opts decoration.Options) {
	a.m.decorations.ChangeDecorationOptions(id, opts)
}

// RemoveDecoration deletes a decoration by id.
func (a *DecorationsAccessor) RemoveDecoration(id string) {
	a.m.decorations.RemoveDecoration(id)
}

// ChangeDecorations runs callback with exclusive access to a mutation
// accessor bound to ownerID, deferring the decorations-changed event until
// the callback returns. A panic inside callback is recovered and reported
// as ErrDecorationsCallback rather than propagating out of the model.
func (m *TextModel) ChangeDecorations(ownerID string, callback func(*DecorationsAccessor) error) (err error) {
	if derr := m.checkDisposed(); derr != nil {
		return derr
	}
	defer func() {
		if r := recover(); r != nil {
			err = decorationsCallbackPanic(r)
		}
	}()

	m.subs.decorations.BeginDeferred()
	defer m.subs.decorations.EndDeferred()

	acc := &DecorationsAccessor{m: m, ownerID: ownerID}
	if cbErr := callback(acc); cbErr != nil {
		return cbErr
	}
	m.subs.decorations.Fire()
	return nil
}

// DeltaDecorations is the non-callback batch form: oldIDs paired by index
// with new (range, options), returning the surviving/new ids. A range with
// no entry at its index in opts gets zero-value options.
func (m *TextModel) DeltaDecorations(ownerID string, oldIDs []string, ranges []buffer.Range, opts []decoration.Options) ([]string, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, err
	}
	news := make([]struct {
		Range   buffer.Range
		Options decoration.Options
	}, len(ranges))
	for i := range ranges {
		news[i].Range = m.validateRangeRelaxed(ranges[i])
		if i < len(opts) {
			news[i].Options = opts[i]
		}
	}

	var ids []string
	m.subs.decorations.BeginDeferred()
	ids = m.decorations.DeltaDecorations(ownerID, oldIDs, news)
	m.subs.decorations.Fire()
	m.subs.decorations.EndDeferred()
	return ids, nil
}

// RemoveAllDecorationsWithOwnerId removes every decoration owned by
// ownerID, firing a single decorations-changed event.
func (m *TextModel) RemoveAllDecorationsWithOwnerId(ownerID string) error {
	if err := m.checkDisposed(); err != nil {
		return err
	}
	m.decorations.RemoveAllWithOwnerID(ownerID)
	m.subs.decorations.Fire()
	return nil
}

// GetDecorationOptions returns a decoration's options by id.
func (m *TextModel) GetDecorationOptions(id string) (decoration.Options, error) {
	if err := m.checkDisposed(); err != nil {
		return decoration.Options{}, err
	}
	d, ok := m.decorations.GetDecoration(id)
	if !ok {
		return decoration.Options{}, invalidArgument("decoration-id", id)
	}
	return d.Options, nil
}

// GetDecorationRange returns a decoration's current range by id.
func (m *TextModel) GetDecorationRange(id string) (buffer.Range, error) {
	if err := m.checkDisposed(); err != nil {
		return buffer.Range{}, err
	}
	r, ok := m.decorations.GetDecorationRange(id)
	if !ok {
		return buffer.Range{}, invalidArgument("decoration-id", id)
	}
	return r, nil
}

// GetLineDecorations returns every non-ruler decoration overlapping
// lineNumber; overview-ruler decorations are not included.
func (m *TextModel) GetLineDecorations(lineNumber int, ownerID string, filterOutValidation bool) ([]decoration.Decoration, error) {
	return m.GetLinesDecorations(lineNumber, lineNumber, ownerID, filterOutValidation)
}

// GetLinesDecorations returns every non-ruler decoration overlapping
// [startLine, endLine]; overview-ruler decorations are not included.
func (m *TextModel) GetLinesDecorations(startLine, endLine int, ownerID string, filterOutValidation bool) ([]decoration.Decoration, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, err
	}
	endCol, ok := m.buf.LineMaxColumn(endLine)
	if !ok {
		endCol = 1
	}
	r := buffer.Range{
		Start: buffer.Position{Line: startLine, Column: 1},
		End:   buffer.Position{Line: endLine, Column: endCol},
	}
	return m.decorations.GetDecorationsInRange(r, buffer.Range{}, ownerID, filterOutValidation), nil
}

// GetDecorationsInRange returns every non-ruler decoration overlapping r;
// overview-ruler decorations are returned only by
// GetOverviewRulerDecorations and GetAllDecorations.
func (m *TextModel) GetDecorationsInRange(r buffer.Range, ownerID string, filterOutValidation bool) ([]decoration.Decoration, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, err
	}
	r = m.ValidateRange(r)
	return m.decorations.GetDecorationsInRange(r, buffer.Range{}, ownerID, filterOutValidation), nil
}

// GetOverviewRulerDecorations returns every ruler decoration overlapping r.
func (m *TextModel) GetOverviewRulerDecorations(r buffer.Range, ownerID string) ([]decoration.Decoration, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, err
	}
	r = m.ValidateRange(r)
	return m.decorations.GetOverviewRulerDecorations(r, ownerID), nil
}

// GetAllDecorations returns every decoration across both trees.
func (m *TextModel) GetAllDecorations(ownerID string, filterOutValidation bool) ([]decoration.Decoration, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, err
	}
	return m.decorations.GetAllDecorations(ownerID, filterOutValidation), nil
}
