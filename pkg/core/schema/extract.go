package schema

import (
	"errors"
	"fmt"
)

// ExtractFromCursor reads column (1-based) of the current row. The hook picks the
// accessor before any read; a nil hook uses DefaultAccessor. The result is in
// this descriptor's storage form.
func (m *Meta) ExtractFromCursor(hook DialectHook, cur Cursor, column int) (any, error) {
	col, err := cur.Column(column)
	if err != nil {
		return nil, &CursorExtractionError{Column: column, Err: err}
	}
	fail := func(err error) error {
		return &CursorExtractionError{Column: column, SQLType: col.SQLType, TypeName: col.TypeName, Err: err}
	}

	acc := chooseAccessor(hook, col, m.typ)
	raw, ok, err := acc.read(cur, column)
	if err != nil {
		return nil, fail(fmt.Errorf("%s accessor: %w", acc, err))
	}
	if !ok {
		return nil, nil
	}

	v, err := m.ops.native(m, raw)
	if err != nil {
		if errors.Is(err, errUnsupportedValue) {
			err = fmt.Errorf("%s accessor returned %T for %s", acc, raw, m.typ)
		}
		return nil, fail(m.conversionError(m.typ, raw, err))
	}
	if v == nil || m.cfg.storage == StorageNormal {
		return v, nil
	}
	b, err := m.encodeNative(v)
	if err != nil {
		return nil, fail(err)
	}
	return b, nil
}
