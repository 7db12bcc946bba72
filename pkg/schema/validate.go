package schema

import (
	"sort"

	"github.com/aretw0/nodegraph/pkg/domain"
)

// Schema is a map of parameter names to their expected types.
type Schema map[string]Type

// ValidateRecord checks the persisted params of rec against the schema.
// Only the names present in rec are checked; nil values are left to the
// plugin defaults.
func ValidateRecord(s Schema, rec *domain.Record) error {
	if rec == nil || len(rec.Params) == 0 {
		return nil
	}
	names := make([]string, 0, len(rec.Params))
	for name := range rec.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []*ParamError
	reject := func(name string, value any, err error) {
		errs = append(errs, &ParamError{
			Node:     rec.ScriptName,
			PluginID: rec.PluginID,
			Param:    name,
			Value:    value,
			Err:      err,
		})
	}
	for _, name := range names {
		value := rec.Params[name]
		typ, known := s[name]
		switch {
		case !known:
			reject(name, value, ErrUnknownParam)
		case value == nil:
		default:
			if err := typ.Validate(value); err != nil {
				reject(name, value, err)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &RecordError{Node: rec.ScriptName, PluginID: rec.PluginID, Params: errs}
}
