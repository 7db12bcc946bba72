// Package schema validates persisted parameter values against the kinds
// declared by a plugin.
//
// A Schema maps parameter names to types. Types are derived from parameter
// kinds:
//
//	s := schema.Schema{
//	    "filename":   schema.File(),
//	    "firstFrame": schema.Int(),
//	    "size":       schema.Float(),
//	}
//
//	for _, pe := range schema.ParamErrors(schema.ValidateRecord(s, rec)) {
//	    if pe.Unknown() {
//	        // dropped on restore
//	    }
//	}
//
// Parameters are optional: a record only persists the values that were set,
// so only the names present in the data are checked. A name the schema does
// not know is reported, since restoring it would be dropped.
//
// Schemas serialize to JSON as a list of {name, kind} pairs sorted by name,
// which is how plugin listings describe their parameters.
package schema
