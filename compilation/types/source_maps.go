package types

import "strings"

// Reference: Source mappings are emitted according to the rules specified in the solidity documentation:
// https://docs.soliditylang.org/en/latest/internals/source_mappings.html

// sourceMapDelimiter separates the per-instruction records of a compiler source mapping string.
const sourceMapDelimiter = ";"

// SourceMap describes an ordered list of per-instruction source mapping records, as reported by the compiler. Each
// element corresponds to one bytecode instruction index. Records are stored unparsed: an empty record is meaningful
// (it inherits from its predecessor under the compiler's compression scheme), so the model preserves every record,
// empty or not, and leaves interpretation to downstream consumers.
type SourceMap []string

// SplitSourceMap splits a compiler source mapping string into its ordered per-instruction records. Empty records are
// preserved, including a trailing empty record produced by a delimiter-terminated string.
func SplitSourceMap(sourceMapStr string) SourceMap {
	return strings.Split(sourceMapStr, sourceMapDelimiter)
}

// Join reassembles the source map into the compiler's delimited string form.
func (s SourceMap) Join() string {
	return strings.Join(s, sourceMapDelimiter)
}
