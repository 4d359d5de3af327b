package types

import "strings"

// qualifiedNameDelimiter is the delimiter toolchains use to scope a contract name to the file which defines it, e.g.
// "contracts/Token.sol:Token".
const qualifiedNameDelimiter = ":"

// ExtractContractName returns the bare contract name from a raw, possibly toolchain-qualified contract identifier.
// Identifiers with no qualification are returned unchanged, so the operation is idempotent.
func ExtractContractName(rawName string) string {
	if index := strings.LastIndex(rawName, qualifiedNameDelimiter); index != -1 {
		return rawName[index+1:]
	}
	return rawName
}

// ExtractFilenamePrefix returns the file-scope portion of a raw qualified contract identifier, or an empty string if
// the identifier carries no qualification.
func ExtractFilenamePrefix(rawName string) string {
	if index := strings.LastIndex(rawName, qualifiedNameDelimiter); index != -1 {
		return rawName[:index]
	}
	return ""
}
