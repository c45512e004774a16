package domain

// File discovery defaults
const (
	// ExpressionFileExtension is the primary extension for expression files
	ExpressionFileExtension = ".prefix"

	// AlternateFileExtension is also recognized as an expression file
	AlternateFileExtension = ".expr"

	// CommentPrefix starts a line that the file reader ignores
	CommentPrefix = "#"
)

// Execution defaults
const (
	// DefaultMaxWorkers bounds how many files are processed at once
	DefaultMaxWorkers = 4

	// DefaultTimeoutSeconds bounds a whole run
	DefaultTimeoutSeconds = 60
)

// DefaultIncludePatterns returns the glob patterns that select expression files
func DefaultIncludePatterns() []string {
	return []string{"*" + ExpressionFileExtension, "*" + AlternateFileExtension}
}
