package service

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ludo-technologies/prexpr/domain"
)

// FileReaderImpl implements the ExpressionFileReader interface
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectExpressionFiles finds expression files in the given paths. A path
// naming a file is taken as long as it passes the exclude patterns, so
// explicitly listed files need not carry a known extension.
func (f *FileReaderImpl) CollectExpressionFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	if err := f.ValidatePatterns(includePatterns); err != nil {
		return nil, err
	}
	if err := f.ValidatePatterns(excludePatterns); err != nil {
		return nil, err
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
			continue
		}

		if !f.matchesAny(path, excludePatterns) {
			files = append(files, path)
		}
	}

	return files, nil
}

// ReadExpressions reads one expression per line. Blank lines and lines
// starting with "#" are skipped; labels are "path:line".
func (f *FileReaderImpl) ReadExpressions(path string) ([]domain.ExpressionSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	defer file.Close()

	var sources []domain.ExpressionSource
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, domain.CommentPrefix) {
			continue
		}
		sources = append(sources, domain.ExpressionSource{
			Label: fmt.Sprintf("%s:%d", path, line),
			Text:  text,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to read %s", path), err)
	}

	return sources, nil
}

// FileExists checks if a regular file exists at path
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// IsExpressionFile reports whether path has a recognized extension
func (f *FileReaderImpl) IsExpressionFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == domain.ExpressionFileExtension || ext == domain.AlternateFileExtension
}

func (f *FileReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped
			return nil
		}

		if path != dirPath && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == dirPath {
				return nil
			}
			if !recursive || f.matchesAny(path, excludePatterns) {
				return filepath.SkipDir
			}
			return nil
		}

		if f.shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return files, nil
}

// shouldIncludeFile applies the exclude patterns, then the include
// patterns. With no include patterns only recognized extensions pass.
func (f *FileReaderImpl) shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	if f.matchesAny(path, excludePatterns) {
		return false
	}
	if len(includePatterns) == 0 {
		return f.IsExpressionFile(path)
	}
	return f.matchesAny(path, includePatterns)
}

// matchesAny matches each pattern against the base name, the whole path and
// every trailing run of path segments, so "build/**" also excludes
// "src/build/x.prefix".
func (f *FileReaderImpl) matchesAny(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	slashed := filepath.ToSlash(filepath.Clean(path))
	candidates := []string{filepath.Base(path), slashed}
	for i := 0; i < len(slashed); i++ {
		if slashed[i] == '/' && i+1 < len(slashed) {
			candidates = append(candidates, slashed[i+1:])
		}
	}

	for _, pattern := range patterns {
		for _, candidate := range candidates {
			if matched, _ := doublestar.Match(pattern, candidate); matched {
				return true
			}
		}
	}
	return false
}

// ValidatePattern rejects patterns that doublestar cannot parse and
// patterns that look like regular expressions rather than globs.
func (f *FileReaderImpl) ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return domain.NewValidationError("pattern cannot be empty")
	}
	if strings.HasPrefix(pattern, ".*") || strings.ContainsAny(pattern, "^$+") || strings.Contains(pattern, `\.`) {
		return domain.NewValidationError(fmt.Sprintf("pattern %q looks like regex syntax; use glob syntax such as *.prefix", pattern))
	}
	if !doublestar.ValidatePattern(pattern) {
		return domain.NewValidationError(fmt.Sprintf("invalid glob pattern %q", pattern))
	}
	return nil
}

// ValidatePatterns validates every pattern in the list
func (f *FileReaderImpl) ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if err := f.ValidatePattern(pattern); err != nil {
			return err
		}
	}
	return nil
}
