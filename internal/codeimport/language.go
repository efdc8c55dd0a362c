package codeimport

import (
	"path/filepath"
	"strings"
)

var extensionLanguages = map[string]string{
	".go":    "go",
	".mod":   "go-module",
	".ts":    "typescript",
	".tsx":   "tsx",
	".js":    "javascript",
	".jsx":   "jsx",
	".py":    "python",
	".rs":    "rust",
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".java":  "java",
	".proto": "protobuf",
	".sql":   "sql",
	".sh":    "bash",
	".bash":  "bash",
	".yaml":  "yaml",
	".yml":   "yaml",
	".json":  "json",
	".toml":  "toml",
	".md":    "markdown",
	".mdx":   "mdx",
	".html":  "html",
	".css":   "css",
	".xml":   "xml",
	".ini":   "ini",
}

var filenameLanguages = map[string]string{
	"Dockerfile":     "docker",
	"Makefile":       "makefile",
	"CMakeLists.txt": "cmake",
}

// LanguageFor infers a syntax-highlighting language from a file name. Unknown
// extensions map to "text".
func LanguageFor(path string) string {
	base := filepath.Base(path)
	if lang, ok := filenameLanguages[base]; ok {
		return lang
	}
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(base))]; ok {
		return lang
	}
	return "text"
}
