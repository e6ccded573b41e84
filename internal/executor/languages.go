package executor

import "strings"

// runtime is a Piston language name and version pair.
type runtime struct {
	Language string
	Version  string
}

var runtimes = map[string]runtime{
	"javascript": {Language: "javascript", Version: "18.15.0"},
	"python":     {Language: "python", Version: "3.10.0"},
	"cpp":        {Language: "c++", Version: "10.2.0"},
	"java":       {Language: "java", Version: "15.0.2"},
	"typescript": {Language: "typescript", Version: "5.0.3"},
	"go":         {Language: "go", Version: "1.16.2"},
}

func lookup(language string) (runtime, bool) {
	rt, ok := runtimes[strings.ToLower(strings.TrimSpace(language))]
	return rt, ok
}

// Languages lists the accepted language identifiers.
func Languages() []string {
	return []string{"cpp", "go", "java", "javascript", "python", "typescript"}
}
