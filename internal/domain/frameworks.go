package domain

import "sort"

// Framework describes the naming idioms a library imposes on the code that
// uses it. A detected framework widens the exempt names and the set of
// singleton factories.
type Framework struct {
	Name string
	// Packages are the package.json dependencies that signal the framework.
	Packages []string
	// AllowNames are regexes for declarations the framework dictates.
	AllowNames []string
	// Singletons are factory callees whose results are long-lived
	// instances, named like variables rather than constants.
	Singletons []string
}

// baseSingletons are singleton and logger factories recognized in every
// project.
var baseSingletons = []string{
	"createLogger", "getLogger", "pino", "debug", "winston.createLogger",
	"createClient", "axios.create", "Logger", "PrismaClient", "Redis",
}

var builtinFrameworks = []Framework{
	{
		Name:       "react",
		Packages:   []string{"react", "react-dom"},
		AllowNames: []string{`^with[A-Z]\w*$`},
	},
	{
		Name:     "next",
		Packages: []string{"next"},
		AllowNames: []string{
			`^(GET|HEAD|POST|PUT|PATCH|DELETE|OPTIONS)$`,
			`^(middleware|metadata|viewport|revalidate|dynamic|runtime)$`,
		},
	},
	{
		Name:       "remix",
		Packages:   []string{"@remix-run/react", "@remix-run/node"},
		AllowNames: []string{`^(loader|action|meta|links|headers)$`},
	},
	{
		Name:       "jest",
		Packages:   []string{"jest", "@jest/globals"},
		AllowNames: []string{`^mock[A-Z]\w*$`},
	},
	{
		Name:       "vitest",
		Packages:   []string{"vitest"},
		AllowNames: []string{`^mock[A-Z]\w*$`},
	},
	{
		Name:       "express",
		Packages:   []string{"express"},
		AllowNames: []string{`^\w+(Middleware|Handler)$`},
		Singletons: []string{"express", "express.Router", "Router"},
	},
	{
		Name:       "redux",
		Packages:   []string{"@reduxjs/toolkit", "redux"},
		AllowNames: []string{`^\w+Reducer$`},
		Singletons: []string{"configureStore", "createStore", "createSlice"},
	},
	{
		Name:       "react-query",
		Packages:   []string{"@tanstack/react-query", "react-query"},
		Singletons: []string{"QueryClient"},
	},
}

// KnownFrameworks returns the names of the recognized frameworks, sorted.
func KnownFrameworks() []string {
	names := make([]string, len(builtinFrameworks))
	for i, f := range builtinFrameworks {
		names[i] = f.Name
	}
	sort.Strings(names)
	return names
}

// LookupFramework returns the named framework.
func LookupFramework(name string) (Framework, bool) {
	for _, f := range builtinFrameworks {
		if f.Name == name {
			return f, true
		}
	}
	return Framework{}, false
}

// FrameworksForPackages maps dependency names to the frameworks they signal.
// The result is sorted and free of duplicates.
func FrameworksForPackages(deps []string) []string {
	have := make(map[string]bool, len(deps))
	for _, d := range deps {
		have[d] = true
	}
	var out []string
	for _, f := range builtinFrameworks {
		for _, p := range f.Packages {
			if have[p] {
				out = append(out, f.Name)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// MergeFrameworks returns the sorted union of a and b.
func MergeFrameworks(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, n := range append(append([]string(nil), a...), b...) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
