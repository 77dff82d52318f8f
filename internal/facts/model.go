package facts

// Role is a closed-set tag describing a file's apparent purpose.
type Role string

const (
	RoleService       Role = "service"
	RoleCLI           Role = "cli"
	RoleLibrary       Role = "library"
	RoleTest          Role = "test"
	RoleConfig        Role = "config"
	RoleBuild         Role = "build"
	RoleDocumentation Role = "documentation"
	RoleEntryPoint    Role = "entry_point"
	RoleUtility       Role = "utility"
	RoleUnknown       Role = "unknown"
)

// External-usage categories assigned to call sites.
const (
	UsageNetwork    = "network"
	UsageDatabase   = "database"
	UsageSubprocess = "subprocess"
	UsageIO         = "io"
)

// Structures describes the declarations an extractor found in a file.
// Concrete implementations live in the extractor packages and carry their
// own JSON field names.
type Structures interface {
	// DeclCounts returns the number of class-like and function-like
	// declarations found in the file.
	DeclCounts() (classes, functions int)
}

// FunctionNamer is implemented by Structures that record named functions.
type FunctionNamer interface {
	FunctionNames() []string
}

// Signals describes the behavioral evidence an extractor found in a file.
type Signals interface {
	// ImportList returns the recorded import roots, order-preserving.
	ImportList() []string
	// IsEntryPoint reports whether the file carries an entry-point idiom.
	IsEntryPoint() bool
	// UsageCategories returns the external-usage categories observed
	// (network, database, subprocess, io).
	UsageCategories() []string
}

// FrameworkTagger is implemented by Signals that can name frameworks the
// file appears to use (e.g. react, express, flask).
type FrameworkTagger interface {
	FrameworkTags() []string
}

// Evidence is a single observation justifying a role or confidence score.
type Evidence struct {
	Location   string  `json:"location"` // file:line or just file
	Snippet    string  `json:"snippet"`
	SignalType string  `json:"signal_type"`
	Weight     float64 `json:"weight"`
}

// FileFact is the structured extraction result for a single file.
type FileFact struct {
	Path       string     `json:"path"`
	Filename   string     `json:"filename"`
	Language   string     `json:"language"`
	Structures Structures `json:"structures"`
	Signals    Signals    `json:"signals"`
	Roles      []Role     `json:"roles"`
	Evidence   []Evidence `json:"evidence"`
	Confidence float64    `json:"confidence"`
}

// PrimaryRole returns the first role, or RoleUnknown when roles is empty.
func (f *FileFact) PrimaryRole() Role {
	if len(f.Roles) == 0 {
		return RoleUnknown
	}
	return f.Roles[0]
}

// HasRole reports whether the fact carries the given role.
func (f *FileFact) HasRole(r Role) bool {
	for _, have := range f.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// ModuleSummary is the aggregated rollup of a directory's FileFacts.
// It is built once per analysis run and not mutated afterwards.
type ModuleSummary struct {
	Path         string           `json:"path"`
	Name         string           `json:"name"`
	Files        []string         `json:"files"`
	CoreFiles    []string         `json:"core_files"`
	PrimaryRole  Role             `json:"primary_role,omitempty"`
	Capabilities []string         `json:"capabilities"`
	ExternalDeps []string         `json:"external_deps"`
	Confidence   float64          `json:"confidence"`
	Subfolders   []*ModuleSummary `json:"subfolders,omitempty"`
}

// EntryPoint is a runnable file detected by the entry-point pipeline.
type EntryPoint struct {
	FilePath   string  `json:"file_path"`
	EntryType  string  `json:"entry_type"` // server, cli, main, script
	Command    string  `json:"command,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Entry type constants.
const (
	EntryServer = "server"
	EntryCLI    = "cli"
	EntryMain   = "main"
	EntryScript = "script"
)
