// Package script generates the platform-specific automation scripts
// that pull and unpack selected images. Emission is deterministic: the
// same options always produce byte-identical output, and every entry id
// appears exactly once in the order supplied.
package script

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

// Platform selects the script dialect.
type Platform string

const (
	PlatformPosix   Platform = "posix"
	PlatformWindows Platform = "windows"
)

const (
	// PullAttempts is the per-image pull retry budget.
	PullAttempts = 5

	// InitialBackoffSeconds is the first retry delay; it doubles per
	// attempt up to MaxBackoffSeconds.
	InitialBackoffSeconds = 2
	MaxBackoffSeconds     = 60
)

//go:embed templates/posix.sh.tmpl templates/windows.bat.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Options describes one script emission.
type Options struct {
	Platform   Platform
	EntryIDs   []string
	DockerUser string
	RepoName   string
	MountPath  string
}

// DefaultOptions returns options for a posix script against the default
// mount path.
func DefaultOptions() Options {
	return Options{
		Platform:  PlatformPosix,
		MountPath: "/mnt/games",
	}
}

// templateData is the payload handed to the script templates.
type templateData struct {
	EntryIDs       []string
	DockerUser     string
	RepoName       string
	MountPath      string
	PullAttempts   int
	InitialBackoff int
	MaxBackoff     int
}

// Validate checks that the options describe an emittable script.
func (o Options) Validate() error {
	switch o.Platform {
	case PlatformPosix, PlatformWindows:
	default:
		return fmt.Errorf("unknown platform %q", o.Platform)
	}
	if len(o.EntryIDs) == 0 {
		return fmt.Errorf("no entries selected")
	}
	if o.DockerUser == "" || o.RepoName == "" {
		return fmt.Errorf("docker user and repository are required")
	}
	if o.MountPath == "" {
		return fmt.Errorf("mount path is required")
	}
	return nil
}

// Emit renders a complete, directly executable script.
func Emit(opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	name := "posix.sh.tmpl"
	if opts.Platform == PlatformWindows {
		name = "windows.bat.tmpl"
	}

	data := templateData{
		EntryIDs:       opts.EntryIDs,
		DockerUser:     opts.DockerUser,
		RepoName:       opts.RepoName,
		MountPath:      opts.MountPath,
		PullAttempts:   PullAttempts,
		InitialBackoff: InitialBackoffSeconds,
		MaxBackoff:     MaxBackoffSeconds,
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// FileName returns the conventional file name for the platform.
func FileName(platform Platform) string {
	if platform == PlatformWindows {
		return "gamecrate-pull.bat"
	}
	return "gamecrate-pull.sh"
}
